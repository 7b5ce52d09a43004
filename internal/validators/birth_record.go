// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/umay/models"
)

// Birth record fields.
const (
	FieldPatientName    = "patient_name"
	FieldAge            = "age"
	FieldPregnancyWeeks = "pregnancy_weeks"
	FieldWeightBefore   = "weight_before"
	FieldWeightAfter    = "weight_after"
	FieldBirthDate      = "birth_date"
	FieldBirthTime      = "birth_time"
	FieldChildGender    = "child_gender"
	FieldChildWeight    = "child_weight"
	FieldDeliveryMethod = "delivery_method"
	FieldBloodLoss      = "blood_loss"
	FieldLaborDuration  = "labor_duration"
)

// Plausibility bounds of the numeric fields.
const (
	MinAge, MaxAge                       = 10, 70
	MinPregnancyWeeks, MaxPregnancyWeeks = 20, 45
	MaxMotherWeight                      = 300.0
	MinChildWeight, MaxChildWeight       = 300, 8000
	MaxBloodLoss                         = 10000
	MaxLaborDuration                     = 96.0
)

// BirthRecordValidator checks the clinical fields of a birth record.
// Creator fields (midwife, owner, entry date) are set by the service and
// not validated here.
type BirthRecordValidator struct{}

func NewBirthRecordValidator() Validator {
	return &BirthRecordValidator{}
}

func (v *BirthRecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.BirthRecord:
		return v.validateRecord(value, fields...)
	case *models.BirthRecord:
		return v.validateRecord(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *BirthRecordValidator) validateRecord(r models.BirthRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{
			FieldPatientName, FieldAge, FieldPregnancyWeeks, FieldWeightBefore, FieldWeightAfter,
			FieldBirthDate, FieldBirthTime, FieldChildGender, FieldChildWeight, FieldDeliveryMethod,
			FieldBloodLoss, FieldLaborDuration,
		}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldPatientName:
			if strings.TrimSpace(r.PatientName) == "" {
				err = ErrRequired
			}
		case FieldAge:
			err = intInRange(r.Age, MinAge, MaxAge)
		case FieldPregnancyWeeks:
			err = intInRange(r.PregnancyWeeks, MinPregnancyWeeks, MaxPregnancyWeeks)
		case FieldWeightBefore:
			err = floatInRange(r.WeightBefore, 0, MaxMotherWeight)
		case FieldWeightAfter:
			err = floatInRange(r.WeightAfter, 0, MaxMotherWeight)
		case FieldBirthDate:
			err = checkLayout(r.BirthDate, models.BirthDateLayout)
		case FieldBirthTime:
			err = checkLayout(r.BirthTime, models.BirthTimeLayout)
		case FieldChildGender:
			err = inVocabulary(r.ChildGender, models.Genders)
		case FieldChildWeight:
			err = intInRange(r.ChildWeight, MinChildWeight, MaxChildWeight)
		case FieldDeliveryMethod:
			err = inVocabulary(r.DeliveryMethod, models.DeliveryMethods)
		case FieldBloodLoss:
			err = intInRange(r.BloodLoss, 0, MaxBloodLoss)
		case FieldLaborDuration:
			err = floatInRange(r.LaborDuration, 0, MaxLaborDuration)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return invalid(f, err)
		}
	}

	return nil
}

func intInRange(v, lo, hi int) error {
	if v < lo || v > hi {
		return ErrOutOfRange
	}
	return nil
}

// floatInRange rejects zero: the weights and durations are mandatory.
func floatInRange(v, lo, hi float64) error {
	if v <= lo || v > hi {
		return ErrOutOfRange
	}
	return nil
}

func checkLayout(value, layout string) error {
	if value == "" {
		return ErrRequired
	}
	if _, err := time.Parse(layout, value); err != nil {
		return ErrInvalidFormat
	}
	return nil
}

func inVocabulary(value string, vocabulary []string) error {
	if value == "" {
		return ErrRequired
	}
	if !slices.Contains(vocabulary, value) {
		return ErrNotAllowed
	}
	return nil
}
