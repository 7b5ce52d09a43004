// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package filter narrows a birth record set by user supplied criteria.
//
// Search, the dashboard, analytics and every export format go through
// [Apply], so a given [Criteria] always selects the same records in the
// same order.
package filter

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/umay/models"
)

// Range is an inclusive numeric bound. A nil end is open.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Contains reports whether v lies within the range, ends included.
func (r *Range) Contains(v float64) bool {
	if r == nil {
		return true
	}
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func (r *Range) empty() bool {
	return r == nil || (r.Min == nil && r.Max == nil)
}

// Criteria holds all optional record filters. Zero value matches everything.
type Criteria struct {
	// NameSubstring is matched case-insensitively against the patient name.
	NameSubstring string `json:"search,omitempty"`

	// DateFrom and DateTo bound the birth date ("YYYY-MM-DD"), inclusive.
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`

	Midwives        []string `json:"midwives,omitempty"`
	DeliveryMethods []string `json:"delivery_methods,omitempty"`
	Genders         []string `json:"genders,omitempty"`

	AgeRange         *Range `json:"age,omitempty"`
	ChildWeightRange *Range `json:"child_weight,omitempty"`
	BloodLossRange   *Range `json:"blood_loss,omitempty"`
}

// Query parameter names understood by [ParseCriteria].
const (
	ParamSearch          = "search"
	ParamDateFrom        = "date_from"
	ParamDateTo          = "date_to"
	ParamMidwives        = "midwives"
	ParamDeliveryMethods = "delivery_methods"
	ParamGenders         = "genders"
	ParamAgeMin          = "age_min"
	ParamAgeMax          = "age_max"
	ParamWeightMin       = "weight_min"
	ParamWeightMax       = "weight_max"
	ParamBloodLossMin    = "blood_loss_min"
	ParamBloodLossMax    = "blood_loss_max"
)

// IsEmpty reports whether c selects every record.
func (c Criteria) IsEmpty() bool {
	return c.NameSubstring == "" && c.DateFrom == "" && c.DateTo == "" &&
		len(c.Midwives) == 0 && len(c.DeliveryMethods) == 0 && len(c.Genders) == 0 &&
		c.AgeRange.empty() && c.ChildWeightRange.empty() && c.BloodLossRange.empty()
}

// Match reports whether record satisfies every populated criterion.
func (c Criteria) Match(record models.BirthRecord) bool {
	if c.NameSubstring != "" &&
		!strings.Contains(strings.ToLower(record.PatientName), strings.ToLower(c.NameSubstring)) {
		return false
	}

	// dates are ISO strings, so lexicographic order is chronological
	if c.DateFrom != "" && record.BirthDate < c.DateFrom {
		return false
	}
	if c.DateTo != "" && record.BirthDate > c.DateTo {
		return false
	}

	if len(c.Midwives) > 0 && !slices.Contains(c.Midwives, record.Midwife) {
		return false
	}
	if len(c.DeliveryMethods) > 0 && !slices.Contains(c.DeliveryMethods, record.DeliveryMethod) {
		return false
	}
	if len(c.Genders) > 0 && !slices.Contains(c.Genders, record.ChildGender) {
		return false
	}

	return c.AgeRange.Contains(float64(record.Age)) &&
		c.ChildWeightRange.Contains(float64(record.ChildWeight)) &&
		c.BloodLossRange.Contains(float64(record.BloodLoss))
}

// Apply returns the records matching c, preserving input order.
func Apply(records []models.BirthRecord, c Criteria) []models.BirthRecord {
	result := make([]models.BirthRecord, 0, len(records))
	for _, record := range records {
		if c.Match(record) {
			result = append(result, record)
		}
	}
	return result
}

// Encode renders c back into query parameters understood by [ParseCriteria].
func (c Criteria) Encode() url.Values {
	values := url.Values{}
	setString := func(key, v string) {
		if v != "" {
			values.Set(key, v)
		}
	}
	setFloat := func(key string, v *float64) {
		if v != nil {
			values.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
		}
	}

	setString(ParamSearch, c.NameSubstring)
	setString(ParamDateFrom, c.DateFrom)
	setString(ParamDateTo, c.DateTo)
	for _, m := range c.Midwives {
		values.Add(ParamMidwives, m)
	}
	for _, m := range c.DeliveryMethods {
		values.Add(ParamDeliveryMethods, m)
	}
	for _, g := range c.Genders {
		values.Add(ParamGenders, g)
	}
	if c.AgeRange != nil {
		setFloat(ParamAgeMin, c.AgeRange.Min)
		setFloat(ParamAgeMax, c.AgeRange.Max)
	}
	if c.ChildWeightRange != nil {
		setFloat(ParamWeightMin, c.ChildWeightRange.Min)
		setFloat(ParamWeightMax, c.ChildWeightRange.Max)
	}
	if c.BloodLossRange != nil {
		setFloat(ParamBloodLossMin, c.BloodLossRange.Min)
		setFloat(ParamBloodLossMax, c.BloodLossRange.Max)
	}

	return values
}
