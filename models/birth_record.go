// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Delivery methods as they are stored and exported.
const (
	DeliveryNatural  = "Естественные роды"
	DeliveryCesarean = "Кесарево сечение"
	DeliveryVacuum   = "Вакуум-экстракция"
	DeliveryForceps  = "Акушерские щипцы"
)

// Child genders.
const (
	GenderBoy  = "Мальчик"
	GenderGirl = "Девочка"
)

// Layouts of the textual date and time fields.
const (
	EntryDateLayout = "2006-01-02 15:04"
	BirthDateLayout = "2006-01-02"
	BirthTimeLayout = "15:04"
)

// Exported flag values.
const (
	FlagYes = "Да"
	FlagNo  = "Нет"
)

// DeliveryMethods lists the delivery method vocabulary in display order.
var DeliveryMethods = []string{DeliveryNatural, DeliveryCesarean, DeliveryVacuum, DeliveryForceps}

// Genders lists the child gender vocabulary in display order.
var Genders = []string{GenderBoy, GenderGirl}

// BirthRecord is one patient/delivery entry logged by ward staff.
type BirthRecord struct {
	ID int64 `json:"id"`

	// OwnerAccountID references the account that created the record.
	// Zero for rows imported before ownership was tracked by id.
	OwnerAccountID int64 `json:"owner_account_id"`

	// Midwife is the creator's display name, kept for reports.
	// It is set on creation and never edited afterwards.
	Midwife string `json:"midwife"`

	// EntryDate is the registration stamp in "YYYY-MM-DD HH:MM".
	EntryDate string `json:"entry_date"`

	PatientName    string  `json:"patient_name"`
	Age            int     `json:"age"`
	PregnancyWeeks int     `json:"pregnancy_weeks"`
	WeightBefore   float64 `json:"weight_before"`
	WeightAfter    float64 `json:"weight_after"`
	Complications  string  `json:"complications"`
	Notes          string  `json:"notes"`

	// BirthDate is "YYYY-MM-DD"; BirthTime is "HH:MM".
	BirthDate string `json:"birth_date"`
	BirthTime string `json:"birth_time"`

	ChildGender    string  `json:"child_gender"`
	ChildWeight    int     `json:"child_weight"`
	DeliveryMethod string  `json:"delivery_method"`
	Anesthesia     string  `json:"anesthesia"`
	BloodLoss      int     `json:"blood_loss"`
	LaborDuration  float64 `json:"labor_duration"`
	OtherDiseases  string  `json:"other_diseases"`

	Gestosis                bool `json:"gestosis"`
	Diabetes                bool `json:"diabetes"`
	Hypertension            bool `json:"hypertension"`
	Anemia                  bool `json:"anemia"`
	Infections              bool `json:"infections"`
	PlacentaPathology       bool `json:"placenta_pathology"`
	Polyhydramnios          bool `json:"polyhydramnios"`
	Oligohydramnios         bool `json:"oligohydramnios"`
	MildPreeclampsia        bool `json:"mild_preeclampsia"`
	SeverePreeclampsia      bool `json:"severe_preeclampsia"`
	Eclampsia               bool `json:"eclampsia"`
	GestationalHypertension bool `json:"gestational_hypertension"`
	PlacentaAccreta         bool `json:"placenta_accreta"`
	ShoulderDystocia        bool `json:"shoulder_dystocia"`
	ThirdDegreeTear         bool `json:"third_degree_tear"`
	CordProlapse            bool `json:"cord_prolapse"`
	PostpartumHemorrhage    bool `json:"postpartum_hemorrhage"`
	PlacentalAbruption      bool `json:"placental_abruption"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the BirthRecord model.
func (r BirthRecord) TableName() string {
	return "birth_records"
}

// ComplicationFlag describes one yes/no complication column.
type ComplicationFlag struct {
	// Column is the database column name.
	Column string
	// Label is the Russian display and export label.
	Label string
}

// ComplicationFlags lists all complication flags in canonical order.
// The order matches [BirthRecord.FlagValues] and [BirthRecord.FlagRefs].
var ComplicationFlags = []ComplicationFlag{
	{Column: "gestosis", Label: "Гестоз"},
	{Column: "diabetes", Label: "Сахарный диабет"},
	{Column: "hypertension", Label: "Гипертония"},
	{Column: "anemia", Label: "Анемия"},
	{Column: "infections", Label: "Инфекции"},
	{Column: "placenta_pathology", Label: "Патология плаценты"},
	{Column: "polyhydramnios", Label: "Многоводие"},
	{Column: "oligohydramnios", Label: "Маловодие"},
	{Column: "pls", Label: "Преэклампсия лёгкой степени"},
	{Column: "pts", Label: "Преэклампсия тяжёлой степени"},
	{Column: "eclampsia", Label: "Эклампсия"},
	{Column: "gestational_hypertension", Label: "Гестационная гипертензия"},
	{Column: "placenta_previa", Label: "Плотное прикрепление последа"},
	{Column: "shoulder_dystocia", Label: "Дистоция плечиков"},
	{Column: "third_degree_tear", Label: "Разрыв промежности III степени"},
	{Column: "cord_prolapse", Label: "Выпадение пуповины"},
	{Column: "postpartum_hemorrhage", Label: "Послеродовое кровотечение"},
	{Column: "placental_abruption", Label: "Отслойка плаценты"},
}

// FlagRefs returns pointers to the complication flags in canonical order.
// Used for scanning rows and decoding forms.
func (r *BirthRecord) FlagRefs() []*bool {
	return []*bool{
		&r.Gestosis, &r.Diabetes, &r.Hypertension, &r.Anemia, &r.Infections,
		&r.PlacentaPathology, &r.Polyhydramnios, &r.Oligohydramnios,
		&r.MildPreeclampsia, &r.SeverePreeclampsia, &r.Eclampsia,
		&r.GestationalHypertension, &r.PlacentaAccreta, &r.ShoulderDystocia,
		&r.ThirdDegreeTear, &r.CordProlapse, &r.PostpartumHemorrhage,
		&r.PlacentalAbruption,
	}
}

// FlagValues returns the complication flags in canonical order.
func (r BirthRecord) FlagValues() []bool {
	refs := r.FlagRefs()
	values := make([]bool, len(refs))
	for i, ref := range refs {
		values[i] = *ref
	}
	return values
}

// YesNo renders a flag the way it is exported.
func YesNo(v bool) string {
	if v {
		return FlagYes
	}
	return FlagNo
}

// RecordList is the response for record searches.
type RecordList struct {
	Records []BirthRecord `json:"records"`
	Length  int           `json:"length"`
}

// FilterOptions carries the values a client needs to build filter forms.
type FilterOptions struct {
	Midwives        []string `json:"midwives"`
	DeliveryMethods []string `json:"delivery_methods"`
	Genders         []string `json:"genders"`
	AgeMin          int      `json:"age_min"`
	AgeMax          int      `json:"age_max"`
	ChildWeightMin  int      `json:"child_weight_min"`
	ChildWeightMax  int      `json:"child_weight_max"`
	BloodLossMin    int      `json:"blood_loss_min"`
	BloodLossMax    int      `json:"blood_loss_max"`
}
