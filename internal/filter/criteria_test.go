package filter

import (
	"errors"
	"net/url"
	"testing"

	"github.com/MKhiriev/umay/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func sampleRecords() []models.BirthRecord {
	return []models.BirthRecord{
		{ID: 3, PatientName: "Асель Нурланова", Midwife: "Айгуль", Age: 24, BirthDate: "2025-03-02",
			ChildGender: models.GenderGirl, ChildWeight: 3100, DeliveryMethod: models.DeliveryNatural, BloodLoss: 400},
		{ID: 2, PatientName: "Жанар Омарова", Midwife: "Дана", Age: 31, BirthDate: "2025-03-15",
			ChildGender: models.GenderBoy, ChildWeight: 3650, DeliveryMethod: models.DeliveryCesarean, BloodLoss: 600},
		{ID: 1, PatientName: "АСЕМ Каримова", Midwife: "Айгуль", Age: 38, BirthDate: "2025-04-01",
			ChildGender: models.GenderBoy, ChildWeight: 4200, DeliveryMethod: models.DeliveryVacuum, BloodLoss: 1200},
	}
}

func ids(records []models.BirthRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name     string
		criteria Criteria
		want     []int64
	}{
		{name: "empty criteria keeps everything in order", criteria: Criteria{}, want: []int64{3, 2, 1}},
		{name: "name substring case-insensitive cyrillic", criteria: Criteria{NameSubstring: "асе"}, want: []int64{3, 1}},
		{name: "date from inclusive", criteria: Criteria{DateFrom: "2025-03-15"}, want: []int64{2, 1}},
		{name: "date to inclusive", criteria: Criteria{DateTo: "2025-03-15"}, want: []int64{3, 2}},
		{name: "midwife set", criteria: Criteria{Midwives: []string{"Дана"}}, want: []int64{2}},
		{name: "delivery method set", criteria: Criteria{DeliveryMethods: []string{models.DeliveryNatural, models.DeliveryVacuum}}, want: []int64{3, 1}},
		{name: "gender set", criteria: Criteria{Genders: []string{models.GenderBoy}}, want: []int64{2, 1}},
		{name: "blood loss range", criteria: Criteria{BloodLossRange: &Range{Min: ptr(500), Max: ptr(1000)}}, want: []int64{2}},
		{name: "open max", criteria: Criteria{AgeRange: &Range{Min: ptr(30)}}, want: []int64{2, 1}},
		{name: "combined", criteria: Criteria{Midwives: []string{"Айгуль"}, ChildWeightRange: &Range{Max: ptr(3500)}}, want: []int64{3}},
		{name: "nothing matches", criteria: Criteria{NameSubstring: "нет такой"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(records, tt.criteria)))
		})
	}
}

func TestRange_Inclusive(t *testing.T) {
	for _, v := range []float64{400, 600, 1200} {
		r := &Range{Min: ptr(v), Max: ptr(v)}
		assert.True(t, r.Contains(v), "min == max == %v must match", v)
		assert.False(t, r.Contains(v+1))
		assert.False(t, r.Contains(v-1))
	}

	var open *Range
	assert.True(t, open.Contains(-1))
	assert.True(t, (&Range{}).Contains(1e9))
}

func TestApply_SameResultForEveryConsumer(t *testing.T) {
	records := sampleRecords()
	q := url.Values{}
	q.Set(ParamBloodLossMin, "500")
	q.Set(ParamBloodLossMax, "1000")

	c, err := ParseCriteria(q)
	require.NoError(t, err)

	search := Apply(records, c)
	export := Apply(records, c)
	assert.Equal(t, search, export)
	require.Len(t, search, 1)
	assert.Equal(t, 600, search[0].BloodLoss)
}

func TestParseCriteria(t *testing.T) {
	q := url.Values{}
	q.Set(ParamSearch, "  Асель ")
	q.Set(ParamDateFrom, "2025-01-01")
	q.Set(ParamDateTo, "2025-12-31")
	q.Add(ParamMidwives, "Айгуль")
	q.Add(ParamMidwives, "")
	q.Add(ParamMidwives, "Дана")
	q.Add(ParamGenders, models.GenderGirl)
	q.Set(ParamAgeMin, "18")
	q.Set(ParamWeightMax, "3500,5")

	c, err := ParseCriteria(q)
	require.NoError(t, err)

	assert.Equal(t, "Асель", c.NameSubstring)
	assert.Equal(t, "2025-01-01", c.DateFrom)
	assert.Equal(t, "2025-12-31", c.DateTo)
	assert.Equal(t, []string{"Айгуль", "Дана"}, c.Midwives)
	assert.Equal(t, []string{models.GenderGirl}, c.Genders)
	assert.Nil(t, c.DeliveryMethods)
	require.NotNil(t, c.AgeRange)
	assert.Equal(t, 18.0, *c.AgeRange.Min)
	assert.Nil(t, c.AgeRange.Max)
	require.NotNil(t, c.ChildWeightRange)
	assert.Equal(t, 3500.5, *c.ChildWeightRange.Max)
	assert.Nil(t, c.BloodLossRange)
	assert.False(t, c.IsEmpty())
}

func TestParseCriteria_Empty(t *testing.T) {
	c, err := ParseCriteria(url.Values{ParamSearch: {""}, ParamAgeMin: {" "}})
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestParseCriteria_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		field string
	}{
		{name: "non numeric age", query: url.Values{ParamAgeMin: {"twenty"}}, field: ParamAgeMin},
		{name: "non numeric blood loss max", query: url.Values{ParamBloodLossMax: {"1k"}}, field: ParamBloodLossMax},
		{name: "nan bound", query: url.Values{ParamBloodLossMax: {"NaN"}}, field: ParamBloodLossMax},
		{name: "lower case nan", query: url.Values{ParamAgeMin: {"nan"}}, field: ParamAgeMin},
		{name: "infinite bound", query: url.Values{ParamWeightMax: {"Inf"}}, field: ParamWeightMax},
		{name: "signed infinity", query: url.Values{ParamWeightMin: {"-Infinity"}}, field: ParamWeightMin},
		{name: "hex float", query: url.Values{ParamBloodLossMin: {"0x1p10"}}, field: ParamBloodLossMin},
		{name: "exponent", query: url.Values{ParamBloodLossMin: {"1e3"}}, field: ParamBloodLossMin},
		{name: "underscores", query: url.Values{ParamWeightMin: {"3_000"}}, field: ParamWeightMin},
		{name: "inverted range", query: url.Values{ParamWeightMin: {"4000"}, ParamWeightMax: {"3000"}}, field: ParamWeightMin},
		{name: "bad date", query: url.Values{ParamDateTo: {"01.02.2025"}}, field: ParamDateTo},
		{name: "inverted dates", query: url.Values{ParamDateFrom: {"2025-02-01"}, ParamDateTo: {"2025-01-01"}}, field: ParamDateFrom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCriteria(tt.query)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCriteria))

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestParseCriteria_DecimalBounds(t *testing.T) {
	c, err := ParseCriteria(url.Values{
		ParamAgeMin:       {"+18"},
		ParamAgeMax:       {"35,5"},
		ParamBloodLossMin: {".5"},
		ParamBloodLossMax: {"1000."},
	})
	require.NoError(t, err)
	assert.Equal(t, &Range{Min: ptr(18), Max: ptr(35.5)}, c.AgeRange)
	assert.Equal(t, &Range{Min: ptr(0.5), Max: ptr(1000)}, c.BloodLossRange)
}

func TestParseCriteria_RejectedBoundNeverWidensFilter(t *testing.T) {
	records := []models.BirthRecord{{ID: 1, BloodLoss: 400}, {ID: 2, BloodLoss: 5000}}

	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf"} {
		c, err := ParseCriteria(url.Values{ParamBloodLossMax: {raw}})
		require.Error(t, err, raw)
		assert.True(t, c.IsEmpty(), raw)
	}

	c, err := ParseCriteria(url.Values{ParamBloodLossMax: {"1000"}})
	require.NoError(t, err)
	assert.Len(t, Apply(records, c), 1)
}

func TestCriteria_EncodeRoundTrip(t *testing.T) {
	c := Criteria{
		NameSubstring:   "Жанар",
		DateFrom:        "2025-03-01",
		Midwives:        []string{"Айгуль", "Дана"},
		DeliveryMethods: []string{models.DeliveryCesarean},
		BloodLossRange:  &Range{Min: ptr(500), Max: ptr(1000)},
		AgeRange:        &Range{Max: ptr(35.5)},
	}

	parsed, err := ParseCriteria(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
	assert.Empty(t, Criteria{}.Encode())
}

func TestOptions(t *testing.T) {
	opts := Options(sampleRecords())

	assert.Equal(t, []string{"Айгуль", "Дана"}, opts.Midwives)
	assert.Equal(t, models.DeliveryMethods, opts.DeliveryMethods)
	assert.Equal(t, models.Genders, opts.Genders)
	assert.Equal(t, 24, opts.AgeMin)
	assert.Equal(t, 38, opts.AgeMax)
	assert.Equal(t, 3100, opts.ChildWeightMin)
	assert.Equal(t, 4200, opts.ChildWeightMax)
	assert.Equal(t, 400, opts.BloodLossMin)
	assert.Equal(t, 1200, opts.BloodLossMax)

	empty := Options(nil)
	assert.Empty(t, empty.Midwives)
	assert.Zero(t, empty.AgeMax)
}
