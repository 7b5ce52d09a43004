// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package report

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"time"

	"github.com/MKhiriev/umay/models"
)

// ErrNoData is returned when there is nothing to aggregate or export.
var ErrNoData = errors.New("no data in range")

// labelUnspecified groups records with an empty categorical value.
const labelUnspecified = "Не указано"

// Bucket is one category of a distribution.
type Bucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TrendPoint counts births in one calendar month.
type TrendPoint struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

// Statistics is the aggregate view over a record set.
type Statistics struct {
	Total int `json:"total"`

	ByDeliveryMethod []Bucket `json:"by_delivery_method"`
	ByGender         []Bucket `json:"by_gender"`
	ByAnesthesia     []Bucket `json:"by_anesthesia"`

	AvgAge            float64 `json:"avg_age"`
	AvgPregnancyWeeks float64 `json:"avg_pregnancy_weeks"`
	AvgChildWeight    float64 `json:"avg_child_weight"`
	AvgBloodLoss      float64 `json:"avg_blood_loss"`
	AvgWeightLoss     float64 `json:"avg_weight_loss"`
	AvgLaborDuration  float64 `json:"avg_labor_duration"`
	MinLaborDuration  float64 `json:"min_labor_duration"`
	MaxLaborDuration  float64 `json:"max_labor_duration"`

	// Complications has one bucket per flag in canonical order. Percentages
	// are relative to Total and do not sum to 100.
	Complications []Bucket `json:"complications"`

	Trend    []TrendPoint `json:"trend"`
	Midwives []Bucket     `json:"midwives"`
}

// Compute aggregates records. It returns ErrNoData for an empty set.
func Compute(records []models.BirthRecord) (Statistics, error) {
	if len(records) == 0 {
		return Statistics{}, ErrNoData
	}

	total := len(records)
	stats := Statistics{Total: total}

	var (
		methods    = newCounter(models.DeliveryMethods)
		genders    = newCounter(models.Genders)
		anesthesia = newCounter(nil)
		midwives   = newCounter(nil)
		flagCounts = make([]int, len(models.ComplicationFlags))
		months     = make(map[[2]int]int)
	)
	var age, weeks, childWeight, bloodLoss, weightLoss, labor float64

	stats.MinLaborDuration = records[0].LaborDuration
	stats.MaxLaborDuration = records[0].LaborDuration

	for _, r := range records {
		methods.add(r.DeliveryMethod)
		genders.add(r.ChildGender)
		anesthesia.add(r.Anesthesia)
		midwives.add(r.Midwife)

		for i, set := range r.FlagValues() {
			if set {
				flagCounts[i]++
			}
		}

		if d, err := time.Parse(models.BirthDateLayout, r.BirthDate); err == nil {
			months[[2]int{d.Year(), int(d.Month())}]++
		}

		age += float64(r.Age)
		weeks += float64(r.PregnancyWeeks)
		childWeight += float64(r.ChildWeight)
		bloodLoss += float64(r.BloodLoss)
		weightLoss += r.WeightBefore - r.WeightAfter
		labor += r.LaborDuration
		stats.MinLaborDuration = min(stats.MinLaborDuration, r.LaborDuration)
		stats.MaxLaborDuration = max(stats.MaxLaborDuration, r.LaborDuration)
	}

	n := float64(total)
	stats.AvgAge = round(age/n, 1)
	stats.AvgPregnancyWeeks = round(weeks/n, 1)
	stats.AvgChildWeight = round(childWeight/n, 0)
	stats.AvgBloodLoss = round(bloodLoss/n, 0)
	stats.AvgWeightLoss = round(weightLoss/n, 1)
	stats.AvgLaborDuration = round(labor/n, 1)
	stats.MinLaborDuration = round(stats.MinLaborDuration, 1)
	stats.MaxLaborDuration = round(stats.MaxLaborDuration, 1)

	stats.ByDeliveryMethod = methods.buckets(total)
	stats.ByGender = genders.buckets(total)
	stats.ByAnesthesia = anesthesia.buckets(total)

	stats.Midwives = midwives.buckets(total)
	slices.SortStableFunc(stats.Midwives, func(a, b Bucket) int {
		return cmp.Compare(b.Count, a.Count)
	})

	stats.Complications = make([]Bucket, len(models.ComplicationFlags))
	for i, flag := range models.ComplicationFlags {
		stats.Complications[i] = Bucket{
			Label:   flag.Label,
			Count:   flagCounts[i],
			Percent: round(float64(flagCounts[i])*100/n, 1),
		}
	}

	stats.Trend = make([]TrendPoint, 0, len(months))
	for key, count := range months {
		stats.Trend = append(stats.Trend, TrendPoint{Year: key[0], Month: key[1], Count: count})
	}
	slices.SortFunc(stats.Trend, func(a, b TrendPoint) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})

	return stats, nil
}

// counter counts categorical values. Vocabulary values come first, in
// vocabulary order; other values follow in order of first appearance.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter(vocabulary []string) *counter {
	return &counter{order: slices.Clone(vocabulary), counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if label == "" {
		label = labelUnspecified
	}
	if _, ok := c.counts[label]; !ok && !slices.Contains(c.order, label) {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// buckets drops unused labels and assigns percentages summing to exactly 100.
func (c *counter) buckets(total int) []Bucket {
	result := make([]Bucket, 0, len(c.counts))
	counts := make([]int, 0, len(c.counts))
	for _, label := range c.order {
		if count := c.counts[label]; count > 0 {
			result = append(result, Bucket{Label: label, Count: count})
			counts = append(counts, count)
		}
	}
	for i, p := range percentages(counts, total) {
		result[i].Percent = p
	}
	return result
}

// percentages distributes 100.0 over counts with one decimal place using
// the largest remainder method.
func percentages(counts []int, total int) []float64 {
	result := make([]float64, len(counts))
	if total == 0 {
		return result
	}

	tenths := make([]int, len(counts))
	remainders := make([]int, len(counts))
	assigned := 0
	for i, c := range counts {
		tenths[i] = c * 1000 / total
		remainders[i] = c * 1000 % total
		assigned += tenths[i]
	}

	idx := make([]int, len(counts))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(remainders[b], remainders[a])
	})
	for k := 0; assigned < 1000 && k < len(idx); k++ {
		tenths[idx[k]]++
		assigned++
	}

	for i, t := range tenths {
		result[i] = float64(t) / 10
	}
	return result
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
