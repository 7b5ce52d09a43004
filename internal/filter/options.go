package filter

import (
	"slices"

	"github.com/MKhiriev/umay/models"
)

// Options collects distinct categorical values and numeric bounds over
// records, for building filter forms. Vocabulary values are always offered
// even when no record uses them yet.
func Options(records []models.BirthRecord) models.FilterOptions {
	opts := models.FilterOptions{
		DeliveryMethods: slices.Clone(models.DeliveryMethods),
		Genders:         slices.Clone(models.Genders),
	}

	seen := make(map[string]struct{})
	for i, r := range records {
		if r.Midwife != "" {
			if _, ok := seen[r.Midwife]; !ok {
				seen[r.Midwife] = struct{}{}
				opts.Midwives = append(opts.Midwives, r.Midwife)
			}
		}
		if r.DeliveryMethod != "" && !slices.Contains(opts.DeliveryMethods, r.DeliveryMethod) {
			opts.DeliveryMethods = append(opts.DeliveryMethods, r.DeliveryMethod)
		}
		if r.ChildGender != "" && !slices.Contains(opts.Genders, r.ChildGender) {
			opts.Genders = append(opts.Genders, r.ChildGender)
		}

		if i == 0 {
			opts.AgeMin, opts.AgeMax = r.Age, r.Age
			opts.ChildWeightMin, opts.ChildWeightMax = r.ChildWeight, r.ChildWeight
			opts.BloodLossMin, opts.BloodLossMax = r.BloodLoss, r.BloodLoss
			continue
		}
		opts.AgeMin, opts.AgeMax = min(opts.AgeMin, r.Age), max(opts.AgeMax, r.Age)
		opts.ChildWeightMin, opts.ChildWeightMax = min(opts.ChildWeightMin, r.ChildWeight), max(opts.ChildWeightMax, r.ChildWeight)
		opts.BloodLossMin, opts.BloodLossMax = min(opts.BloodLossMin, r.BloodLoss), max(opts.BloodLossMax, r.BloodLoss)
	}
	slices.Sort(opts.Midwives)

	return opts
}
