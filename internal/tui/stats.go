package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/umay/internal/adapter"
	"github.com/MKhiriev/umay/internal/report"
)

// maxComplicationRows limits the complication table to the most frequent ones.
const maxComplicationRows = 5

func renderStats(d adapter.Dashboard) string {
	s := d.Stats
	if s.Total == 0 {
		return "Нет данных"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Всего родов:         %d\n", s.Total)
	fmt.Fprintf(&b, "Средний возраст:     %s\n", formatFloat(s.AvgAge))
	fmt.Fprintf(&b, "Средний срок:        %s нед.\n", formatFloat(s.AvgPregnancyWeeks))
	fmt.Fprintf(&b, "Средний вес ребёнка: %s г\n", formatFloat(s.AvgChildWeight))
	fmt.Fprintf(&b, "Кровопотеря:         %s мл\n", formatFloat(s.AvgBloodLoss))
	fmt.Fprintf(&b, "Длительность родов:  %s ч (%s–%s)\n",
		formatFloat(s.AvgLaborDuration), formatFloat(s.MinLaborDuration), formatFloat(s.MaxLaborDuration))

	writeBuckets(&b, "Способ родоразрешения", s.ByDeliveryMethod, 0)
	writeBuckets(&b, "Пол ребёнка", s.ByGender, 0)
	writeBuckets(&b, "Анестезия", s.ByAnesthesia, 0)
	writeBuckets(&b, "Осложнения", frequent(s.Complications), maxComplicationRows)

	return strings.TrimRight(b.String(), "\n")
}

func writeBuckets(b *strings.Builder, title string, buckets []report.Bucket, limit int) {
	if len(buckets) == 0 {
		return
	}
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, bucket := range buckets {
		fmt.Fprintf(b, "  %s %4d  %5.1f%%\n", padRight(fitText(bucket.Label, 30), 30), bucket.Count, bucket.Percent)
	}
}

// frequent drops complications nobody had and orders the rest by count.
func frequent(buckets []report.Bucket) []report.Bucket {
	out := make([]report.Bucket, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.Count > 0 {
			out = append(out, bucket)
		}
	}
	slices.SortStableFunc(out, func(a, b report.Bucket) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}
