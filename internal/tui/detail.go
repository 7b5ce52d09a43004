package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/umay/models"
)

func renderRecordDetail(r models.BirthRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Пациентка:     %s\n", valueOrDash(r.PatientName))
	fmt.Fprintf(&b, "Возраст:       %d\n", r.Age)
	fmt.Fprintf(&b, "Срок:          %d нед.\n", r.PregnancyWeeks)
	fmt.Fprintf(&b, "Вес до/после:  %s / %s кг\n", formatFloat(r.WeightBefore), formatFloat(r.WeightAfter))
	fmt.Fprintf(&b, "Дата родов:    %s %s\n", valueOrDash(r.BirthDate), r.BirthTime)
	fmt.Fprintf(&b, "Способ:        %s\n", valueOrDash(r.DeliveryMethod))
	fmt.Fprintf(&b, "Анестезия:     %s\n", valueOrDash(r.Anesthesia))
	fmt.Fprintf(&b, "Длительность:  %s ч\n", formatFloat(r.LaborDuration))
	fmt.Fprintf(&b, "Кровопотеря:   %d мл\n", r.BloodLoss)
	fmt.Fprintf(&b, "Ребёнок:       %s, %d г\n", valueOrDash(r.ChildGender), r.ChildWeight)

	var present []string
	for i, on := range r.FlagValues() {
		if on {
			present = append(present, models.ComplicationFlags[i].Label)
		}
	}
	if len(present) == 0 {
		b.WriteString("Осложнения:    нет\n")
	} else {
		b.WriteString("Осложнения:\n")
		for _, label := range present {
			b.WriteString("  • ")
			b.WriteString(label)
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "Другое:        %s\n", valueOrDash(r.OtherDiseases))
	fmt.Fprintf(&b, "Заметки:       %s\n", valueOrDash(r.Notes))
	fmt.Fprintf(&b, "Акушерка:      %s\n", valueOrDash(r.Midwife))
	fmt.Fprintf(&b, "Внесено:       %s", valueOrDash(r.EntryDate))

	return b.String()
}
