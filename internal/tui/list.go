package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/umay/models"
)

const (
	listNameWidth   = 28
	listMethodWidth = 18
)

func renderRecordList(records []models.BirthRecord, idx int) string {
	if len(records) == 0 {
		return "Нет записей"
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(padRight("Дата", 17))
	b.WriteString(padRight("Пациентка", listNameWidth+2))
	b.WriteString(padRight("Способ", listMethodWidth+2))
	b.WriteString("Вес\n")

	for i, r := range records {
		cursor := "  "
		if i == idx {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s%s%s%d г",
			cursor,
			padRight(valueOrDash(strings.TrimSpace(r.BirthDate+" "+r.BirthTime)), 17),
			padRight(fitText(r.PatientName, listNameWidth), listNameWidth+2),
			padRight(fitText(valueOrDash(r.DeliveryMethod), listMethodWidth), listMethodWidth+2),
			r.ChildWeight,
		)
		if i == idx {
			line = titleStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
