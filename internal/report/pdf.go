package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/MKhiriev/umay/models"
)

const (
	pdfFamilyUTF8 = "umay"
	pdfFamilyCore = "Helvetica"
	pdfLineHeight = 6.0
)

// pdfColumns are the detail table columns of PDF reports.
var pdfColumns = []struct {
	title string
	width float64
	value func(models.BirthRecord) string
}{
	{"ФИО роженицы", 50, func(r models.BirthRecord) string { return r.PatientName }},
	{"Возраст", 16, func(r models.BirthRecord) string { return strconv.Itoa(r.Age) }},
	{"Дата родов", 24, func(r models.BirthRecord) string { return r.BirthDate }},
	{"Пол ребенка", 22, func(r models.BirthRecord) string { return r.ChildGender }},
	{"Вес ребенка", 22, func(r models.BirthRecord) string { return strconv.Itoa(r.ChildWeight) }},
	{"Способ родоразрешения", 46, func(r models.BirthRecord) string { return r.DeliveryMethod }},
}

// PDFRenderer writes a printable summary: title, statistics and the first
// MaxRows records. Cyrillic text needs either a UTF-8 TrueType font or the
// cp1251 translation of the core fonts.
type PDFRenderer struct {
	FontPath string
	MaxRows  int
}

func NewPDFRenderer(fontPath string, maxRows int) PDFRenderer {
	return PDFRenderer{FontPath: fontPath, MaxRows: maxRows}
}

func (p PDFRenderer) Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetAutoPageBreak(true, 15)

	family := pdfFamilyCore
	tr := func(s string) string { return s }
	if p.FontPath != "" {
		pdf.AddUTF8Font(pdfFamilyUTF8, "", p.FontPath)
		pdf.AddUTF8Font(pdfFamilyUTF8, "B", p.FontPath)
		family = pdfFamilyUTF8
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("cp1251")
	}

	pdf.AddPage()

	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 10)
	subtitle := "Создан: " + doc.GeneratedAt.Format("02.01.2006 15:04")
	if doc.Author != "" {
		subtitle += "  Акушерка: " + doc.Author
	}
	pdf.CellFormat(0, pdfLineHeight, tr(subtitle), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	p.writeSummary(pdf, family, tr, doc.Stats)
	pdf.Ln(4)
	p.writeDetails(pdf, family, tr, doc.Records)
	p.writeNotes(pdf, family, tr, doc.Records)

	return pdf.Output(w)
}

func (p PDFRenderer) writeSummary(pdf *fpdf.Fpdf, family string, tr func(string) string, stats Statistics) {
	rows := [][2]string{
		{"Всего рожениц", strconv.Itoa(stats.Total)},
		{"Средний возраст, лет", formatFloat(stats.AvgAge)},
		{"Средний срок беременности, недель", formatFloat(stats.AvgPregnancyWeeks)},
		{"Средний вес ребенка, г", formatFloat(stats.AvgChildWeight)},
		{"Средняя кровопотеря, мл", formatFloat(stats.AvgBloodLoss)},
		{"Средняя продолжительность родов, ч", formatFloat(stats.AvgLaborDuration)},
	}
	for _, b := range stats.ByDeliveryMethod {
		rows = append(rows, [2]string{b.Label, fmt.Sprintf("%d (%.1f%%)", b.Count, b.Percent)})
	}

	pdf.SetFont(family, "B", 11)
	pdf.CellFormat(0, pdfLineHeight+2, tr("Статистика"), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 10)
	for _, row := range rows {
		pdf.CellFormat(90, pdfLineHeight, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, pdfLineHeight, tr(row[1]), "1", 1, "R", false, 0, "")
	}
}

func (p PDFRenderer) writeDetails(pdf *fpdf.Fpdf, family string, tr func(string) string, records []models.BirthRecord) {
	pdf.SetFont(family, "B", 9)
	pdf.SetFillColor(200, 200, 200)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, pdfLineHeight+1, tr(c.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 8)
	pdf.SetFillColor(245, 245, 220)
	for i, r := range records {
		if p.MaxRows > 0 && i >= p.MaxRows {
			break
		}
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, pdfLineHeight, tr(c.value(r)), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

// writeNotes lists free-text complications and notes. Nothing is written
// when no record has either.
func (p PDFRenderer) writeNotes(pdf *fpdf.Fpdf, family string, tr func(string) string, records []models.BirthRecord) {
	var withText []models.BirthRecord
	for i, r := range records {
		if p.MaxRows > 0 && i >= p.MaxRows {
			break
		}
		if r.Complications != "" || r.Notes != "" {
			withText = append(withText, r)
		}
	}
	if len(withText) == 0 {
		return
	}

	pdf.Ln(4)
	pdf.SetFont(family, "B", 11)
	pdf.CellFormat(0, pdfLineHeight+2, tr("Осложнения и примечания"), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 8)
	for _, r := range withText {
		pdf.CellFormat(50, pdfLineHeight, tr(r.PatientName), "1", 0, "L", false, 0, "")
		pdf.MultiCell(0, pdfLineHeight, tr(joinNonEmpty(r.Complications, r.Notes)), "1", "L", false)
	}
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "; " + b
}
