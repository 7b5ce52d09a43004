// Package report aggregates birth records and renders them as CSV, Excel
// or PDF documents.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/models"
)

// ErrUnknownFormat is returned for an export format with no renderer.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// FileName returns the download name of a report generated at now.
func FileName(now time.Time, format Format) string {
	return fmt.Sprintf("umay_report_%s.%s", now.Format("20060102_1504"), format)
}

// Document is the input of a renderer: one filtered record set and the
// statistics computed over it.
type Document struct {
	Title       string
	Author      string
	GeneratedAt time.Time
	Records     []models.BirthRecord
	Stats       Statistics
}

// Renderer writes a Document in one format.
type Renderer interface {
	Render(w io.Writer, doc Document) error
}

// Builder computes statistics once and dispatches to the renderer of the
// requested format.
type Builder struct {
	renderers map[Format]Renderer
}

// NewBuilder creates a Builder with CSV, Excel and PDF renderers.
func NewBuilder(cfg config.Reports) *Builder {
	return &Builder{
		renderers: map[Format]Renderer{
			FormatCSV:  CSVRenderer{},
			FormatXLSX: ExcelRenderer{},
			FormatPDF:  NewPDFRenderer(cfg.FontPath, cfg.MaxPDFRows),
		},
	}
}

// Supports reports whether format has a renderer.
func (b *Builder) Supports(format Format) bool {
	_, ok := b.renderers[format]
	return ok
}

// Build renders records into w. Nothing is written when records is empty.
func (b *Builder) Build(w io.Writer, format Format, doc Document) error {
	renderer, ok := b.renderers[format]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	stats, err := Compute(doc.Records)
	if err != nil {
		return err
	}
	doc.Stats = stats
	if doc.Title == "" {
		doc.Title = DefaultTitle
	}

	return renderer.Render(w, doc)
}

// DefaultTitle heads PDF reports.
const DefaultTitle = "Отчет по роженицам"

// Columns is the header of tabular exports, in order.
var Columns = []string{
	"Дата", "ФИО роженицы", "Возраст", "Срок беременности", "Вес до родов",
	"Вес после родов", "Осложнения", "Примечания", "Акушерка", "Дата родов",
	"Время родов", "Пол ребенка", "Вес ребенка", "Способ родоразрешения",
	"Анестезия", "Кровопотеря", "Продолжительность родов",
	"Сопутствующие заболевания", "Гестоз", "Сахарный диабет", "Гипертония",
	"Анемия", "Инфекции", "Патология плаценты", "Многоводие", "Маловодие",
}

// exportedFlags is the number of leading complication flags in tabular exports.
const exportedFlags = 8

// Row returns the tabular cells of a record, matching Columns.
func Row(r models.BirthRecord) []string {
	row := []string{
		r.EntryDate,
		r.PatientName,
		strconv.Itoa(r.Age),
		strconv.Itoa(r.PregnancyWeeks),
		formatFloat(r.WeightBefore),
		formatFloat(r.WeightAfter),
		r.Complications,
		r.Notes,
		r.Midwife,
		r.BirthDate,
		r.BirthTime,
		r.ChildGender,
		strconv.Itoa(r.ChildWeight),
		r.DeliveryMethod,
		r.Anesthesia,
		strconv.Itoa(r.BloodLoss),
		formatFloat(r.LaborDuration),
		r.OtherDiseases,
	}
	for _, v := range r.FlagValues()[:exportedFlags] {
		row = append(row, models.YesNo(v))
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
