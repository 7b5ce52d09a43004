package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// SheetName is the only worksheet of Excel exports.
const SheetName = "Данные"

// numericColumns are written as numbers rather than text.
var numericColumns = map[int]bool{2: true, 3: true, 4: true, 5: true, 12: true, 15: true, 16: true}

// ExcelRenderer writes one worksheet with the tabular columns.
type ExcelRenderer struct{}

func (ExcelRenderer) Render(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(Columns), 1)
	if err != nil {
		return err
	}
	if err = f.SetCellStyle(SheetName, "A1", lastHeader, style); err != nil {
		return err
	}

	for i, r := range doc.Records {
		cells := Row(r)
		row := make([]interface{}, len(cells))
		for j, cell := range cells {
			row[j] = cell
			if numericColumns[j] {
				if v, parseErr := strconv.ParseFloat(cell, 64); parseErr == nil {
					row[j] = v
				}
			}
		}

		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(SheetName, start, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
