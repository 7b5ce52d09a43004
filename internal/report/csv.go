package report

import (
	"encoding/csv"
	"io"
)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVRenderer writes a BOM, the header row and one row per record.
type CSVRenderer struct{}

func (CSVRenderer) Render(w io.Writer, doc Document) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range doc.Records {
		if err := cw.Write(Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
