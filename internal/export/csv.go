package export

import (
	"strings"

	"github.com/retailops/korona-export/internal/models"
)

// CSVWriter serializes export rows into the delimited format the reporting
// spreadsheet expects. Output is deterministic: the same row sequence always
// produces byte-identical output.
type CSVWriter struct{}

// NewCSVWriter creates a new CSV writer
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Write renders a header line naming the 13 export fields in their fixed
// order, followed by one line per row. Every value cell is wrapped in an
// Excel string formula (="value") so that numeric-looking strings such as
// recognition numbers with leading zeros survive the spreadsheet import.
func (w *CSVWriter) Write(rows []models.ExportRow) []byte {
	var b strings.Builder

	for i, field := range models.ExportFieldOrder {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteCell(field))
	}

	for _, row := range rows {
		b.WriteByte('\n')
		for i, value := range row.Values() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteCell(`="` + value + `"`))
		}
	}

	return []byte(b.String())
}

// quoteCell wraps a cell in double quotes, doubling any embedded quotes.
func quoteCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
