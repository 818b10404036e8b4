package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/retailops/korona-export/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []models.ExportRow {
	return []models.ExportRow{
		{
			Cancelled:             "N/A",
			Number:                "R-1",
			BookingTime:           "2024-01-05T10:00:00-06:00",
			ItemRecognitionNumber: "0042",
			ItemDescription:       "Coffee beans",
			ItemQuantity:          "2",
			ItemTotalNet:          "10.5",
			ItemTotalGross:        "12.49",
			LastPurchasePrice:     "8.2",
			ItemDiscountAmount:    "1",
			ItemCommodityGroup:    "Beverages",
			CustomerName:          "Ada",
			CustomerNumber:        "C-7",
		},
		{
			Cancelled:             "true",
			Number:                "R-2",
			BookingTime:           "N/A",
			ItemRecognitionNumber: "N/A",
			ItemDescription:       "Filter paper",
			ItemQuantity:          "1",
			ItemTotalNet:          "N/A",
			ItemTotalGross:        "3",
			LastPurchasePrice:     "N/A",
			ItemDiscountAmount:    "N/A",
			ItemCommodityGroup:    "Supplies",
			CustomerName:          "N/A",
			CustomerNumber:        "N/A",
		},
	}
}

// unwrapExcelCell strips the ="..." formula wrapper a data cell carries
// after CSV parsing.
func unwrapExcelCell(t *testing.T, cell string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(cell, `="`), "cell %q is not formula-wrapped", cell)
	require.True(t, strings.HasSuffix(cell, `"`))
	return strings.TrimSuffix(strings.TrimPrefix(cell, `="`), `"`)
}

func TestCSVWriter_HeaderOrder(t *testing.T) {
	data := NewCSVWriter().Write(nil)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{
		"cancelled", "number", "bookingTime", "itemRecognitionNumber",
		"itemDescription", "itemQuantity", "itemTotalNet", "itemTotalGross",
		"lastPurchasePrice", "itemDiscountAmount", "itemCommodityGroup",
		"customerName", "customerNumber",
	}, records[0])
}

func TestCSVWriter_RoundTrip(t *testing.T) {
	rows := sampleRows()
	data := NewCSVWriter().Write(rows)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, row := range rows {
		record := records[i+1]
		require.Len(t, record, 13)
		for j, want := range row.Values() {
			assert.Equal(t, want, unwrapExcelCell(t, record[j]))
		}
	}
}

func TestCSVWriter_ProtectsNumericStrings(t *testing.T) {
	rows := sampleRows()
	data := string(NewCSVWriter().Write(rows))

	// Leading-zero recognition numbers must reach the spreadsheet as text
	assert.Contains(t, data, `"=""0042"""`)
}

func TestCSVWriter_Deterministic(t *testing.T) {
	rows := sampleRows()

	first := NewCSVWriter().Write(rows)
	second := NewCSVWriter().Write(rows)
	assert.True(t, bytes.Equal(first, second))
}

func TestCSVWriter_EmptyRowSet(t *testing.T) {
	data := NewCSVWriter().Write(nil)

	// Header only, no trailing newline
	assert.False(t, bytes.HasSuffix(data, []byte("\n")))
	assert.Equal(t, 1, bytes.Count(data, []byte("cancelled")))
}
