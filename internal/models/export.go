package models

// NotAvailable is the sentinel written to the export wherever a source field
// is absent. The export never contains empty cells.
const NotAvailable = "N/A"

// ExportRow is one flattened line of the CSV export, one row per
// receipt × line item. All fields are pre-formatted strings; defaulting to
// the sentinel happens during projection, before the row exists.
type ExportRow struct {
	Cancelled             string
	Number                string
	BookingTime           string
	ItemRecognitionNumber string
	ItemDescription       string
	ItemQuantity          string
	ItemTotalNet          string
	ItemTotalGross        string
	LastPurchasePrice     string
	ItemDiscountAmount    string
	ItemCommodityGroup    string
	CustomerName          string
	CustomerNumber        string
}

// ExportFieldOrder is the fixed column order of the CSV export. Consumers
// depend on it; do not reorder.
var ExportFieldOrder = []string{
	"cancelled",
	"number",
	"bookingTime",
	"itemRecognitionNumber",
	"itemDescription",
	"itemQuantity",
	"itemTotalNet",
	"itemTotalGross",
	"lastPurchasePrice",
	"itemDiscountAmount",
	"itemCommodityGroup",
	"customerName",
	"customerNumber",
}

// Values returns the row's cells in ExportFieldOrder.
func (r *ExportRow) Values() []string {
	return []string{
		r.Cancelled,
		r.Number,
		r.BookingTime,
		r.ItemRecognitionNumber,
		r.ItemDescription,
		r.ItemQuantity,
		r.ItemTotalNet,
		r.ItemTotalGross,
		r.LastPurchasePrice,
		r.ItemDiscountAmount,
		r.ItemCommodityGroup,
		r.CustomerName,
		r.CustomerNumber,
	}
}
