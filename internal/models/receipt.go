package models

// Receipt is one transaction record as returned by the KORONA receipts
// endpoint. Fields the API may omit are pointers so that absence survives
// decoding and can be replaced by the "N/A" sentinel during projection.
type Receipt struct {
	Number      string        `json:"number"`
	BookingTime string        `json:"bookingTime"`
	Cancelled   bool          `json:"cancelled"`
	Customer    *Customer     `json:"customer,omitempty"`
	Items       []ReceiptItem `json:"items,omitempty"`
}

// Customer identifies the buyer on a receipt, when known.
type Customer struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// ReceiptItem is one purchased line item within a receipt.
type ReceiptItem struct {
	Product           *ProductRef     `json:"product,omitempty"`
	RecognitionNumber string          `json:"recognitionNumber"`
	Description       string          `json:"description"`
	Quantity          float64         `json:"quantity"`
	Total             *ItemTotal      `json:"total,omitempty"`
	CommodityGroup    *CommodityGroup `json:"commodityGroup,omitempty"`
}

// ProductRef links a line item to its product record.
type ProductRef struct {
	Number string `json:"number"`
}

// ItemTotal carries the priced amounts for one line item.
type ItemTotal struct {
	Net      float64 `json:"net"`
	Gross    float64 `json:"gross"`
	Discount float64 `json:"discount"`
}

// CommodityGroup is the product category assigned in the POS backend.
type CommodityGroup struct {
	Name string `json:"name"`
}

// Product is the subset of the KORONA product record the export needs.
// LastPurchasePrice is a pointer so a record without the field is
// distinguishable from a recorded price of zero.
type Product struct {
	Number            string   `json:"number"`
	LastPurchasePrice *float64 `json:"lastPurchasePrice"`
}

// PageOutcome classifies the result of fetching one receipts page.
type PageOutcome int

const (
	// PageData means the page contained at least one receipt.
	PageData PageOutcome = iota
	// PageEmpty means the page carried a results list with zero entries,
	// i.e. pagination ran past the last page.
	PageEmpty
	// PageErrored covers transport failures, non-2xx responses, undecodable
	// bodies and responses missing the results field entirely. The last case
	// is indistinguishable from a malformed upstream response, so both count
	// against the consecutive-error budget.
	PageErrored
)

// PageResult is the classified outcome of one page fetch. Receipts is only
// populated when Outcome is PageData.
type PageResult struct {
	Outcome  PageOutcome
	Receipts []Receipt
}
