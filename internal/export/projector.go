// Package export flattens receipts into export rows and serializes them as
// the delimited tabular format the reporting spreadsheet consumes.
package export

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/retailops/korona-export/internal/models"
	"go.uber.org/zap"
)

// PriceResolver supplies the last purchase price for a product number,
// already formatted for the export.
type PriceResolver interface {
	Resolve(ctx context.Context, productNumber string) string
}

// Projector flattens receipts into one export row per line item, enriched
// with the resolved last purchase price.
type Projector struct {
	resolver PriceResolver
	logger   *zap.Logger
}

// NewProjector creates a new row projector
func NewProjector(resolver PriceResolver, logger *zap.Logger) *Projector {
	return &Projector{
		resolver: resolver,
		logger:   logger,
	}
}

// ProjectReceipts builds export rows for every line item of every receipt.
// Receipts without an item list contribute zero rows rather than failing the
// page. Price resolution is strictly sequential, one item at a time, so each
// resolution sees the cache writes of the previous one.
func (p *Projector) ProjectReceipts(ctx context.Context, receipts []models.Receipt) []models.ExportRow {
	var rows []models.ExportRow
	for _, receipt := range receipts {
		if len(receipt.Items) == 0 {
			p.logger.Debug("Skipping receipt without items",
				zap.String("number", receipt.Number))
			continue
		}
		for _, item := range receipt.Items {
			rows = append(rows, p.projectItem(ctx, &receipt, &item))
		}
	}
	return rows
}

// projectItem builds one export row, substituting the sentinel for every
// field the source left empty. A cancelled flag of false also renders as the
// sentinel; downstream reporting treats the column as presence-only.
func (p *Projector) projectItem(ctx context.Context, receipt *models.Receipt, item *models.ReceiptItem) models.ExportRow {
	productNumber := ""
	if item.Product != nil {
		productNumber = item.Product.Number
	}

	cancelled := models.NotAvailable
	if receipt.Cancelled {
		cancelled = "true"
	}

	customer := receipt.Customer
	if customer == nil {
		customer = &models.Customer{}
	}
	total := item.Total
	if total == nil {
		total = &models.ItemTotal{}
	}
	commodityGroup := ""
	if item.CommodityGroup != nil {
		commodityGroup = item.CommodityGroup.Name
	}

	return models.ExportRow{
		Cancelled:             cancelled,
		Number:                orNA(receipt.Number),
		BookingTime:           orNA(receipt.BookingTime),
		ItemRecognitionNumber: orNA(item.RecognitionNumber),
		ItemDescription:       orNA(item.Description),
		ItemQuantity:          amountOrNA(item.Quantity),
		ItemTotalNet:          amountOrNA(total.Net),
		ItemTotalGross:        amountOrNA(total.Gross),
		LastPurchasePrice:     p.resolver.Resolve(ctx, productNumber),
		ItemDiscountAmount:    amountOrNA(total.Discount),
		ItemCommodityGroup:    orNA(commodityGroup),
		CustomerName:          orNA(customer.Name),
		CustomerNumber:        orNA(customer.Number),
	}
}

// SortRowsByReceiptNumber orders rows by receipt number, case-insensitive
// ascending. The sort is stable: rows sharing a receipt number keep their
// relative item order.
func SortRowsByReceiptNumber(rows []models.ExportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToUpper(rows[i].Number) < strings.ToUpper(rows[j].Number)
	})
}

func orNA(value string) string {
	if value == "" {
		return models.NotAvailable
	}
	return value
}

// amountOrNA treats a zero amount as absent. The source API omits zero
// amounts and the decoder cannot tell the two apart.
func amountOrNA(value float64) string {
	if value == 0 {
		return models.NotAvailable
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
