// Package pipeline orchestrates the receipt export: page-by-page retrieval,
// row projection and sorting, and CSV serialization.
package pipeline

import (
	"context"

	"github.com/retailops/korona-export/internal/export"
	"github.com/retailops/korona-export/internal/models"
	"go.uber.org/zap"
)

// maxConsecutiveErrors is the number of back-to-back failed page fetches
// after which the driver gives up and returns whatever it has collected.
const maxConsecutiveErrors = 3

// PageFetcher retrieves and classifies one page of receipts.
type PageFetcher interface {
	FetchReceiptsPage(ctx context.Context, page int, minBookingTime, maxBookingTime string) models.PageResult
}

// RowProjector flattens a page of receipts into export rows.
type RowProjector interface {
	ProjectReceipts(ctx context.Context, receipts []models.Receipt) []models.ExportRow
}

// Driver walks the receipts pages for a booking-time window, starting at
// page 1, until the API reports an empty page or too many consecutive
// fetches fail. Rows are sorted per page and appended in page order.
type Driver struct {
	fetcher   PageFetcher
	projector RowProjector
	// maxPages is an operator safety ceiling; 0 disables it and leaves
	// termination entirely to the empty-page and error-threshold rules.
	maxPages int
	logger   *zap.Logger
}

// NewDriver creates a new pagination driver
func NewDriver(fetcher PageFetcher, projector RowProjector, maxPages int, logger *zap.Logger) *Driver {
	return &Driver{
		fetcher:   fetcher,
		projector: projector,
		maxPages:  maxPages,
		logger:    logger,
	}
}

// Run collects export rows for the window. Three consecutive failed pages
// end the run softly: the rows gathered so far are still returned, partial
// output being preferable to none for a reporting export.
func (d *Driver) Run(ctx context.Context, minBookingTime, maxBookingTime string) []models.ExportRow {
	d.logger.Info("Starting receipt export",
		zap.String("min_booking_time", minBookingTime),
		zap.String("max_booking_time", maxBookingTime))

	var collected []models.ExportRow
	consecutiveErrors := 0

	for page := 1; ; page++ {
		if d.maxPages > 0 && page > d.maxPages {
			d.logger.Warn("Page ceiling reached, stopping export",
				zap.Int("max_pages", d.maxPages))
			break
		}

		result := d.fetcher.FetchReceiptsPage(ctx, page, minBookingTime, maxBookingTime)

		switch result.Outcome {
		case models.PageData:
			rows := d.projector.ProjectReceipts(ctx, result.Receipts)
			export.SortRowsByReceiptNumber(rows)
			collected = append(collected, rows...)
			consecutiveErrors = 0
			d.logger.Debug("Page processed",
				zap.Int("page", page),
				zap.Int("rows", len(rows)))

		case models.PageErrored:
			consecutiveErrors++
			d.logger.Warn("Page fetch errored",
				zap.Int("page", page),
				zap.Int("consecutive_errors", consecutiveErrors))
			if consecutiveErrors >= maxConsecutiveErrors {
				d.logger.Error("Too many consecutive page errors, aborting export",
					zap.Int("page", page),
					zap.Int("rows_collected", len(collected)))
				return collected
			}

		case models.PageEmpty:
			d.logger.Info("No more receipts",
				zap.Int("page", page),
				zap.Int("rows_collected", len(collected)))
			return collected
		}
	}

	return collected
}
