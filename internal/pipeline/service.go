package pipeline

import (
	"context"

	"github.com/retailops/korona-export/internal/models"
	"go.uber.org/zap"
)

// Booking-time window boundaries derived from a request date. The offset is
// fixed to the store's timezone and deliberately not taken from the server's
// locale.
const (
	windowStartSuffix = "T00:00:00-06:00"
	windowEndSuffix   = "T23:59:59-06:00"
)

// Exporter serializes a row set into the delimited export bytes.
type Exporter interface {
	Write(rows []models.ExportRow) []byte
}

// Service runs the full export for a date range: window translation,
// pagination, and serialization.
type Service struct {
	driver   *Driver
	exporter Exporter
	logger   *zap.Logger
}

// NewService creates a new export service
func NewService(driver *Driver, exporter Exporter, logger *zap.Logger) *Service {
	return &Service{
		driver:   driver,
		exporter: exporter,
		logger:   logger,
	}
}

// Export fetches all receipts booked between startDate and endDate
// (inclusive, YYYY-MM-DD) and returns the serialized CSV.
func (s *Service) Export(ctx context.Context, startDate, endDate string) []byte {
	minBookingTime := startDate + windowStartSuffix
	maxBookingTime := endDate + windowEndSuffix

	rows := s.driver.Run(ctx, minBookingTime, maxBookingTime)
	data := s.exporter.Write(rows)

	s.logger.Info("Export complete",
		zap.String("start_date", startDate),
		zap.String("end_date", endDate),
		zap.Int("rows", len(rows)),
		zap.Int("bytes", len(data)))
	return data
}
