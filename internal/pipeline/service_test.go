package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/retailops/korona-export/internal/export"
	"github.com/retailops/korona-export/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// WindowRecordingFetcher captures the booking-time window it was asked for.
type WindowRecordingFetcher struct {
	min, max string
}

func (f *WindowRecordingFetcher) FetchReceiptsPage(ctx context.Context, page int, minBookingTime, maxBookingTime string) models.PageResult {
	f.min = minBookingTime
	f.max = maxBookingTime
	return models.PageResult{Outcome: models.PageEmpty}
}

func TestService_Export(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("translates dates into the fixed offset window", func(t *testing.T) {
		fetcher := &WindowRecordingFetcher{}
		driver := NewDriver(fetcher, PassthroughProjector{}, 0, logger)
		service := NewService(driver, export.NewCSVWriter(), logger)

		service.Export(context.Background(), "2024-01-02", "2024-01-31")

		assert.Equal(t, "2024-01-02T00:00:00-06:00", fetcher.min)
		assert.Equal(t, "2024-01-31T23:59:59-06:00", fetcher.max)
	})

	t.Run("empty window still yields a header line", func(t *testing.T) {
		driver := NewDriver(&WindowRecordingFetcher{}, PassthroughProjector{}, 0, logger)
		service := NewService(driver, export.NewCSVWriter(), logger)

		data := service.Export(context.Background(), "2024-01-01", "2024-01-01")

		assert.True(t, strings.HasPrefix(string(data), `"cancelled","number"`))
	})
}
