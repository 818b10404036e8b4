package korona

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/retailops/korona-export/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger, _ := zap.NewDevelopment()
	return NewClient(Config{
		BaseURL:   server.URL,
		AccountID: "test-account",
		Username:  "user",
		Password:  "secret",
		Timeout:   5 * time.Second,
	}, logger)
}

func TestClient_FetchReceiptsPage(t *testing.T) {
	ctx := context.Background()

	t.Run("non-empty results classify as data", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/accounts/test-account/receipts", r.URL.Path)
			assert.Equal(t, "false", r.URL.Query().Get("voidedItems"))
			assert.Equal(t, "2024-01-01T00:00:00-06:00", r.URL.Query().Get("minBookingTime"))
			assert.Equal(t, "2024-01-31T23:59:59-06:00", r.URL.Query().Get("maxBookingTime"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))

			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "user", user)
			assert.Equal(t, "secret", pass)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"results":[{"number":"R-1","bookingTime":"2024-01-05T10:00:00-06:00"}]}`))
		})

		result := client.FetchReceiptsPage(ctx, 2, "2024-01-01T00:00:00-06:00", "2024-01-31T23:59:59-06:00")
		assert.Equal(t, models.PageData, result.Outcome)
		require.Len(t, result.Receipts, 1)
		assert.Equal(t, "R-1", result.Receipts[0].Number)
	})

	t.Run("empty results list classifies as empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[]}`))
		})

		result := client.FetchReceiptsPage(ctx, 1, "a", "b")
		assert.Equal(t, models.PageEmpty, result.Outcome)
		assert.Empty(t, result.Receipts)
	})

	t.Run("missing results field classifies as errored", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		result := client.FetchReceiptsPage(ctx, 1, "a", "b")
		assert.Equal(t, models.PageErrored, result.Outcome)
	})

	t.Run("server error classifies as errored", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		result := client.FetchReceiptsPage(ctx, 1, "a", "b")
		assert.Equal(t, models.PageErrored, result.Outcome)
	})

	t.Run("undecodable body classifies as errored", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		result := client.FetchReceiptsPage(ctx, 1, "a", "b")
		assert.Equal(t, models.PageErrored, result.Outcome)
	})
}

func TestClient_FetchProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the product record", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/accounts/test-account/products/P-7", r.URL.Path)
			w.Write([]byte(`{"number":"P-7","lastPurchasePrice":3.45}`))
		})

		product, err := client.FetchProduct(ctx, "P-7")
		require.NoError(t, err)
		require.NotNil(t, product.LastPurchasePrice)
		assert.Equal(t, 3.45, *product.LastPurchasePrice)
	})

	t.Run("record without price decodes with nil price", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"number":"P-8"}`))
		})

		product, err := client.FetchProduct(ctx, "P-8")
		require.NoError(t, err)
		assert.Nil(t, product.LastPurchasePrice)
	})

	t.Run("not found surfaces as an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.FetchProduct(ctx, "P-9")
		assert.Error(t, err)
	})
}
