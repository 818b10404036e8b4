// Package pricing resolves the last purchase price for products using a
// cache-aside strategy over the persistent price cache and the KORONA
// product endpoint.
package pricing

import (
	"context"
	"strconv"

	"github.com/retailops/korona-export/internal/models"
	"go.uber.org/zap"
)

// PriceStore is the persistent cache consulted before any remote lookup.
type PriceStore interface {
	Get(productNumber string) (float64, bool, error)
	Upsert(productNumber string, price float64) error
}

// ProductFetcher retrieves a single product record from the remote API.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, productNumber string) (*models.Product, error)
}

// Resolver answers last-purchase-price lookups cache-first. Every failure
// mode degrades to the N/A sentinel; a price that cannot be resolved must
// never abort the export that asked for it.
type Resolver struct {
	store   PriceStore
	fetcher ProductFetcher
	logger  *zap.Logger
}

// NewResolver creates a new price resolver
func NewResolver(store PriceStore, fetcher ProductFetcher, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Resolve returns the last purchase price for a product, formatted for the
// export. Cache hits skip the remote call entirely. On a miss the product is
// fetched once and the price written back best-effort: a failed cache write
// is logged and otherwise ignored, degrading the next lookup to a miss.
func (r *Resolver) Resolve(ctx context.Context, productNumber string) string {
	if productNumber == "" {
		resolveFailures.Inc()
		return models.NotAvailable
	}

	price, found, err := r.store.Get(productNumber)
	if err == nil && found {
		cacheHits.Inc()
		return formatPrice(price)
	}
	if err != nil {
		r.logger.Warn("Price cache read failed, falling back to remote lookup",
			zap.String("product_number", productNumber),
			zap.Error(err))
	}
	cacheMisses.Inc()

	product, err := r.fetcher.FetchProduct(ctx, productNumber)
	if err != nil {
		r.logger.Warn("Product lookup failed",
			zap.String("product_number", productNumber),
			zap.Error(err))
		resolveFailures.Inc()
		return models.NotAvailable
	}
	if product.LastPurchasePrice == nil {
		r.logger.Warn("Product record has no last purchase price",
			zap.String("product_number", productNumber))
		resolveFailures.Inc()
		return models.NotAvailable
	}

	// Best effort: a failed write only costs a future cache miss
	if err := r.store.Upsert(productNumber, *product.LastPurchasePrice); err != nil {
		r.logger.Warn("Price cache write failed",
			zap.String("product_number", productNumber),
			zap.Error(err))
	}

	return formatPrice(*product.LastPurchasePrice)
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
