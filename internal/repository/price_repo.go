package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// PriceCacheRepository persists the last purchase price per product so that
// repeated exports do not re-fetch the same product from the KORONA API.
type PriceCacheRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPriceCacheRepository creates a new price cache repository
func NewPriceCacheRepository(db *sql.DB, logger *zap.Logger) *PriceCacheRepository {
	return &PriceCacheRepository{
		db:     db,
		logger: logger,
	}
}

// Init creates the cache table if it does not exist yet.
func (r *PriceCacheRepository) Init() error {
	query := `
		CREATE TABLE IF NOT EXISTS processed_products (
			product_code TEXT PRIMARY KEY,
			last_purchase_price REAL
		)
	`
	if _, err := r.db.Exec(query); err != nil {
		r.logger.Error("Failed to create price cache table", zap.Error(err))
		return fmt.Errorf("failed to create price cache table: %w", err)
	}
	return nil
}

// Get returns the cached last purchase price for a product. The second
// return value reports whether an entry exists.
func (r *PriceCacheRepository) Get(productNumber string) (float64, bool, error) {
	query := `SELECT last_purchase_price FROM processed_products WHERE product_code = ?`

	var price float64
	err := r.db.QueryRow(query, productNumber).Scan(&price)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		r.logger.Error("Failed to read price cache",
			zap.String("product_code", productNumber),
			zap.Error(err))
		return 0, false, fmt.Errorf("failed to read price cache: %w", err)
	}
	return price, true, nil
}

// Upsert writes the last purchase price for a product, replacing any
// existing entry (last write wins). Safe to call concurrently from
// independent export pipelines for the same product.
func (r *PriceCacheRepository) Upsert(productNumber string, price float64) error {
	query := `
		INSERT INTO processed_products (product_code, last_purchase_price)
		VALUES (?, ?)
		ON CONFLICT(product_code) DO UPDATE SET last_purchase_price = excluded.last_purchase_price
	`
	if _, err := r.db.Exec(query, productNumber, price); err != nil {
		r.logger.Error("Failed to write price cache",
			zap.String("product_code", productNumber),
			zap.Error(err))
		return fmt.Errorf("failed to write price cache: %w", err)
	}
	return nil
}
