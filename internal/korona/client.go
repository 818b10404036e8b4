// Package korona is a thin client for the KORONA cloud POS API. It covers
// exactly the two endpoints the export pipeline consumes: the paged receipts
// listing and the single-product lookup.
package korona

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/retailops/korona-export/internal/models"
	"go.uber.org/zap"
)

// Config holds KORONA API client configuration
type Config struct {
	BaseURL   string
	AccountID string
	Username  string
	Password  string
	Timeout   time.Duration
}

// Client talks to the KORONA cloud API with Basic auth.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new KORONA API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// receiptsPage mirrors the receipts listing envelope. Results is a pointer so
// a response without the field decodes to nil instead of an empty slice; the
// two cases classify differently.
type receiptsPage struct {
	Results *[]models.Receipt `json:"results"`
}

// FetchReceiptsPage retrieves one page of non-voided receipts booked within
// the inclusive [minBookingTime, maxBookingTime] window and classifies the
// response. It never returns an error: transport failures, non-2xx statuses,
// undecodable bodies and responses without a results field all classify as
// PageErrored so the pagination driver can apply its consecutive-error
// policy uniformly.
func (c *Client) FetchReceiptsPage(ctx context.Context, page int, minBookingTime, maxBookingTime string) models.PageResult {
	q := url.Values{}
	q.Set("voidedItems", "false")
	q.Set("minBookingTime", minBookingTime)
	q.Set("maxBookingTime", maxBookingTime)
	q.Set("page", strconv.Itoa(page))

	endpoint := fmt.Sprintf("%s/accounts/%s/receipts?%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.AccountID), q.Encode())

	c.logger.Debug("Fetching receipts page", zap.Int("page", page))

	var body receiptsPage
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		c.logger.Warn("Receipts page fetch failed",
			zap.Int("page", page),
			zap.Error(err))
		return models.PageResult{Outcome: models.PageErrored}
	}

	if body.Results == nil {
		c.logger.Warn("Receipts response missing results field", zap.Int("page", page))
		return models.PageResult{Outcome: models.PageErrored}
	}
	if len(*body.Results) == 0 {
		return models.PageResult{Outcome: models.PageEmpty}
	}
	return models.PageResult{Outcome: models.PageData, Receipts: *body.Results}
}

// FetchProduct retrieves a single product record by its product number.
func (c *Client) FetchProduct(ctx context.Context, productNumber string) (*models.Product, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/products/%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.AccountID), url.PathEscape(productNumber))

	var product models.Product
	if err := c.getJSON(ctx, endpoint, &product); err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", productNumber, err)
	}
	return &product, nil
}

// getJSON performs an authenticated GET and decodes the JSON response body.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
