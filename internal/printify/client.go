package printify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"storefront_service/internal/config"
	"storefront_service/internal/lib/fetch"
	"storefront_service/internal/metrics"
	"storefront_service/internal/models"

	"golang.org/x/time/rate"
)

// ErrMissingCredentials reports that no API token is configured. The
// orchestrator turns it into a mock fallback, never a hard failure.
var ErrMissingCredentials = errors.New("printify credentials are not configured")

// StatusError is returned for non-2xx vendor responses, carrying the code
// so the fallback reason can name it.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("printify returned HTTP %d", e.Code)
}

const maxErrorBodyExcerpt = 512

type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

func New(cfg config.Printify, log *slog.Logger) *Client {
	rps := cfg.RPS
	if rps <= 0 {
		rps = 10
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.APIToken,
		timeout:    cfg.FetchTimeout,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
		log:        log,
	}
}

func (c *Client) HasCredentials() bool {
	return c.token != ""
}

// Shop fetches and normalizes /v1/shops/{id}.json.
func (c *Client) Shop(ctx context.Context, shopID string) (models.Shop, error) {
	const op = "printify.Shop"

	body, err := c.get(ctx, fmt.Sprintf("/v1/shops/%s.json", shopID))
	if err != nil {
		return models.Shop{}, fmt.Errorf("%s: %w", op, err)
	}

	shop, err := NormalizeShop(body)
	if err != nil {
		return models.Shop{}, fmt.Errorf("%s: %w", op, err)
	}

	return shop, nil
}

// ListShops fetches /v1/shops.json, used by diagnostics to verify the token
// independent of any particular shop id.
func (c *Client) ListShops(ctx context.Context) ([]models.Shop, error) {
	const op = "printify.ListShops"

	body, err := c.get(ctx, "/v1/shops.json")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	shops, err := NormalizeShops(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return shops, nil
}

// Products fetches and normalizes /v1/shops/{id}/products.json.
func (c *Client) Products(ctx context.Context, shopID string) ([]models.Product, error) {
	const op = "printify.Products"

	body, err := c.get(ctx, fmt.Sprintf("/v1/shops/%s/products.json", shopID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products, err := NormalizeProducts(c.log, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingCredentials
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()

	resp, err := fetch.Do(ctx, c.httpClient, req, c.timeout)
	if err != nil {
		metrics.RecordVendorRequest("printify", metrics.OutcomeError, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordVendorRequest("printify", metrics.OutcomeError, time.Since(start))
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		metrics.RecordVendorRequest("printify", metrics.OutcomeBadStatus, time.Since(start))

		excerpt := string(body)
		if len(excerpt) > maxErrorBodyExcerpt {
			excerpt = excerpt[:maxErrorBodyExcerpt]
		}

		return nil, &StatusError{Code: resp.StatusCode, Body: excerpt}
	}

	metrics.RecordVendorRequest("printify", metrics.OutcomeOK, time.Since(start))

	return body, nil
}
