package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront_service/internal/lib/fetch"
	sl "storefront_service/internal/lib/logger"
	"storefront_service/internal/metrics"
	"storefront_service/internal/models"
	"storefront_service/internal/printify"
)

// Fallback reasons the envelope reports to pages. The UI shows the reason
// alongside the "Mock Data" badge.
const (
	ReasonMissingCredentials = "missing credentials: PRINTIFY_API_TOKEN is not set"
	ReasonEmptyCatalog       = "empty catalog: shop has no published products"
)

type ShopProvider interface {
	HasCredentials() bool
	Shop(ctx context.Context, shopID string) (models.Shop, error)
	Products(ctx context.Context, shopID string) ([]models.Product, error)
}

// CatalogOperator decides per request whether pages get live vendor data or
// the mock catalog. It runs the shop-info and product-list fetches in
// parallel, waits for both, then settles on a single source. No retries
// happen here; the retry affordance is the UI re-running the request.
type CatalogOperator struct {
	ShopID             string
	MockOnEmptyCatalog bool
	Printify           ShopProvider

	log *slog.Logger
}

func New(p ShopProvider, shopID string, mockOnEmptyCatalog bool, log *slog.Logger) *CatalogOperator {
	return &CatalogOperator{
		ShopID:             shopID,
		MockOnEmptyCatalog: mockOnEmptyCatalog,
		Printify:           p,
		log:                log,
	}
}

type shopResult struct {
	shop models.Shop
	err  error
}

type productsResult struct {
	products []models.Product
	err      error
}

// Fetch builds the products envelope for the store page.
func (c *CatalogOperator) Fetch(ctx context.Context) models.FetchEnvelope {
	const op = "middleware.catalog.Fetch"

	start := time.Now()

	if !c.Printify.HasCredentials() {
		c.log.Info("serving mock catalog", slog.String("op", op), slog.String("reason", "missing credentials"))
		metrics.RecordFallback("missing_credentials")

		return c.mockEnvelope(ReasonMissingCredentials, "", start)
	}

	shopCh := make(chan shopResult, 1)
	prodCh := make(chan productsResult, 1)

	go func() {
		shop, err := c.Printify.Shop(ctx, c.ShopID)
		shopCh <- shopResult{shop: shop, err: err}
	}()
	go func() {
		products, err := c.Printify.Products(ctx, c.ShopID)
		prodCh <- productsResult{products: products, err: err}
	}()

	// Settle both before deciding; a failure in one must not cancel the other.
	sr := <-shopCh
	pr := <-prodCh

	if err := firstErr(pr.err, sr.err); err != nil {
		reason, class := fallbackReason(err)

		c.log.Warn("vendor fetch failed, serving mock catalog",
			slog.String("op", op),
			sl.Err(err),
			slog.String("reason", reason),
		)
		metrics.RecordFallback(class)

		return c.mockEnvelope(reason, err.Error(), start)
	}

	if len(pr.products) == 0 && c.MockOnEmptyCatalog {
		c.log.Warn("shop has no published products, serving mock catalog",
			slog.String("op", op),
			slog.String("shop_id", c.ShopID),
		)
		metrics.RecordFallback("empty_catalog")

		return c.mockEnvelope(ReasonEmptyCatalog, "", start)
	}

	if pr.products == nil {
		pr.products = []models.Product{}
	}

	return models.FetchEnvelope{
		Data:            pr.products,
		IsMockData:      false,
		RealDataSource:  true,
		ShopID:          c.ShopID,
		ShopTitle:       sr.shop.Title,
		APICallDuration: time.Since(start).Milliseconds(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}

// ShopInfo builds an envelope with shop metadata only (Data stays empty).
func (c *CatalogOperator) ShopInfo(ctx context.Context) models.FetchEnvelope {
	const op = "middleware.catalog.ShopInfo"

	start := time.Now()

	if !c.Printify.HasCredentials() {
		metrics.RecordFallback("missing_credentials")
		return c.mockShopEnvelope(ReasonMissingCredentials, "", start)
	}

	shop, err := c.Printify.Shop(ctx, c.ShopID)
	if err != nil {
		reason, class := fallbackReason(err)

		c.log.Warn("shop info fetch failed, serving mock shop",
			slog.String("op", op),
			sl.Err(err),
		)
		metrics.RecordFallback(class)

		return c.mockShopEnvelope(reason, err.Error(), start)
	}

	return models.FetchEnvelope{
		Data:            []models.Product{},
		IsMockData:      false,
		RealDataSource:  true,
		ShopID:          shop.ID,
		ShopTitle:       shop.Title,
		APICallDuration: time.Since(start).Milliseconds(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}

func (c *CatalogOperator) mockEnvelope(reason, errMsg string, start time.Time) models.FetchEnvelope {
	mockShop := printify.MockShop(c.ShopID)

	return models.FetchEnvelope{
		Data:            printify.MockProducts(),
		IsMockData:      true,
		RealDataSource:  false,
		ShopID:          mockShop.ID,
		ShopTitle:       mockShop.Title,
		Error:           errMsg,
		FallbackReason:  reason,
		APICallDuration: time.Since(start).Milliseconds(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}

func (c *CatalogOperator) mockShopEnvelope(reason, errMsg string, start time.Time) models.FetchEnvelope {
	env := c.mockEnvelope(reason, errMsg, start)
	env.Data = []models.Product{}
	return env
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// fallbackReason maps a fetch error to a human-readable reason for the
// envelope and a low-cardinality class for metrics.
func fallbackReason(err error) (reason, class string) {
	var statusErr *printify.StatusError

	switch {
	case errors.Is(err, printify.ErrMissingCredentials):
		return ReasonMissingCredentials, "missing_credentials"
	case errors.Is(err, fetch.ErrTimeout):
		return "printify request timed out", "timeout"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("printify returned HTTP %d", statusErr.Code), "bad_status"
	case errors.Is(err, printify.ErrNoData):
		return "printify returned an unreadable payload", "bad_payload"
	default:
		return fmt.Sprintf("network error: %s", err), "network_error"
	}
}
