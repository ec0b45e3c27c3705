package printifyProducts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	printifyProducts "storefront_service/internal/http-server/handlers/printify/products"
	"storefront_service/internal/middleware/catalog"
	"storefront_service/internal/models"
	"storefront_service/internal/printify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	env models.FetchEnvelope
}

func (s stubFetcher) Fetch(_ context.Context) models.FetchEnvelope { return s.env }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProductsHandler(t *testing.T) {
	t.Run("RealDataEnvelope", func(t *testing.T) {
		env := models.FetchEnvelope{
			Data: []models.Product{
				{ID: "p1", Title: "Live Tee", Tags: []string{"apparel"}},
			},
			IsMockData:     false,
			RealDataSource: true,
			ShopID:         "22108081",
			ShopTitle:      "Live Shop",
			Timestamp:      "2025-08-30T10:00:00Z",
		}

		handler := printifyProducts.New(discardLogger(), stubFetcher{env: env})

		req := httptest.NewRequest(http.MethodGet, "/api/printify/products", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got models.FetchEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

		assert.False(t, got.IsMockData)
		assert.True(t, got.RealDataSource)
		assert.Len(t, got.Data, 1)
		assert.Equal(t, "Live Shop", got.ShopTitle)
	})

	t.Run("MockFallbackStillReturns200", func(t *testing.T) {
		env := models.FetchEnvelope{
			Data:           printify.MockProducts(),
			IsMockData:     true,
			RealDataSource: false,
			ShopID:         "22732326",
			ShopTitle:      printify.MockShopTitle,
			FallbackReason: catalog.ReasonMissingCredentials,
			Timestamp:      "2025-08-30T10:00:00Z",
		}

		handler := printifyProducts.New(discardLogger(), stubFetcher{env: env})

		req := httptest.NewRequest(http.MethodGet, "/api/printify/products", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)

		// Vendor-side failures never surface as HTTP errors.
		require.Equal(t, http.StatusOK, rec.Code)

		var got models.FetchEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

		assert.True(t, got.IsMockData)
		assert.Len(t, got.Data, 5)
		assert.Contains(t, got.FallbackReason, "credentials")

		for _, p := range got.Data {
			assert.True(t, p.IsMock())
		}
	})

	t.Run("RequestAttributesDoNotAccumulateAcrossRequests", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		handler := printifyProducts.New(log, stubFetcher{env: models.FetchEnvelope{
			Data:      []models.Product{},
			ShopID:    "22108081",
			Timestamp: "2025-08-30T10:00:00Z",
		}})

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/printify/products", nil)
			handler(httptest.NewRecorder(), req)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)

		// The shared handler logger must stay untouched: each request logs
		// exactly one op attribute, not one per request served so far.
		for _, line := range lines {
			assert.Equal(t, 1, strings.Count(line, "op="), "line: %s", line)
			assert.Equal(t, 1, strings.Count(line, "request_id="), "line: %s", line)
		}
	})
}
