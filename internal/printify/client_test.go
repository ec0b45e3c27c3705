package printify_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storefront_service/internal/config"
	"storefront_service/internal/lib/fetch"
	"storefront_service/internal/printify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL, token string) config.Printify {
	return config.Printify{
		BaseURL:      baseURL,
		APIToken:     token,
		ShopID:       "22108081",
		FetchTimeout: 2 * time.Second,
		RPS:          100,
	}
}

func TestClient(t *testing.T) {
	t.Run("SendsBearerToken", func(t *testing.T) {
		var gotAuth atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth.Store(r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":22108081,"title":"Live Shop","sales_channel":"custom_integration"}`))
		}))
		defer srv.Close()

		client := printify.New(testConfig(srv.URL, "secret-token"), discardLogger())

		shop, err := client.Shop(context.Background(), "22108081")
		require.NoError(t, err)

		assert.Equal(t, "Bearer secret-token", gotAuth.Load())
		assert.Equal(t, "Live Shop", shop.Title)
	})

	t.Run("MissingCredentialsSkipNetwork", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer srv.Close()

		client := printify.New(testConfig(srv.URL, ""), discardLogger())

		_, err := client.Products(context.Background(), "22108081")
		require.Error(t, err)
		assert.ErrorIs(t, err, printify.ErrMissingCredentials)
		assert.Zero(t, hits.Load())
	})

	t.Run("NonOKStatusBecomesStatusError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
		}))
		defer srv.Close()

		client := printify.New(testConfig(srv.URL, "bad-token"), discardLogger())

		_, err := client.Products(context.Background(), "22108081")
		require.Error(t, err)

		var statusErr *printify.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
		assert.Contains(t, statusErr.Body, "Unauthorized")
	})

	t.Run("SlowVendorReportsTimeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		cfg := testConfig(srv.URL, "token")
		cfg.FetchTimeout = 50 * time.Millisecond

		client := printify.New(cfg, discardLogger())

		_, err := client.Products(context.Background(), "22108081")
		require.Error(t, err)
		assert.ErrorIs(t, err, fetch.ErrTimeout)
	})

	t.Run("ProductsEndToEnd", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/shops/22108081/products.json", r.URL.Path)
			_, _ = w.Write([]byte(`{"current_page":1,"total":1,"data":[
				{"id":"prod1","title":"Live Tee","tags":["apparel"],"images":[{"src":"https://cdn/x.png","is_default":true}],"variants":[{"id":9,"title":"M","price":2199,"is_enabled":true}]}
			]}`))
		}))
		defer srv.Close()

		client := printify.New(testConfig(srv.URL, "token"), discardLogger())

		products, err := client.Products(context.Background(), "22108081")
		require.NoError(t, err)

		require.Len(t, products, 1)
		assert.Equal(t, "Live Tee", products[0].Title)
		assert.InDelta(t, 21.99, products[0].Variants[0].Price, 1e-9)
		assert.False(t, products[0].IsMock())
	})

	t.Run("ListShops", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/shops.json", r.URL.Path)
			_, _ = w.Write([]byte(`[{"id":22108081,"title":"Live Shop","sales_channel":"storefront"}]`))
		}))
		defer srv.Close()

		client := printify.New(testConfig(srv.URL, "token"), discardLogger())

		shops, err := client.ListShops(context.Background())
		require.NoError(t, err)
		require.Len(t, shops, 1)
		assert.Equal(t, "22108081", shops[0].ID)
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		client := printify.New(testConfig(srv.URL, "token"), discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		_, err := client.Products(ctx, "22108081")
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, fetch.ErrTimeout))
	})
}
