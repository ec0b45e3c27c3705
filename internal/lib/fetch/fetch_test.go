package fetch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront_service/internal/lib/fetch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)

		resp, err := fetch.Do(context.Background(), srv.Client(), req, time.Second)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"ok":true}`, string(body))
	})

	t.Run("TimeoutOnHangingHandler", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)

		start := time.Now()
		_, err = fetch.Do(context.Background(), srv.Client(), req, 50*time.Millisecond)
		elapsed := time.Since(start)

		require.Error(t, err)
		assert.ErrorIs(t, err, fetch.ErrTimeout)
		assert.Less(t, elapsed, 500*time.Millisecond)
		assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	})

	t.Run("NetworkErrorIsNotTimeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)

		_, err = fetch.Do(context.Background(), http.DefaultClient, req, time.Second)
		require.Error(t, err)
		assert.NotErrorIs(t, err, fetch.ErrTimeout)
	})
}
