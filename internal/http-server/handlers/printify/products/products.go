package printifyProducts

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type CatalogFetcher interface {
	Fetch(ctx context.Context) models.FetchEnvelope
}

// New serves GET /api/printify/products. The response is always 200 with a
// FetchEnvelope; vendor failures surface as isMockData=true, never as 5xx.
func New(log *slog.Logger, catalog CatalogFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.printify.products.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		env := catalog.Fetch(ctx)

		log.Info("catalog served",
			slog.Bool("is_mock", env.IsMockData),
			slog.Int("count", len(env.Data)),
			slog.String("fallback_reason", env.FallbackReason),
		)

		render.JSON(w, r, env)
	}
}
