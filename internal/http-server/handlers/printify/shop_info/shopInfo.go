package shopInfo

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type ShopInfoFetcher interface {
	ShopInfo(ctx context.Context) models.FetchEnvelope
}

// New serves GET /api/printify/shop-info. Same contract as the products
// route: always 200, mock shop metadata on any vendor failure.
func New(log *slog.Logger, catalog ShopInfoFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.printify.shop_info.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		env := catalog.ShopInfo(ctx)

		log.Info("shop info served",
			slog.Bool("is_mock", env.IsMockData),
			slog.String("shop_id", env.ShopID),
		)

		render.JSON(w, r, env)
	}
}
