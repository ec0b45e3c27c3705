package getStocks

import (
	"log/slog"
	"net/http"

	resp "storefront_service/internal/lib/api/response"
	"storefront_service/internal/models"
	"storefront_service/internal/stocks"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Response struct {
	resp.Response
	Quotes []models.StockQuote `json:"quotes"`
}

// New serves GET /api/stocks: the synthetic ticker strip, re-jittered on
// every call.
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stocks.get.New"

		quotes := stocks.Quotes()

		log.Debug("Stocks served",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int("count", len(quotes)),
		)

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Quotes:   quotes,
		})
	}
}
