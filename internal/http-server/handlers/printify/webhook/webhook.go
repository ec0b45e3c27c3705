package printifyWebhook

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	resp "storefront_service/internal/lib/api/response"
	sl "storefront_service/internal/lib/logger"
	"storefront_service/internal/printify"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

const signatureHeader = "X-Pfy-Signature"

type event struct {
	Type string `json:"type"`
}

// New serves POST /api/printify/webhook. Events are acknowledged and
// logged; the catalog is re-fetched per request anyway, so no state is
// updated here.
func New(log *slog.Logger, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.printify.webhook.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read webhook body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to read request"))

			return
		}

		if !printify.VerifySignature(secret, body, r.Header.Get(signatureHeader)) {
			log.Warn("Webhook signature rejected")

			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, resp.Error("Invalid signature"))

			return
		}

		var ev event
		if err := json.Unmarshal(body, &ev); err != nil {
			log.Error("Failed to decode webhook event", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode event"))

			return
		}

		log.Info("Webhook event received", slog.String("type", ev.Type))

		render.JSON(w, r, resp.OK())
	}
}
