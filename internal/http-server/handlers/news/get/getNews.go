package getNews

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	resp "storefront_service/internal/lib/api/response"
	sl "storefront_service/internal/lib/logger"
	"storefront_service/internal/models"
	"storefront_service/internal/news"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Response struct {
	resp.Response
	Articles []models.Article `json:"articles"`
	Cached   bool             `json:"cached"`
	Count    int              `json:"count"`
}

type HeadlinesProvider interface {
	Headlines(ctx context.Context, q news.Query) ([]models.Article, bool, error)
}

// New serves GET /api/news. Query params: q, category, country, mode
// (top|everything), page_size. Responses are cached server-side per
// parameter combination.
func New(log *slog.Logger, provider HeadlinesProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.news.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := news.Query{
			Mode:     parseMode(r),
			Q:        r.URL.Query().Get("q"),
			Category: r.URL.Query().Get("category"),
			Country:  r.URL.Query().Get("country"),
			PageSize: parsePageSize(r),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		articles, cached, err := provider.Headlines(ctx, q)
		if err != nil {
			log.Error("Failed to fetch news", sl.Err(err))

			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, resp.Error("News upstream unavailable"))

			return
		}

		if articles == nil {
			articles = []models.Article{}
		}

		log.Info("News served",
			slog.Int("count", len(articles)),
			slog.Bool("cached", cached),
		)

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Articles: articles,
			Cached:   cached,
			Count:    len(articles),
		})
	}
}

func parseMode(r *http.Request) string {
	if r.URL.Query().Get("mode") == news.ModeEverything {
		return news.ModeEverything
	}
	return news.ModeTopHeadlines
}

func parsePageSize(r *http.Request) int {
	raw := r.URL.Query().Get("page_size")
	if raw == "" {
		return defaultPageSize
	}

	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return defaultPageSize
	}

	if size > maxPageSize {
		return maxPageSize
	}

	return size
}
