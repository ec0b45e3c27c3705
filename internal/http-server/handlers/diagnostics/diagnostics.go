package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	resp "storefront_service/internal/lib/api/response"
	sl "storefront_service/internal/lib/logger"
	"storefront_service/internal/models"
	"storefront_service/internal/news"
	"storefront_service/internal/printify"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	validator "github.com/go-playground/validator/v10"
)

// One parameterized pipeline replaces the pile of near-identical debug
// routes: the operator picks the shop id and which checks to run.

const (
	CheckCredentials = "credentials"
	CheckShop        = "shop"
	CheckProducts    = "products"
	CheckNews        = "news"
)

const checkTimeout = 12 * time.Second

type Request struct {
	ShopID string   `json:"shop_id" validate:"omitempty,numeric"`
	Checks []string `json:"checks" validate:"required,min=1,dive,oneof=credentials shop products news"`
}

type CheckResult struct {
	Check      string `json:"check"`
	Ok         bool   `json:"ok"`
	DurationMS int64  `json:"duration_ms"`
	HTTPStatus int    `json:"http_status,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Error      string `json:"error,omitempty"`
}

type Response struct {
	resp.Response
	ShopID    string        `json:"shop_id"`
	Results   []CheckResult `json:"results"`
	Timestamp string        `json:"timestamp"`
}

type VendorDiagnoser interface {
	HasCredentials() bool
	ListShops(ctx context.Context) ([]models.Shop, error)
	Shop(ctx context.Context, shopID string) (models.Shop, error)
	Products(ctx context.Context, shopID string) ([]models.Product, error)
}

type NewsDiagnoser interface {
	HasCredentials() bool
	Fetch(ctx context.Context, q news.Query) ([]models.Article, error)
}

func New(
	log *slog.Logger,
	vendor VendorDiagnoser,
	newsClient NewsDiagnoser,
	defaultShopID string,
	validate *validator.Validate,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.diagnostics.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		if err := validate.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		shopID := req.ShopID
		if shopID == "" {
			shopID = defaultShopID
		}

		results := make([]CheckResult, 0, len(req.Checks))
		for _, check := range req.Checks {
			ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
			results = append(results, runCheck(ctx, check, shopID, vendor, newsClient))
			cancel()
		}

		log.Info("diagnostics run complete",
			slog.String("shop_id", shopID),
			slog.Int("checks", len(results)),
		)

		render.JSON(w, r, Response{
			Response:  resp.OK(),
			ShopID:    shopID,
			Results:   results,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func runCheck(
	ctx context.Context,
	check, shopID string,
	vendor VendorDiagnoser,
	newsClient NewsDiagnoser,
) CheckResult {
	start := time.Now()

	result := CheckResult{Check: check}

	switch check {
	case CheckCredentials:
		if !vendor.HasCredentials() {
			result.Error = "PRINTIFY_API_TOKEN is not set"
			break
		}
		shops, err := vendor.ListShops(ctx)
		if err != nil {
			fillCheckError(&result, err)
			break
		}
		result.Ok = true
		result.HTTPStatus = http.StatusOK
		result.Detail = fmt.Sprintf("token accepted, %d shop(s) visible", len(shops))

	case CheckShop:
		shop, err := vendor.Shop(ctx, shopID)
		if err != nil {
			fillCheckError(&result, err)
			break
		}
		result.Ok = true
		result.HTTPStatus = http.StatusOK
		result.Detail = fmt.Sprintf("shop %q (%s)", shop.Title, shop.SalesChannel)

	case CheckProducts:
		products, err := vendor.Products(ctx, shopID)
		if err != nil {
			fillCheckError(&result, err)
			break
		}
		result.Ok = true
		result.HTTPStatus = http.StatusOK
		result.Detail = fmt.Sprintf("%d published product(s)", len(products))

	case CheckNews:
		if !newsClient.HasCredentials() {
			result.Error = "NEWS_API_KEY is not set"
			break
		}
		articles, err := newsClient.Fetch(ctx, news.Query{Mode: news.ModeTopHeadlines, Country: "us", PageSize: 1})
		if err != nil {
			fillCheckError(&result, err)
			break
		}
		result.Ok = true
		result.HTTPStatus = http.StatusOK
		result.Detail = fmt.Sprintf("%d article(s) returned", len(articles))
	}

	result.DurationMS = time.Since(start).Milliseconds()

	return result
}

func fillCheckError(result *CheckResult, err error) {
	result.Error = err.Error()

	var statusErr *printify.StatusError
	if errors.As(err, &statusErr) {
		result.HTTPStatus = statusErr.Code
		if statusErr.Body != "" {
			result.Detail = statusErr.Body
		}
	}
}
