package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront_service/internal/config"
	"storefront_service/internal/http-server/handlers/diagnostics"
	getNews "storefront_service/internal/http-server/handlers/news/get"
	printifyProducts "storefront_service/internal/http-server/handlers/printify/products"
	shopInfo "storefront_service/internal/http-server/handlers/printify/shop_info"
	printifyWebhook "storefront_service/internal/http-server/handlers/printify/webhook"
	getStocks "storefront_service/internal/http-server/handlers/stocks/get"
	sl "storefront_service/internal/lib/logger"
	"storefront_service/internal/metrics"
	"storefront_service/internal/middleware/catalog"
	"storefront_service/internal/news"
	"storefront_service/internal/printify"
	"storefront_service/internal/storage/memory"
	redisCache "storefront_service/internal/storage/redis"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator/v10"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad("./config/config.yaml")

	log := setupLogger(cfg.Env)

	log.Info("starting storefront service",
		slog.String("env", cfg.Env),
		slog.String("shop_id", cfg.Printify.ShopID),
		slog.Bool("printify_credentials", cfg.Printify.APIToken != ""),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	printifyClient := printify.New(cfg.Printify, log)

	catalogOp := catalog.New(
		printifyClient,
		cfg.Printify.ShopID,
		cfg.Printify.MockOnEmptyCatalog,
		log,
	)

	// News cache: Redis when configured, process memory otherwise. A Redis
	// that refuses connections degrades to memory instead of failing boot.
	var newsCache news.Cache = memory.New(cfg.News.CacheTTL)
	if cfg.Redis.Addr != "" {
		rc, err := redisCache.New(ctx, cfg.Redis.Addr, cfg.Redis.Db, cfg.Redis.DefaultTTL)
		if err != nil {
			log.Error("failed to connect redis, using in-memory news cache", sl.Err(err))
		} else {
			defer rc.Close()
			newsCache = rc
		}
	}

	newsClient := news.NewClient(cfg.News)
	newsService := news.NewService(newsClient, newsCache, log)

	requestValidator := validator.New()

	router := setupRouter(
		log,
		cfg,
		requestValidator,
		catalogOp,
		printifyClient,
		newsClient,
		newsService,
	)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", sl.Err(err))
			cancel()
		}
	}()

	log.Info("server started", slog.String("address", cfg.HTTPServer.Address))

	select {
	case <-sigs:
		log.Info("Shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server gracefully", sl.Err(err))
	}

	log.Info("server stopped")
}

func setupRouter(
	log *slog.Logger,
	cfg *config.Config,
	validate *validator.Validate,
	catalogOp *catalog.CatalogOperator,
	printifyClient *printify.Client,
	newsClient *news.Client,
	newsService *news.Service,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/printify/products", printifyProducts.New(log, catalogOp))
	r.Get("/api/printify/shop-info", shopInfo.New(log, catalogOp))
	r.Post("/api/printify/webhook", printifyWebhook.New(log, cfg.Printify.WebhookSecret))
	r.Post("/api/store-diagnostics", diagnostics.New(log, printifyClient, newsClient, cfg.Printify.ShopID, validate))
	r.Get("/api/news", getNews.New(log, newsService))
	r.Get("/api/stocks", getStocks.New(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	return r
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
