package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopglow/storefront/config"
	"github.com/shopglow/storefront/internal/alert"
	"github.com/shopglow/storefront/internal/cart"
	"github.com/shopglow/storefront/internal/catalog"
	"github.com/shopglow/storefront/internal/email"
	"github.com/shopglow/storefront/internal/health"
	"github.com/shopglow/storefront/internal/infrastructure/localstore"
	ctxlog "github.com/shopglow/storefront/internal/log"
	"github.com/shopglow/storefront/internal/metrics"
	"github.com/shopglow/storefront/internal/search"
	"github.com/shopglow/storefront/internal/storage"
	httptransport "github.com/shopglow/storefront/internal/transport/http"
	"github.com/shopglow/storefront/internal/transport/http/handler"
	"github.com/shopglow/storefront/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeStore()

	// Auth
	userRepo := localstore.NewUserRepository(store)
	sessionRepo := localstore.NewSessionRepository(store)
	authUsecase := usecase.NewAuthUsecase(userRepo, sessionRepo, []byte(cfg.JWTSecret))

	// Alerts
	alerts := alert.NewNotifier(time.Duration(cfg.AlertTTLSec) * time.Second)

	// Catalog
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, time.Duration(cfg.CatalogTimeoutSec)*time.Second)
	catalogService := catalog.NewService(catalogClient, cfg.FeaturedLimit, logger)

	// Contact relay
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, cfg.ContactTo, logger)
	contactUsecase := usecase.NewContactUsecase(sender)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, alerts, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cart.NewCarts(), logger)
	searchHandler := handler.NewSearchHandler(catalogService, search.NewState(), logger)
	contactHandler := handler.NewContactHandler(contactUsecase, alerts, logger)
	alertHandler := handler.NewAlertHandler(alerts)

	metrics.Register()
	checker := health.NewChecker(store, catalogClient, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(
			logger,
			authHandler,
			catalogHandler,
			cartHandler,
			searchHandler,
			contactHandler,
			alertHandler,
			[]byte(cfg.JWTSecret),
		),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	if cfg.RefreshCron != "" {
		refresher, err := catalog.NewRefresher(catalogService, cfg.RefreshCron, logger)
		if err != nil {
			log.Fatalf("refresh cron: %v", err)
		}
		go refresher.Start(ctx)
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

// newStore picks the persistence backend: Postgres when DATABASE_URL is
// set, the JSON file otherwise.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}

	fs, err := storage.OpenFileStore(cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
