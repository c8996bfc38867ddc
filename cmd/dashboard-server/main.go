// cmd/dashboard-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"analytics-dashboard/internal/analytics/cache"
	"analytics-dashboard/internal/analytics/feedback"
	"analytics-dashboard/internal/analytics/resolver"
	"analytics-dashboard/internal/analytics/session"
	"analytics-dashboard/internal/api"
	"analytics-dashboard/internal/common/config"
	"analytics-dashboard/internal/common/database"
	commonhttp "analytics-dashboard/internal/common/http"
	"analytics-dashboard/internal/common/logger"
	"analytics-dashboard/internal/common/observability"
	"analytics-dashboard/internal/common/validation"
)

// Adapters bridging logger.Logger to the package-local Logger interfaces.
type resolverLoggerAdapter struct {
	logger.Logger
}

func (a *resolverLoggerAdapter) With(fields map[string]interface{}) resolver.Logger {
	return &resolverLoggerAdapter{a.Logger.With(fields)}
}

type apiLoggerAdapter struct {
	logger.Logger
}

func (a *apiLoggerAdapter) With(fields map[string]interface{}) api.Logger {
	return &apiLoggerAdapter{a.Logger.With(fields)}
}

type cacheLoggerAdapter struct {
	logger.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting dashboard server...",
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("dashboard-server")
	defer obs.Shutdown()

	// --- Resolution cache ---
	var resolutionCache cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		redisClient, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis init failed", zap.Error(err))
		}
		defer redisClient.Close()
		if err := redisClient.Ping(context.Background()); err != nil {
			zapLog.Fatal("redis unreachable", zap.Error(err))
		}
		resolutionCache = cache.NewRedis(redisClient.GetClient(), cfg.Cache.GetTTL(), &cacheLoggerAdapter{log})
	default:
		resolutionCache = cache.NewMemory(cfg.Cache.GetTTL())
	}

	// --- Feedback store (optional) ---
	var feedbackStore *feedback.Store
	if cfg.Database.Postgres.Enabled {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			zapLog.Fatal("postgres init failed", zap.Error(err))
		}
		defer pg.Close()
		if err := pg.Ping(context.Background()); err != nil {
			zapLog.Fatal("postgres unreachable", zap.Error(err))
		}
		feedbackStore = feedback.NewStore(pg)
	} else {
		zapLog.Info("postgres disabled, feedback persistence off")
	}

	// --- Resolver ---
	if !cfg.APIs.GenAI.IsConfigured() {
		zapLog.Warn("GenAI endpoint not configured, running on local patterns only")
	}
	res := resolver.New(
		resolver.Config{
			BaseURL:        cfg.APIs.GenAI.BaseURL,
			CompletionPath: cfg.APIs.GenAI.CompletionPath,
			APIKey:         cfg.APIs.GenAI.APIKey,
			Model:          cfg.APIs.GenAI.Model,
			Timeout:        cfg.APIs.GenAI.GetTimeout(),
		},
		commonhttp.NewClient(cfg.APIs.GenAI.GetTimeout()),
		resolutionCache,
		&resolverLoggerAdapter{log},
	)

	validator, err := validation.NewValidator()
	if err != nil {
		zapLog.Fatal("validator init failed", zap.Error(err))
	}

	server := api.NewServer(
		cfg.Server,
		session.NewStore(),
		res,
		feedbackStore,
		validator,
		obs,
		&apiLoggerAdapter{log},
	)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zapLog.Fatal("server failed", zap.Error(err))
	case sig := <-stop:
		zapLog.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Dashboard server stopped")
}
