// Command jurisdictiond serves the Hyderabad police jurisdiction
// directory: nearest-station resolution, locality search, area
// labels, and incident-memo drafting.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hydsafe/jurisdictiond/internal/adapter/gemini"
	httpadapter "github.com/hydsafe/jurisdictiond/internal/adapter/http"
	"github.com/hydsafe/jurisdictiond/internal/config"
	"github.com/hydsafe/jurisdictiond/internal/domain"
	"github.com/hydsafe/jurisdictiond/internal/observability"
	"github.com/hydsafe/jurisdictiond/internal/resolve"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	registry, err := loadRegistry(cfg)
	if err != nil {
		logger.Error("failed to load station registry", "error", err)
		os.Exit(1)
	}
	metrics.RegistrySize.Set(float64(registry.Len()))
	logger.Info("station registry loaded", "stations", registry.Len())

	// Gemini augmentation is feature-flagged via GEMINI_ENABLED / GEMINI_API_KEY.
	var suggester domain.StationSuggester
	var describer domain.AreaDescriber
	if cfg.GeminiEnabled {
		client := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout,
			cfg.GeminiRateLimit, registry.All(), logger, metrics)
		suggester = client
		describer = gemini.NewCachedDescriber(client, cfg.AreaCacheSize, metrics)
		logger.Info("gemini disambiguation enabled",
			"model", cfg.GeminiModel, "timeout", cfg.GeminiTimeout, "area_cache_size", cfg.AreaCacheSize)
	} else {
		logger.Info("gemini disambiguation disabled, deterministic resolution only")
	}

	service := resolve.NewService(registry, suggester, describer, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, service, registry, cfg.ResultLimit, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

func loadRegistry(cfg *config.Config) (*domain.Registry, error) {
	if cfg.RegistryPath != "" {
		return domain.LoadRegistryFile(cfg.RegistryPath)
	}
	return domain.EmbeddedRegistry()
}
