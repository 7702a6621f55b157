package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/seismic-analysis-service/internal/adapter/gnss"
	httpadapter "github.com/couchcryptid/seismic-analysis-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/seismic-analysis-service/internal/adapter/kafka"
	"github.com/couchcryptid/seismic-analysis-service/internal/adapter/usgs"
	"github.com/couchcryptid/seismic-analysis-service/internal/config"
	"github.com/couchcryptid/seismic-analysis-service/internal/monitor"
	"github.com/couchcryptid/seismic-analysis-service/internal/observability"
	"github.com/couchcryptid/seismic-analysis-service/internal/seismic"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	params := seismic.DefaultParams()

	catalogClient := usgs.NewClient(cfg.USGSBaseURL, cfg.USGSTimeout, metrics, logger)
	catalog := usgs.NewCachedCatalog(catalogClient, cfg.CatalogCacheSize, cfg.CatalogCacheTTL, metrics)
	logger.Info("usgs catalog configured",
		"base_url", cfg.USGSBaseURL, "cache_size", cfg.CatalogCacheSize, "cache_ttl", cfg.CatalogCacheTTL)

	// GNSS displacement monitoring (feature-flagged via GNSS_ENABLED / GNSS_BASE_URL).
	var displacement seismic.DisplacementProvider
	if cfg.GNSSEnabled {
		displacement = gnss.NewClient(cfg.GNSSBaseURL, cfg.GNSSAPIKey, cfg.GNSSTimeout, metrics, logger)
		metrics.GNSSEnabled.Set(1)
		logger.Info("gnss displacement monitoring enabled", "base_url", cfg.GNSSBaseURL, "timeout", cfg.GNSSTimeout)
	} else {
		logger.Info("gnss displacement monitoring disabled")
	}

	analyzer := seismic.NewAnalyzer(catalog, displacement, params, logger)

	// Kafka alert publishing (feature-flagged via KAFKA_ENABLED).
	var publisher *kafkaadapter.Publisher
	var alertPublisher monitor.AlertPublisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		alertPublisher = publisher
		logger.Info("kafka alert publishing enabled", "topic", cfg.KafkaAlertsTopic)
	} else {
		logger.Info("kafka alert publishing disabled")
	}

	m := monitor.New(analyzer, alertPublisher, cfg.WatchRegions,
		cfg.MonitorInterval, cfg.AlertMinRiskLevel, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, analyzer, params, m, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start region monitor.
	go func() {
		if err := m.Run(ctx); err != nil {
			logger.Error("monitor error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
