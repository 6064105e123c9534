package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tallerhub/aiops-reporter/internal/analyzer"
	"github.com/tallerhub/aiops-reporter/internal/api"
	"github.com/tallerhub/aiops-reporter/internal/collector"
	"github.com/tallerhub/aiops-reporter/internal/config"
	"github.com/tallerhub/aiops-reporter/internal/groq"
	"github.com/tallerhub/aiops-reporter/internal/metrics"
	"github.com/tallerhub/aiops-reporter/internal/repo"
	"github.com/tallerhub/aiops-reporter/internal/services"
	"github.com/tallerhub/aiops-reporter/internal/utils"
)

func main() {
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("path", configPath), slog.Any("error", err))
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	logger.Info("starting aiops-reporter", slog.String("address", cfg.Server.Address))

	registry, err := metrics.New()
	if err != nil {
		logger.Error("failed to build metrics registry", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := repo.OpenPostgres(cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to connect to postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	businessRepo := repo.NewBusinessRepository(db)
	promClient := repo.NewPrometheusClient(cfg.Prometheus.BaseURL, cfg.Prometheus.Timeout)

	llm := groq.NewClient(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.Timeout)
	if !llm.Configured() {
		logger.Warn("GROQ_API_KEY not set, anomaly analysis will run degraded")
	}

	checkService := services.NewCheckService(
		logger,
		collector.NewBusinessCollector(businessRepo, logger),
		collector.NewSystemCollector(promClient, logger),
		analyzer.NewClassifier(llm, logger),
		registry,
	)

	handlers := api.NewHandlers(
		logger,
		checkService,
		businessRepo,
		registry.Handler(),
		cfg.Prometheus.BaseURL != "",
		llm.Configured(),
	)
	server := api.NewServer(cfg.Server, logger, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if serveErr := server.Start(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http server exited", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", slog.Any("error", err))
	}

	// Give remaining goroutines time to finish logging
	time.Sleep(100 * time.Millisecond)
	logger.Info("aiops-reporter stopped")
}
