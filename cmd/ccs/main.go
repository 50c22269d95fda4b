package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/CCS/internal/api"
	"github.com/MikeSquared-Agency/CCS/internal/config"
	"github.com/MikeSquared-Agency/CCS/internal/dataset"
	"github.com/MikeSquared-Agency/CCS/internal/engine"
	"github.com/MikeSquared-Agency/CCS/internal/hermes"
	"github.com/MikeSquared-Agency/CCS/internal/scoring"
	"github.com/MikeSquared-Agency/CCS/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Indicator source
	src, err := openSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open indicator source", "kind", cfg.Source.Kind, "error", err)
		os.Exit(1)
	}
	defer src.Close()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Engine
	eng := engine.New(src, hermesClient, weightsFromConfig(cfg.Scoring.Weights), logger)
	if _, err := eng.Recompute(ctx); err != nil {
		logger.Error("initial scoring failed", "error", err)
		os.Exit(1)
	}
	if err := eng.SetupSubscriptions(ctx); err != nil {
		logger.Warn("failed to subscribe to weight commands", "error", err)
	}
	eng.Start(ctx, cfg.RefreshInterval())
	defer eng.Stop()
	logger.Info("engine started", "refresh_interval", cfg.RefreshInterval())

	// Weight hot reload
	if cfg.Scoring.WatchWeights && *configPath != "" {
		go func() {
			err := config.Watch(ctx, *configPath, logger, func(next *config.Config) {
				w := weightsFromConfig(next.Scoring.Weights)
				if w == eng.Weights() {
					return
				}
				if _, err := eng.SetWeights(ctx, w, engine.SourceConfig); err != nil {
					logger.Warn("rejected reloaded weights", "error", err)
				}
			})
			if err != nil {
				logger.Error("config watch stopped", "error", err)
			}
		}()
	}

	// API server
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(eng, cfg.Server.AdminToken, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// openSource builds the dataset the engine scores. Synthetic and file
// datasets are built once and served from memory.
func openSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to database")
		return db, nil

	case config.SourceFile:
		res, err := dataset.LoadFile(cfg.Source.Path)
		if err != nil {
			return nil, err
		}
		for _, re := range res.Errors {
			logger.Warn("skipping invalid record", "path", cfg.Source.Path, "index", re.Index, "error", re.Err)
		}
		logger.Info("dataset loaded", "path", cfg.Source.Path, "records", len(res.Records), "invalid", len(res.Errors))
		return store.NewMemoryStore(res.Records), nil

	default:
		records := dataset.Generate(dataset.GeneratorConfig{
			Seed:      cfg.Generator.Seed,
			StartYear: cfg.Generator.StartYear,
			EndYear:   cfg.Generator.EndYear,
			Regions:   cfg.Generator.Regions,
		})
		logger.Info("synthetic dataset generated", "seed", cfg.Generator.Seed, "records", len(records))
		return store.NewMemoryStore(records), nil
	}
}

func weightsFromConfig(w config.ScoringWeights) scoring.WeightConfig {
	return scoring.WeightConfig{
		Profit:      w.Profit,
		Reliability: w.Reliability,
		EROI:        w.EROI,
		Neutrality:  w.Neutrality,
		Env:         w.Env,
	}
}
