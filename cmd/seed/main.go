package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/cricket-league/external/contentstack"
	"github.com/riskibarqy/cricket-league/internal/config"
	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/seed"
)

func main() {
	dataPath := flag.String("data", "", "YAML dataset to seed (default: built-in fallback content)")
	publish := flag.Bool("publish", false, "publish every created entry to the configured environment")
	dryRun := flag.Bool("dry-run", false, "print the plan without calling the Management API")
	delay := flag.Duration("delay", 250*time.Millisecond, "pause before every Management API call")
	workers := flag.Int("workers", 2, "concurrent requests per phase")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.NewConsole(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	dataset := seed.DefaultDataset()
	if *dataPath != "" {
		if dataset, err = seed.LoadDataset(*dataPath); err != nil {
			logger.Error("load dataset", "path", *dataPath, "error", err)
			os.Exit(1)
		}
	}

	var writer seed.EntryWriter
	if cfg.Contentstack.ManagementConfigured() {
		writer = contentstack.NewManagementClient(contentstack.ManagementConfig{
			BaseURL:         cfg.Contentstack.ManagementBaseURL,
			Region:          cfg.Contentstack.Region,
			APIKey:          cfg.Contentstack.APIKey,
			ManagementToken: cfg.Contentstack.ManagementToken,
			Environment:     cfg.Contentstack.Environment,
			Locale:          cfg.Contentstack.Locale,
			Timeout:         cfg.Contentstack.Timeout,
			Logger:          logger,
			CircuitBreaker:  cfg.Contentstack.Circuit,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seeder := seed.New(writer, seed.Config{
		Publish: *publish,
		DryRun:  *dryRun,
		Delay:   *delay,
		Workers: *workers,
		Out:     os.Stdout,
		Logger:  logger,
	})
	report, err := seeder.Run(ctx, dataset)
	logger.Info("seed finished",
		"created", report.Created,
		"published", report.Published,
		"failed", report.Failed,
		"publish_failed", report.PublishFailed,
		"skipped", report.Skipped,
		"dry_run", *dryRun,
	)
	if err != nil {
		logger.Error("seed incomplete", "error", err)
		os.Exit(1)
	}
}
