package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/draftsim/config"
	"github.com/alejandrodnm/draftsim/internal/adapters/notify"
	"github.com/alejandrodnm/draftsim/internal/adapters/storage"
	"github.com/alejandrodnm/draftsim/internal/application/runner"
	"github.com/alejandrodnm/draftsim/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	dryRun := flag.Bool("dry-run", false, "simulate without persisting the run or its results")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full summary tables (default: compact 1-line)")
	report := flag.String("report", "", "print a stored run instead of simulating (run id or \"latest\")")
	startYear := flag.Int("start", 0, "first season to simulate (overrides config)")
	endYear := flag.Int("end", 0, "last season to simulate (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *startYear != 0 {
		cfg.Simulation.StartYear = *startYear
	}
	if *endYear != 0 {
		cfg.Simulation.EndYear = *endYear
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)

	slog.Info("draftsim starting",
		"config", *configPath,
		"dsn", cfg.Storage.DSN,
		"dry_run", *dryRun,
		"report", *report,
	)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	schema, err := store.SchemaVersion()
	if err != nil {
		slog.Error("storage schema is not usable", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	slog.Debug("storage ready", "dsn", cfg.Storage.DSN, "schema_version", schema)

	var notifier ports.Notifier = notify.NewConsole(*table)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *report != "" {
		if err := runReport(ctx, store, notifier, *report); err != nil {
			slog.Error("report failed", "err", err, "run", *report)
			os.Exit(1)
		}
		return
	}

	runCfg, err := cfg.RunnerConfig()
	if err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}

	var results ports.ResultStorage = store
	if *dryRun {
		results = nil
	}

	run, rows, err := runner.New(runCfg, store, results).Run(ctx)
	if err != nil {
		slog.Error("simulation failed", "err", err, "run_id", run.ID)
		os.Exit(1)
	}

	if err := notifier.Notify(ctx, run, rows); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	slog.Info("draftsim stopped cleanly", "run_id", run.ID)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
