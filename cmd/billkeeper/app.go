package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/TheOriginalKDC/Bill-Keeper/internal/config"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/document"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/metrics"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/service"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/storage"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/storage/sqlite"
	"github.com/TheOriginalKDC/Bill-Keeper/pkg/logging"
)

// globalFlags are accepted by every command.
type globalFlags struct {
	configPath  string
	dbPath      string
	logLevel    string
	metricsFile string
}

func (g *globalFlags) add(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&g.configPath, "config", "", "YAML config file")
	flagSet.StringVar(&g.dbPath, "db", "", "SQLite database path (default ./data/billkeeper.db)")
	flagSet.StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error")
	flagSet.StringVar(&g.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
}

// config resolves the configuration: defaults, file, environment, then flags.
func (g *globalFlags) config() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.dbPath != "" {
		cfg.DBPath = g.dbPath
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.metricsFile != "" {
		cfg.MetricsFile = g.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// app is the wiring shared by all commands.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	kv      storage.Store
	session *service.Session
}

func openApp(ctx context.Context, g *globalFlags, stderr io.Writer) (*app, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, err
	}

	logger := logging.New(stderr, cfg.LogLevel)
	m := metrics.New()

	kv, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Debug("Storage initialized", "database", cfg.DBPath, "key", cfg.StorageKey)

	docs := document.NewStore(kv,
		document.WithKey(cfg.StorageKey),
		document.WithLogger(logger),
		document.WithMetrics(m),
	)
	session := service.Open(ctx, docs,
		service.WithLogger(logger),
		service.WithMetrics(m),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		kv:      kv,
		session: session,
	}, nil
}

// close writes the metrics file, if configured, and closes the database.
func (a *app) close() {
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		a.logger.Warn("Metrics not written", "path", a.cfg.MetricsFile, "error", err)
	}
	if err := a.kv.Close(); err != nil {
		a.logger.Warn("Failed to close storage", "error", err)
	}
}

// newFlagSet builds a command flag set that includes the global flags.
func newFlagSet(name string, g *globalFlags, stderr io.Writer) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("billkeeper "+name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	g.add(flagSet)
	return flagSet
}

// parseFlags parses args, turning --help into a clean exit.
func parseFlags(flagSet *pflag.FlagSet, args []string) (done bool, err error) {
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		// pflag has already reported the error and usage.
		return true, &exitError{code: 2}
	}
	if flagSet.NArg() > 0 {
		return true, &exitError{code: 2, msg: fmt.Sprintf("unexpected arguments: %v", flagSet.Args())}
	}
	return false, nil
}
