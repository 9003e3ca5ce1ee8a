package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iudanet/fieldkeeper/internal/client/api"
	"github.com/iudanet/fieldkeeper/internal/client/auth"
	"github.com/iudanet/fieldkeeper/internal/client/cli"
	"github.com/iudanet/fieldkeeper/internal/client/data"
	"github.com/iudanet/fieldkeeper/internal/client/effects"
	"github.com/iudanet/fieldkeeper/internal/client/iocli"
	"github.com/iudanet/fieldkeeper/internal/client/netmon"
	"github.com/iudanet/fieldkeeper/internal/client/offline"
	"github.com/iudanet/fieldkeeper/internal/client/queue"
	"github.com/iudanet/fieldkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/fieldkeeper/internal/client/sync"
	"github.com/iudanet/fieldkeeper/internal/config"
	"github.com/iudanet/fieldkeeper/internal/logging"
	"github.com/iudanet/fieldkeeper/internal/metrics"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fieldkeeper", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showVersion := fs.Bool("version", false, "Show version information")
	password := fs.String("password", "", "account password (not recommended, use env var or file)")
	passwordFile := fs.String("password-file", "", "path to file containing the account password")

	cfg, err := config.LoadClient(fs, args, os.LookupEnv)
	// Show version and exit if requested
	if *showVersion {
		printVersion(stdout)
		return 0
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	logger, closer, err := logging.New(cfg.Log, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "logging: %v\n", err)
		return 2
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	secrets := cli.Secrets{FromFile: *passwordFile, FromArgs: *password}
	if err := execute(ctx, cfg, secrets, fs.Args(), logger); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func execute(ctx context.Context, cfg *config.Client, secrets cli.Secrets, args []string, logger *slog.Logger) error {
	// Открываем BoltDB storage
	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(cfg.ServerURL)
	authService := auth.NewService(apiClient, store, logger.With("component", "auth"))
	handlers := effects.New(apiClient, authService, store, logger.With("component", "effects")).Handlers()

	reg := prometheus.NewRegistry()
	offlineService := offline.New(store, handlers, offline.Options{
		Logger:   logger,
		Recorder: metrics.NewSyncCollector(reg),
		Queue: queue.Config{
			DefaultRetryBudget: cfg.Sync.RetryBudget,
			RetryBudgets:       cfg.KindBudgets(),
		},
		Engine:           sync.Config{HandlerTimeout: cfg.Sync.HandlerTimeout},
		Monitor:          netmon.Config{SettleDelay: cfg.Sync.SettleDelay},
		AutoSyncInterval: cfg.Sync.AutoSyncInterval,
	})
	defer offlineService.Close()

	if err := offlineService.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to load offline state: %w", err)
	}

	probe := netmon.NewProbeProvider(netmon.ProbeConfig{
		URL:      cfg.Probe.URL,
		Interval: cfg.Probe.Interval,
		Timeout:  cfg.Probe.Timeout,
	}, logger.With("component", "probe"))

	app := cli.New(cli.Deps{
		IO:           iocli.NewStdio(),
		Auth:         authService,
		Data:         data.NewService(offlineService),
		Outbox:       offlineService,
		Connectivity: probe,
		Watcher: &watcher{
			service:     offlineService,
			probe:       probe,
			registry:    reg,
			metricsAddr: cfg.MetricsAddr,
			logger:      logger,
		},
		Secrets: secrets,
	})
	return app.Run(ctx, args)
}

func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "FieldKeeper Client\n")
	_, _ = fmt.Fprintf(w, "Version:    %s\n", Version)
	_, _ = fmt.Fprintf(w, "Build Date: %s\n", BuildDate)
	_, _ = fmt.Fprintf(w, "Git Commit: %s\n", GitCommit)
}
