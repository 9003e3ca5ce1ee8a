package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iudanet/fieldkeeper/internal/config"
	"github.com/iudanet/fieldkeeper/internal/logging"
	"github.com/iudanet/fieldkeeper/internal/metrics"
	"github.com/iudanet/fieldkeeper/internal/server"
	"github.com/iudanet/fieldkeeper/internal/server/handlers"
	"github.com/iudanet/fieldkeeper/internal/server/storage/sqlite"
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
	fs := flag.NewFlagSet("fieldkeeper-server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showVersion := fs.Bool("version", false, "Show version information")

	cfg, err := config.LoadServer(fs, args, os.LookupEnv)
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

	if err := serve(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		return 1
	}
	return 0
}

func serve(cfg *config.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	routerCfg := server.RouterConfig{
		Logger: logger,
		Store:  store,
		JWT: handlers.JWTConfig{
			Secret:          []byte(cfg.JWTSecret),
			AccessTokenTTL:  cfg.AccessTokenTTL,
			RefreshTokenTTL: cfg.RefreshTokenTTL,
		},
		RateLimit: cfg.RateLimit,
	}
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		routerCfg.HTTPMetrics = metrics.NewHTTPCollector(reg)
		routerCfg.MetricsHandler = metrics.Handler(reg)
	}

	router := server.NewRouter(routerCfg)
	defer router.Stop()

	janitor := server.NewJanitor(store, store, cfg.CleanupInterval, cfg.IdempotencyTTL, logger)
	go janitor.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("fieldkeeper server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", Version),
			slog.Bool("metrics", cfg.Metrics),
		)
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "FieldKeeper Server\n")
	_, _ = fmt.Fprintf(w, "Version:    %s\n", Version)
	_, _ = fmt.Fprintf(w, "Build Date: %s\n", BuildDate)
	_, _ = fmt.Fprintf(w, "Git Commit: %s\n", GitCommit)
}
