package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iudanet/fieldkeeper/internal/client/netmon"
	"github.com/iudanet/fieldkeeper/internal/client/offline"
	"github.com/iudanet/fieldkeeper/internal/metrics"
)

// watcher реализует cli.Watcher: монитор сети управляет очередью до отмены ctx
type watcher struct {
	service     *offline.Service
	probe       *netmon.ProbeProvider
	registry    *prometheus.Registry
	logger      *slog.Logger
	metricsAddr string
}

func (w *watcher) Watch(ctx context.Context) error {
	if w.metricsAddr != "" {
		stopMetrics := w.serveMetrics()
		defer stopMetrics()
	}

	// монитор подписывается до старта опроса, чтобы не пропустить первый результат
	monitor := w.service.AttachMonitor(w.probe)
	unsubscribe := monitor.Subscribe(func(online bool) {
		w.logger.Info("Connectivity changed", "online", online, "pending", w.service.PendingCount())
	})
	defer unsubscribe()

	w.probe.Start(ctx)
	defer w.probe.Stop()

	w.service.Run(ctx)
	return nil
}

// serveMetrics поднимает /metrics для сбора метрик очереди во время watch
func (w *watcher) serveMetrics() (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler(w.registry))

	srv := &http.Server{
		Addr:              w.metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		w.logger.Info("Serving metrics", "addr", w.metricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.logger.Error("Metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
