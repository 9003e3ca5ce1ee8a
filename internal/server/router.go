// Package server wires the reference backend: routes, middleware chain and
// background maintenance of the SQLite store.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/fieldkeeper/internal/config"
	"github.com/iudanet/fieldkeeper/internal/metrics"
	"github.com/iudanet/fieldkeeper/internal/server/handlers"
	"github.com/iudanet/fieldkeeper/internal/server/middleware"
	"github.com/iudanet/fieldkeeper/internal/server/storage"
)

// Storage is everything the HTTP layer needs from the database.
type Storage interface {
	storage.UserStorage
	storage.TokenStorage
	storage.FieldStorage
	storage.IdempotencyStorage
	Ping(ctx context.Context) error
}

// RouterConfig holds router dependencies. HTTPMetrics and MetricsHandler are optional.
type RouterConfig struct {
	Logger         *slog.Logger
	Store          Storage
	HTTPMetrics    *metrics.HTTPCollector
	MetricsHandler http.Handler
	JWT            handlers.JWTConfig
	RateLimit      config.RateLimit
}

// Router is the root HTTP handler. Stop releases rate limiter goroutines.
type Router struct {
	http.Handler
	limiters []*middleware.RateLimiter
}

// Stop останавливает фоновую очистку rate limiter
func (rt *Router) Stop() {
	for _, l := range rt.limiters {
		l.Stop()
	}
}

// NewRouter builds the API routes and the middleware chain:
// logging -> recovery -> rate limit -> metrics -> mux.
// Metrics wraps the mux directly so r.Pattern is visible after routing.
func NewRouter(cfg RouterConfig) *Router {
	logger := cfg.Logger

	authHandler := handlers.NewAuthHandler(logger, cfg.Store, cfg.Store, cfg.JWT)
	healthHandler := handlers.NewHealthHandler(logger, cfg.Store)

	var replays handlers.ReplayObserver
	if cfg.HTTPMetrics != nil {
		replays = cfg.HTTPMetrics
	}
	fieldHandler := handlers.NewFieldHandler(logger, cfg.Store, cfg.Store, replays)

	authLimiter := middleware.NewRateLimiter(cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow, logger)
	apiLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)

	public := func(h http.HandlerFunc) http.Handler {
		return authLimiter.Middleware(h)
	}
	requireAuth := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(logger, cfg.JWT)(h)
	}

	mux := http.NewServeMux()

	// Публичные эндпоинты авторизации со строгим лимитом
	mux.Handle("POST /api/v1/auth/register", public(authHandler.Register))
	mux.Handle("GET /api/v1/auth/salt/{username}", public(authHandler.GetSalt))
	mux.Handle("POST /api/v1/auth/login", public(authHandler.Login))
	mux.Handle("POST /api/v1/auth/refresh", public(authHandler.Refresh))
	mux.Handle("POST /api/v1/auth/logout", requireAuth(authHandler.Logout))

	// Мутации очереди клиента, идемпотентны по Idempotency-Key
	mux.Handle("POST /api/v1/reports", requireAuth(fieldHandler.SubmitReport))
	mux.Handle("DELETE /api/v1/reports/{id}", requireAuth(fieldHandler.DeleteReport))
	mux.Handle("POST /api/v1/staff", requireAuth(fieldHandler.AddStaff))
	mux.Handle("PUT /api/v1/staff/{id}", requireAuth(fieldHandler.UpdateStaff))
	mux.Handle("GET /api/v1/resync", requireAuth(fieldHandler.Resync))

	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}

	var h http.Handler = mux
	if cfg.HTTPMetrics != nil {
		h = cfg.HTTPMetrics.Middleware(h)
	}
	h = apiLimiter.Middleware(h)
	h = middleware.RecoveryMiddleware(logger)(h)
	h = middleware.LoggingWithSkip(logger, []string{"/api/v1/health", "/metrics"})(h)

	return &Router{
		Handler:  h,
		limiters: []*middleware.RateLimiter{authLimiter, apiLimiter},
	}
}
