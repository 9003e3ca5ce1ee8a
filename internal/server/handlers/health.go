package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/fieldkeeper/pkg/api"
)

// healthCheckTimeout ограничивает проверку базы данных
const healthCheckTimeout = 2 * time.Second

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger *slog.Logger
	db     Pinger
	now    func() time.Time
}

// NewHealthHandler создает новый handler для health check. db может быть nil.
func NewHealthHandler(logger *slog.Logger, db Pinger) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		db:     db,
		now:    time.Now,
	}
}

// Health обрабатывает GET /api/v1/health.
// Клиентский монитор сети считает сервер доступным только при 2xx.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status: "ok",
		Time:   h.now().UTC(),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.ErrorContext(ctx, "database is unavailable", slog.Any("error", err))
			resp.Status = "unavailable"
			sendJSON(w, h.logger, resp, http.StatusServiceUnavailable)
			return
		}
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}
