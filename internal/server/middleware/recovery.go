package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/iudanet/fieldkeeper/pkg/api"
)

// RecoveryMiddleware turns a handler panic into 500 so the server keeps
// serving other devices. The mutation of a panicking request is not committed
// and its Idempotency-Key is not recorded, so the client action that caused it
// is retried under its own retry budget.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// ErrAbortHandler используется net/http для прерывания ответа, не глотаем
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				attrs := []any{
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"stack", string(debug.Stack()),
				}
				// Pattern выставляет ServeMux до вызова обработчика
				if r.Pattern != "" {
					attrs = append(attrs, "route", r.Pattern)
				}
				// id действия клиента помогает найти его в очереди устройства
				if actionID := r.Header.Get(api.IdempotencyKeyHeader); actionID != "" {
					attrs = append(attrs, "action_id", actionID)
				}
				logger.ErrorContext(r.Context(), "panic recovered", attrs...)

				// Детали паники клиенту не раскрываем
				writeError(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
