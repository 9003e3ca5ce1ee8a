package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/fieldkeeper/internal/server/handlers"
)

// AuthMiddleware создает middleware для проверки JWT access token.
// Данные пользователя из claims кладутся в контекст запроса.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(r.Context(), "missing Authorization header", "path", r.URL.Path)
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				logger.WarnContext(r.Context(), "invalid Authorization header format")
				writeError(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, token)
			if err != nil {
				logger.WarnContext(r.Context(), "invalid access token", "error", err)
				writeError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := handlers.WithUser(r.Context(), claims.UserID, claims.Username)
			logger.DebugContext(ctx, "user authenticated", "user_id", claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
