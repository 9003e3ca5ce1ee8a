package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/iudanet/fieldkeeper/internal/server/storage"
)

// Janitor periodically removes expired refresh tokens and idempotency records.
type Janitor struct {
	tokens      storage.TokenStorage
	idempotency storage.IdempotencyStorage
	logger      *slog.Logger
	now         func() time.Time
	interval    time.Duration
	retention   time.Duration
}

// NewJanitor создает janitor; retention задает срок хранения обработанных ключей
func NewJanitor(tokens storage.TokenStorage, idempotency storage.IdempotencyStorage, interval, retention time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{
		tokens:      tokens,
		idempotency: idempotency,
		logger:      logger,
		now:         time.Now,
		interval:    interval,
		retention:   retention,
	}
}

// Run performs a sweep immediately and then every interval until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		j.Sweep(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Sweep runs one cleanup pass. Errors are logged, the next pass retries.
func (j *Janitor) Sweep(ctx context.Context) {
	now := j.now()

	tokens, err := j.tokens.DeleteExpiredTokens(ctx, now)
	if err != nil {
		j.logger.ErrorContext(ctx, "failed to delete expired tokens", slog.Any("error", err))
	}

	actions, err := j.idempotency.DeleteProcessedBefore(ctx, now.Add(-j.retention))
	if err != nil {
		j.logger.ErrorContext(ctx, "failed to delete processed actions", slog.Any("error", err))
	}

	if tokens > 0 || actions > 0 {
		j.logger.InfoContext(ctx, "storage cleanup",
			slog.Int("expired_tokens", tokens),
			slog.Int("processed_actions", actions))
	}
}
