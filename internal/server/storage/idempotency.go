package storage

import (
	"context"
	"time"
)

// ProcessedAction is the stored outcome of a mutation keyed by Idempotency-Key.
type ProcessedAction struct {
	CreatedAt time.Time
	UserID    string
	Key       string
	Route     string
	Response  []byte
	Status    int
}

// IdempotencyStorage remembers responses of applied mutations so a replayed
// request returns the first outcome instead of applying twice.
type IdempotencyStorage interface {
	// GetProcessedAction returns ErrActionNotProcessed if key is unknown
	GetProcessedAction(ctx context.Context, userID, key string) (*ProcessedAction, error)

	// SaveProcessedAction stores the response, keeping the first one on conflict
	SaveProcessedAction(ctx context.Context, action *ProcessedAction) error

	// DeleteProcessedBefore removes records older than before
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int, error)
}
