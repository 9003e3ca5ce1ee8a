package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/fieldkeeper/internal/server/storage"
)

// GetProcessedAction returns the stored outcome for an idempotency key
func (s *Storage) GetProcessedAction(ctx context.Context, userID, key string) (*storage.ProcessedAction, error) {
	query := `
		SELECT user_id, idempotency_key, route, status, response, created_at
		FROM processed_actions
		WHERE user_id = ? AND idempotency_key = ?
	`

	action := &storage.ProcessedAction{}
	err := s.db.QueryRowContext(ctx, query, userID, key).Scan(
		&action.UserID,
		&action.Key,
		&action.Route,
		&action.Status,
		&action.Response,
		&action.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrActionNotProcessed
		}
		return nil, fmt.Errorf("failed to get processed action: %w", err)
	}

	return action, nil
}

// SaveProcessedAction stores the response, keeping the first one on conflict
func (s *Storage) SaveProcessedAction(ctx context.Context, action *storage.ProcessedAction) error {
	query := `
		INSERT INTO processed_actions (user_id, idempotency_key, route, status, response, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, idempotency_key) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query,
		action.UserID,
		action.Key,
		action.Route,
		action.Status,
		action.Response,
		action.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save processed action: %w", err)
	}

	return nil
}

// DeleteProcessedBefore removes records older than before
func (s *Storage) DeleteProcessedBefore(ctx context.Context, before time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM processed_actions WHERE created_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete processed actions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
