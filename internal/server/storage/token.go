package storage

import (
	"context"
	"time"

	"github.com/iudanet/fieldkeeper/internal/models"
)

// TokenStorage defines interface for refresh token persistence.
// Token values are stored hashed (crypto.HashToken), callers pass the hash.
type TokenStorage interface {
	// SaveRefreshToken stores a new refresh token
	// If token with same hash exists, it will be replaced
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error

	// GetRefreshToken retrieves refresh token by its hash
	// Returns ErrTokenNotFound if token doesn't exist
	GetRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error)

	// DeleteRefreshToken deletes refresh token by its hash
	// Returns ErrTokenNotFound if token doesn't exist
	DeleteRefreshToken(ctx context.Context, tokenHash string) error

	// DeleteExpiredTokens removes tokens expired before now
	// Returns number of deleted tokens
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error)
}
