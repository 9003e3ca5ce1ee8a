package storage

import (
	"context"
	"time"

	"github.com/iudanet/fieldkeeper/internal/models"
)

// UserStorage persists field accounts. A field account is what the reports
// and staff records of a device are scoped to; the server never sees the
// account password, only the hash of the key derived from it.
type UserStorage interface {
	// CreateUser stores a new account, ErrUserAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername is used by salt lookup and login, ErrUserNotFound otherwise.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID resolves the owner of a refresh token, ErrUserNotFound otherwise.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateLastLogin records when a device last signed in for the account.
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}
