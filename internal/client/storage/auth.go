package storage

import (
	"context"
	"time"
)

//go:generate moq -out authstorage_mock.go . AuthStorage

// AuthStorage defines interface for storing authentication data on client.
// Auth data lives outside the KV namespace and is never part of a snapshot.
type AuthStorage interface {
	// SaveAuth stores authentication data
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks if a session exists whose refresh token is still usable
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents authentication information in storage
type AuthData struct {
	Username         string `json:"username"`
	UserID           string `json:"user_id"`
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	PublicSalt       string `json:"public_salt"`
	ExpiresAt        int64  `json:"expires_at"`         // unix-время истечения access token
	RefreshExpiresAt int64  `json:"refresh_expires_at"` // unix-время истечения refresh token
}

// AccessExpired reports whether the access token expires within leeway of now.
func (a *AuthData) AccessExpired(now time.Time, leeway time.Duration) bool {
	return now.Add(leeway).Unix() >= a.ExpiresAt
}

// SessionUsable reports whether the refresh token can still renew access at now.
// Queued actions are sent only with a usable session.
func (a *AuthData) SessionUsable(now time.Time) bool {
	if a.RefreshToken == "" {
		return false
	}
	// 0 - сервер не сообщил срок refresh token
	return a.RefreshExpiresAt == 0 || now.Unix() < a.RefreshExpiresAt
}
