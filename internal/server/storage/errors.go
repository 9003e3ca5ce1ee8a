package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrRecordNotFound indicates that a report or staff record was not found
	ErrRecordNotFound = errors.New("record not found")

	// ErrActionNotProcessed indicates that no response is stored for an idempotency key
	ErrActionNotProcessed = errors.New("action not processed")
)
