package auth

import (
	"context"

	"github.com/iudanet/fieldkeeper/internal/client/storage"
)

//go:generate moq -out service_mock.go . Service

// Service defines the main interface for authentication operations.
// It manages both authentication (register/login) and the stored session,
// and acts as the token source of the effect handlers.
type Service interface {
	// Register регистрирует нового пользователя
	Register(ctx context.Context, username, password string) (*RegisterResult, error)

	// Login выполняет аутентификацию и сохраняет сессию локально
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// Logout выполняет выход из системы
	// Удаляет локальные данные авторизации и уведомляет сервер (best effort)
	Logout(ctx context.Context) error

	// AccessToken возвращает действующий access token, при необходимости обновляя его
	AccessToken(ctx context.Context) (string, error)

	// Current возвращает сохраненную сессию
	// Returns storage.ErrAuthNotFound if nobody is logged in
	Current(ctx context.Context) (*storage.AuthData, error)

	// IsAuthenticated checks if a usable session exists
	IsAuthenticated(ctx context.Context) (bool, error)
}
