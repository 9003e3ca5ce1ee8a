// Package auth implements client registration, login and the token lifecycle.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/fieldkeeper/internal/client/api"
	"github.com/iudanet/fieldkeeper/internal/client/storage"
	"github.com/iudanet/fieldkeeper/internal/crypto"
	"github.com/iudanet/fieldkeeper/internal/validation"
	pkgapi "github.com/iudanet/fieldkeeper/pkg/api"
)

// RefreshLeeway is how long before expiry the access token is renewed.
const RefreshLeeway = 30 * time.Second

var (
	// ErrNotAuthenticated is returned when no session is stored.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired is returned when the refresh token can no longer be used.
	ErrSessionExpired = errors.New("session expired, login again")
)

// AuthService реализует Service поверх API клиента и локального хранилища
type AuthService struct {
	apiClient api.ClientAPI
	store     storage.AuthStorage
	logger    *slog.Logger
	now       func() time.Time

	// сериализует обновление токенов
	refreshMu sync.Mutex
}

var _ Service = (*AuthService)(nil)

// NewService создает новый сервис авторизации
func NewService(apiClient api.ClientAPI, store storage.AuthStorage, logger *slog.Logger) *AuthService {
	return &AuthService{
		apiClient: apiClient,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// RegisterResult содержит результат регистрации
type RegisterResult struct {
	UserID     string // UUID пользователя
	Username   string // username
	PublicSalt string // public salt (base64)
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(ctx context.Context, username, password string) (*RegisterResult, error) {
	// Валидация входных данных
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(username, password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	// 1. Генерируем публичную соль
	publicSalt, err := crypto.GenerateSaltBase64()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	// 2. Деривируем auth_key и хешируем его для отправки на сервер
	authKeyHash, err := deriveAuthKeyHash(password, username, publicSalt)
	if err != nil {
		return nil, err
	}

	// 3. Отправляем запрос на регистрацию
	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
		PublicSalt:  publicSalt,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info("User registered", "username", username, "user_id", resp.UserID)
	return &RegisterResult{
		UserID:     resp.UserID,
		Username:   username,
		PublicSalt: publicSalt,
	}, nil
}

// LoginResult содержит результат авторизации
type LoginResult struct {
	ExpiresAt time.Time // истечение access token
	UserID    string
	Username  string
}

// Login выполняет аутентификацию пользователя и сохраняет токены
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("invalid password: password cannot be empty")
	}

	// 1. Получаем public_salt с сервера
	saltResp, err := s.apiClient.GetSalt(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get salt: %w", err)
	}

	// 2. Деривируем auth_key и хешируем его
	authKeyHash, err := deriveAuthKeyHash(password, username, saltResp.PublicSalt)
	if err != nil {
		return nil, err
	}

	// 3. Отправляем запрос на логин
	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	// 4. Сохраняем сессию
	auth := s.authFromTokens(resp)
	auth.Username = username
	auth.PublicSalt = saltResp.PublicSalt
	if err := s.store.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	s.logger.Info("User logged in", "username", username)
	return &LoginResult{
		ExpiresAt: time.Unix(auth.ExpiresAt, 0),
		UserID:    auth.UserID,
		Username:  username,
	}, nil
}

// Logout выполняет выход из системы
// Удаляет локальные данные авторизации и уведомляет сервер (best effort)
func (s *AuthService) Logout(ctx context.Context) error {
	auth, err := s.store.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		s.logger.Debug("No auth data found during logout")
	case err != nil:
		return fmt.Errorf("failed to read auth data: %w", err)
	default:
		// Не прерываем процесс, если сервер недоступен
		if err := s.apiClient.Logout(ctx, auth.AccessToken, auth.RefreshToken); err != nil {
			s.logger.Warn("Failed to logout on server", "error", err)
		}
	}

	// Всегда удаляем локальные данные, даже если сервер недоступен
	if err := s.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}
	return nil
}

// AccessToken returns a valid access token, refreshing it when it expires
// within RefreshLeeway.
func (s *AuthService) AccessToken(ctx context.Context) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	auth, err := s.Current(ctx)
	if err != nil {
		return "", err
	}

	now := s.now()
	if !auth.AccessExpired(now, RefreshLeeway) {
		return auth.AccessToken, nil
	}
	if auth.RefreshToken == "" || now.Unix() >= auth.RefreshExpiresAt {
		return "", ErrSessionExpired
	}

	resp, err := s.apiClient.Refresh(ctx, auth.RefreshToken)
	if err != nil {
		if api.IsUnauthorized(err) {
			return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	refreshed := s.authFromTokens(resp)
	refreshed.Username = auth.Username
	refreshed.PublicSalt = auth.PublicSalt
	if refreshed.UserID == "" {
		refreshed.UserID = auth.UserID
	}
	if resp.RefreshExpiresIn == 0 {
		refreshed.RefreshExpiresAt = auth.RefreshExpiresAt
	}
	if err := s.store.SaveAuth(ctx, refreshed); err != nil {
		return "", fmt.Errorf("failed to save refreshed tokens: %w", err)
	}

	s.logger.Debug("Access token refreshed", "username", auth.Username)
	return refreshed.AccessToken, nil
}

// Current возвращает сохраненную сессию
func (s *AuthService) Current(ctx context.Context) (*storage.AuthData, error) {
	auth, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
		}
		return nil, fmt.Errorf("failed to read auth data: %w", err)
	}
	return auth, nil
}

// IsAuthenticated checks if a usable session exists
func (s *AuthService) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.store.IsAuthenticated(ctx)
}

func (s *AuthService) authFromTokens(resp *pkgapi.TokenResponse) *storage.AuthData {
	now := s.now()
	auth := &storage.AuthData{
		UserID:       resp.UserID,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    now.Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}
	if resp.RefreshExpiresIn > 0 {
		auth.RefreshExpiresAt = now.Add(time.Duration(resp.RefreshExpiresIn) * time.Second).Unix()
	}
	return auth
}

func deriveAuthKeyHash(password, username, publicSalt string) (string, error) {
	authKey, err := crypto.DeriveAuthKeyFromBase64Salt(password, username, publicSalt)
	if err != nil {
		return "", fmt.Errorf("failed to derive auth key: %w", err)
	}
	hash, err := crypto.HashAuthKey(authKey)
	if err != nil {
		return "", fmt.Errorf("failed to hash auth key: %w", err)
	}
	return hash, nil
}
