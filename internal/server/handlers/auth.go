package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fieldkeeper/internal/crypto"
	"github.com/iudanet/fieldkeeper/internal/models"
	"github.com/iudanet/fieldkeeper/internal/server/storage"
	"github.com/iudanet/fieldkeeper/internal/validation"
	"github.com/iudanet/fieldkeeper/pkg/api"
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	now          func() time.Time
	jwtConfig    JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		jwtConfig:    jwtConfig,
		now:          time.Now,
	}
}

// Register обрабатывает POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(w, h.logger, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	if req.AuthKeyHash == "" {
		sendError(w, h.logger, "auth_key_hash is required", http.StatusBadRequest)
		return
	}
	if req.PublicSalt == "" {
		sendError(w, h.logger, "public_salt is required", http.StatusBadRequest)
		return
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Username:    req.Username,
		AuthKeyHash: req.AuthKeyHash,
		PublicSalt:  req.PublicSalt,
		CreatedAt:   h.now(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username))
			sendError(w, h.logger, "username already taken", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	sendJSON(w, h.logger, api.RegisterResponse{
		UserID:  user.ID,
		Message: "User registered successfully",
	}, http.StatusCreated)
}

// GetSalt обрабатывает GET /api/v1/auth/salt/{username}
func (h *AuthHandler) GetSalt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := r.PathValue("username")
	if err := validation.ValidateUsername(username); err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(w, h.logger, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(w, h.logger, api.SaltResponse{PublicSalt: user.PublicSalt}, http.StatusOK)
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(w, h.logger, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}
	if req.AuthKeyHash == "" {
		sendError(w, h.logger, "auth_key_hash is required", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", req.Username))
			sendError(w, h.logger, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	// Клиент присылает SHA256 от auth_key, сравниваем за константное время
	if subtle.ConstantTimeCompare([]byte(user.AuthKeyHash), []byte(req.AuthKeyHash)) != 1 {
		h.logger.WarnContext(ctx, "login failed: invalid auth key", slog.String("username", req.Username))
		sendError(w, h.logger, "invalid credentials", http.StatusUnauthorized)
		return
	}

	resp, err := h.issueTokens(r, user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue tokens", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, h.now()); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// Refresh обрабатывает POST /api/v1/auth/refresh.
// Старый refresh token отзывается, клиент получает новую пару.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		sendError(w, h.logger, "refresh_token is required", http.StatusBadRequest)
		return
	}

	hash := crypto.HashToken(req.RefreshToken)
	stored, err := h.tokenStorage.GetRefreshToken(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token not found")
			sendError(w, h.logger, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	if stored.IsExpired(h.now()) {
		h.logger.WarnContext(ctx, "refresh token expired", slog.String("user_id", stored.UserID))
		_ = h.tokenStorage.DeleteRefreshToken(ctx, hash)
		sendError(w, h.logger, "refresh token expired", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(w, h.logger, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	// Удаляем старый токен до выдачи нового: повторное использование невозможно
	if err := h.tokenStorage.DeleteRefreshToken(ctx, hash); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			sendError(w, h.logger, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete old refresh token", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	resp, err := h.issueTokens(r, user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue tokens", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "tokens refreshed", slog.String("user_id", user.ID))
	sendJSON(w, h.logger, resp, http.StatusOK)
}

// Logout обрабатывает POST /api/v1/auth/logout (требует access token).
// Отзывает переданный refresh token текущего пользователя.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.LogoutRequest
	if err := decodeJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		sendError(w, h.logger, "refresh_token is required", http.StatusBadRequest)
		return
	}

	hash := crypto.HashToken(req.RefreshToken)
	stored, err := h.tokenStorage.GetRefreshToken(ctx, hash)
	switch {
	case errors.Is(err, storage.ErrTokenNotFound):
		// токен уже отозван или истек, выход все равно успешен
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	if stored.UserID != userID {
		h.logger.WarnContext(ctx, "logout with foreign refresh token", slog.String("user_id", userID))
		sendError(w, h.logger, "refresh token does not belong to user", http.StatusForbidden)
		return
	}

	if err := h.tokenStorage.DeleteRefreshToken(ctx, hash); err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
		h.logger.ErrorContext(ctx, "failed to delete refresh token", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged out", slog.String("user_id", userID))
	w.WriteHeader(http.StatusNoContent)
}

// issueTokens выпускает access token и сохраняет hash нового refresh token
func (h *AuthHandler) issueTokens(r *http.Request, user *models.User) (*api.TokenResponse, error) {
	now := h.now()

	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, now, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	refresh, err := generateRefreshToken(h.jwtConfig, now)
	if err != nil {
		return nil, err
	}

	if err := h.tokenStorage.SaveRefreshToken(r.Context(), &models.RefreshToken{
		Token:     refresh.Hash,
		UserID:    user.ID,
		ExpiresAt: refresh.ExpiresAt,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	return &api.TokenResponse{
		UserID:           user.ID,
		AccessToken:      accessToken,
		RefreshToken:     refresh.Token,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: int64(h.jwtConfig.RefreshTokenTTL.Seconds()),
	}, nil
}
