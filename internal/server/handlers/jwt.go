package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/fieldkeeper/internal/crypto"
)

// tokenIssuer значение iss в access token
const tokenIssuer = "fieldkeeper"

// refreshTokenSize размер refresh token в байтах до кодирования
const refreshTokenSize = 32

// CustomClaims представляет JWT claims для нашего приложения
type CustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTConfig содержит конфигурацию для JWT
type JWTConfig struct {
	Secret          []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// GenerateAccessToken создает новый JWT access token, подписанный HS256
func GenerateAccessToken(cfg JWTConfig, now time.Time, userID, username string) (string, int64, error) {
	claims := CustomClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, int64(cfg.AccessTokenTTL.Seconds()), nil
}

// ValidateAccessToken валидирует и парсит JWT access token
func ValidateAccessToken(cfg JWTConfig, tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return cfg.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.UserID == "" {
		return nil, errors.New("token has no user_id claim")
	}

	return claims, nil
}

// issuedRefreshToken новый refresh token: значение уходит клиенту, в БД только hash
type issuedRefreshToken struct {
	ExpiresAt time.Time
	Token     string
	Hash      string
}

// generateRefreshToken создает новый случайный refresh token
func generateRefreshToken(cfg JWTConfig, now time.Time) (*issuedRefreshToken, error) {
	token, err := crypto.GenerateToken(refreshTokenSize)
	if err != nil {
		return nil, err
	}

	return &issuedRefreshToken{
		Token:     token,
		Hash:      crypto.HashToken(token),
		ExpiresAt: now.Add(cfg.RefreshTokenTTL),
	}, nil
}
