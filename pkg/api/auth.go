// Package api holds the wire types shared by the field client and the server.
package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username    string `json:"username"`      // username пользователя
	AuthKeyHash string `json:"auth_key_hash"` // SHA256 хеш auth_key (hex-encoded)
	PublicSalt  string `json:"public_salt"`   // base64 encoded salt (32 bytes)
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	UserID  string `json:"user_id"` // UUID пользователя
	Message string `json:"message"` // сообщение об успешной регистрации
}

// SaltResponse представляет ответ с публичной солью пользователя
type SaltResponse struct {
	PublicSalt string `json:"public_salt"` // base64 encoded salt
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username    string `json:"username"`      // username пользователя
	AuthKeyHash string `json:"auth_key_hash"` // SHA256 хеш auth_key (hex-encoded)
}

// RefreshRequest представляет запрос на обновление access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest отзывает refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse представляет ответ с токенами доступа
type TokenResponse struct {
	UserID           string `json:"user_id"`            // UUID пользователя
	AccessToken      string `json:"access_token"`       // JWT access token
	RefreshToken     string `json:"refresh_token"`      // refresh token
	ExpiresIn        int64  `json:"expires_in"`         // время жизни access token в секундах
	RefreshExpiresIn int64  `json:"refresh_expires_in"` // время жизни refresh token в секундах
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
