package models

import "time"

// User представляет полевого сотрудника с учетной записью на сервере
type User struct {
	CreatedAt   time.Time  `json:"created_at"`           // время регистрации
	LastLogin   *time.Time `json:"last_login,omitempty"` // время последнего входа
	ID          string     `json:"id"`                   // UUID пользователя
	Username    string     `json:"username"`             // уникальный логин
	AuthKeyHash string     `json:"auth_key_hash"`        // SHA-256 хеш auth_key (hex)
	PublicSalt  string     `json:"public_salt"`          // base64 encoded salt (32 bytes)
}

// RefreshToken представляет refresh token пользователя
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
	Token     string    `json:"token"`      // непрозрачный токен
	UserID    string    `json:"user_id"`    // ID пользователя
}

// IsExpired reports whether the token is no longer valid at now.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
