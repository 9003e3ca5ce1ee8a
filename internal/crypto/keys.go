package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Params задает стоимость Argon2id
type Params struct {
	Time    uint32 `json:"t"`
	Memory  uint32 `json:"m"` // KB
	Threads uint8  `json:"p"`
}

const (
	// KeyLen - длина выходного ключа в байтах
	KeyLen = 32
	// SaltSize - размер соли в байтах
	SaltSize = 32
)

var (
	// AuthParams используются для auth_key при входе (выполняется на каждом login)
	AuthParams = Params{Time: 1, Memory: 64 * 1024, Threads: 4}

	// BackupParams используются для ключа шифрования экспортируемых снимков
	BackupParams = Params{Time: 3, Memory: 64 * 1024, Threads: 4}
)

// Validate checks that params are usable and not absurdly large.
func (p Params) Validate() error {
	if p.Time == 0 || p.Threads == 0 || p.Memory < 8*uint32(p.Threads) {
		return fmt.Errorf("invalid argon2 params: t=%d m=%d p=%d", p.Time, p.Memory, p.Threads)
	}
	if p.Memory > 1024*1024 || p.Time > 16 {
		return fmt.Errorf("argon2 params too expensive: t=%d m=%d", p.Time, p.Memory)
	}
	return nil
}

// GenerateSalt генерирует криптографически случайную соль
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// GenerateSaltBase64 генерирует соль и возвращает ее в Base64
func GenerateSaltBase64() (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveAuthKey derives the key a client proves its password with.
// The password itself never leaves the device; the server only sees
// the SHA-256 of this key.
func DeriveAuthKey(password, username string, salt []byte) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	// username и контекст "auth" разделяют ключи разных пользователей и назначений
	input := []byte(password + username + "auth")
	return deriveKey(input, salt, AuthParams), nil
}

// DeriveAuthKeyFromBase64Salt derives the auth key from a base64 encoded salt.
func DeriveAuthKeyFromBase64Salt(password, username, saltBase64 string) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(saltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	return DeriveAuthKey(password, username, salt)
}

// DeriveBackupKey derives an AES-256 key from a backup passphrase.
func DeriveBackupKey(passphrase string, salt []byte, p Params) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return deriveKey([]byte(passphrase+"backup"), salt, p), nil
}

func deriveKey(input, salt []byte, p Params) []byte {
	return argon2.IDKey(input, salt, p.Time, p.Memory, p.Threads, KeyLen)
}
