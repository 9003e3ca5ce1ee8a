package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// UsernamePattern определяет допустимый формат username.
// Табельные логины вида "j.doe-01": латиница, цифры, '_', '.', '-',
// первый символ обязательно буква или цифра.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]{2,31}$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 10
)

// ValidateUsername checks that a field worker login matches UsernamePattern.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username must start with a letter or digit and contain only letters, digits, '_', '.' or '-'")
	}

	return nil
}

// ValidatePassword checks the minimal password policy for an account.
// The password may not contain the username.
func ValidatePassword(username, password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if username != "" && strings.Contains(strings.ToLower(password), strings.ToLower(username)) {
		return fmt.Errorf("password must not contain the username")
	}

	return nil
}
