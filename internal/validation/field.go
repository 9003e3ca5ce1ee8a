package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrInvalidField is wrapped by every field validation error.
var ErrInvalidField = errors.New("invalid field")

const (
	// MaxRecordIDLen максимальная длина идентификатора записи
	MaxRecordIDLen = 64
	// MaxTitleLen максимальная длина заголовка отчета
	MaxTitleLen = 200
	// MaxNotesLen максимальная длина заметок
	MaxNotesLen = 10000
	// MaxNameLen максимальная длина ФИО/названия площадки
	MaxNameLen = 120
)

var (
	recordIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9 ()-]{5,20}$`)
)

// ValidateRecordID checks identifiers of reports and staff records.
func ValidateRecordID(field, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidField, field)
	}
	if len(id) > MaxRecordIDLen {
		return fmt.Errorf("%w: %s must not exceed %d characters", ErrInvalidField, field, MaxRecordIDLen)
	}
	if !recordIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %s may contain only letters, digits, '_' and '-'", ErrInvalidField, field)
	}
	return nil
}

// ValidateText checks a free-text field. Length is counted in runes.
func ValidateText(field, value string, required bool, maxLen int) error {
	if required && strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidField, field)
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidField, field)
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return fmt.Errorf("%w: %s must not exceed %d characters", ErrInvalidField, field, maxLen)
	}
	return nil
}

// ValidatePhone checks an optional contact phone number.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: phone has invalid format", ErrInvalidField)
	}
	return nil
}
