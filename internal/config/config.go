// Package config loads client and server settings.
//
// Precedence, lowest first: built-in defaults, YAML file, FIELDKEEPER_*
// environment variables, command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "FIELDKEEPER_"

// ErrInvalidConfig is wrapped by all validation errors.
var ErrInvalidConfig = errors.New("invalid config")

// LookupEnv matches os.LookupEnv; tests pass a map-backed function.
type LookupEnv func(key string) (string, bool)

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text или json
	// File включает запись в файл с ротацией; пусто - stderr
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func defaultLog() Log {
	return Log{
		Level:      "info",
		Format:     "text",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

func (l Log) validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, l.Level)
	}
	switch l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, l.Format)
	}
	if l.File != "" && l.MaxSizeMB <= 0 {
		return fmt.Errorf("%w: log max_size_mb must be positive", ErrInvalidConfig)
	}
	return nil
}

func (l *Log) applyEnv(lookup LookupEnv) error {
	setString(lookup, "LOG_LEVEL", &l.Level)
	setString(lookup, "LOG_FORMAT", &l.Format)
	setString(lookup, "LOG_FILE", &l.File)
	return setInt(lookup, "LOG_MAX_SIZE_MB", &l.MaxSizeMB)
}

// readYAML decodes path over cfg. An empty path leaves cfg untouched.
func readYAML(path string, cfg any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return nil
}

func setString(lookup LookupEnv, key string, dst *string) {
	if v, ok := lookup(EnvPrefix + key); ok && v != "" {
		*dst = v
	}
}

func setInt(lookup LookupEnv, key string, dst *int) error {
	v, ok := lookup(EnvPrefix + key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s%s: %w", ErrInvalidConfig, EnvPrefix, key, err)
	}
	*dst = n
	return nil
}

func setDuration(lookup LookupEnv, key string, dst *time.Duration) error {
	v, ok := lookup(EnvPrefix + key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %s%s: %w", ErrInvalidConfig, EnvPrefix, key, err)
	}
	*dst = d
	return nil
}

func setBool(lookup LookupEnv, key string, dst *bool) error {
	v, ok := lookup(EnvPrefix + key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s%s: %w", ErrInvalidConfig, EnvPrefix, key, err)
	}
	*dst = b
	return nil
}
