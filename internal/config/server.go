package config

import (
	"flag"
	"fmt"
	"time"
)

// MinJWTSecretLen is the shortest accepted HMAC secret.
const MinJWTSecretLen = 32

// Server holds the settings of the reference backend.
type Server struct {
	Addr            string        `yaml:"addr"`
	DBPath          string        `yaml:"db_path"`
	JWTSecret       string        `yaml:"jwt_secret"`
	Log             Log           `yaml:"log"`
	RateLimit       RateLimit     `yaml:"rate_limit"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// IdempotencyTTL должен превышать самый долгий офлайн клиента,
	// иначе повтор старого действия применится повторно
	IdempotencyTTL  time.Duration `yaml:"idempotency_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	Metrics         bool          `yaml:"metrics"`
}

// RateLimit configures per-IP request limits.
type RateLimit struct {
	Window time.Duration `yaml:"window"`
	// AuthWindow и AuthRequests действуют для login/register
	AuthWindow   time.Duration `yaml:"auth_window"`
	Requests     int           `yaml:"requests"`
	AuthRequests int           `yaml:"auth_requests"`
}

// DefaultServer returns the built-in server settings.
func DefaultServer() Server {
	return Server{
		Addr:   ":8080",
		DBPath: "fieldkeeper-server.db",
		Log:    defaultLog(),
		RateLimit: RateLimit{
			Requests:     600,
			Window:       time.Minute,
			AuthRequests: 10,
			AuthWindow:   time.Minute,
		},
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
		ShutdownTimeout: 10 * time.Second,
		IdempotencyTTL:  30 * 24 * time.Hour,
		CleanupInterval: time.Hour,
		Metrics:         true,
	}
}

// LoadServer registers the server flags on fs, parses args and resolves the
// final configuration.
func LoadServer(fs *flag.FlagSet, args []string, lookup LookupEnv) (*Server, error) {
	cfg := DefaultServer()

	path := fs.String("config", "", "path to YAML config file (env "+EnvPrefix+"CONFIG)")
	b := &flagBinder{fs: fs}
	b.string("addr", "listen address (default "+cfg.Addr+")", &cfg.Addr)
	b.string("db", "path to SQLite database (default "+cfg.DBPath+")", &cfg.DBPath)
	b.string("log-level", "log level: debug, info, warn, error", &cfg.Log.Level)
	b.string("log-format", "log format: text or json", &cfg.Log.Format)
	b.string("log-file", "write logs to a rotated file instead of stderr", &cfg.Log.File)
	b.duration("access-ttl", "access token lifetime (default 15m)", &cfg.AccessTokenTTL)
	b.duration("refresh-ttl", "refresh token lifetime (default 720h)", &cfg.RefreshTokenTTL)
	b.bool("metrics", "serve /metrics (default true)", &cfg.Metrics)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := readYAML(configPath(*path, lookup), &cfg); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	b.apply()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Server) applyEnv(lookup LookupEnv) error {
	setString(lookup, "ADDR", &c.Addr)
	setString(lookup, "DB_PATH", &c.DBPath)
	// секрет удобнее передавать только через окружение
	setString(lookup, "JWT_SECRET", &c.JWTSecret)
	if err := c.Log.applyEnv(lookup); err != nil {
		return err
	}
	if err := setDuration(lookup, "ACCESS_TOKEN_TTL", &c.AccessTokenTTL); err != nil {
		return err
	}
	if err := setDuration(lookup, "REFRESH_TOKEN_TTL", &c.RefreshTokenTTL); err != nil {
		return err
	}
	if err := setDuration(lookup, "IDEMPOTENCY_TTL", &c.IdempotencyTTL); err != nil {
		return err
	}
	if err := setInt(lookup, "RATE_LIMIT_REQUESTS", &c.RateLimit.Requests); err != nil {
		return err
	}
	return setBool(lookup, "METRICS", &c.Metrics)
}

// Validate checks the resolved settings.
func (c *Server) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: listen address is required", ErrInvalidConfig)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db path is required", ErrInvalidConfig)
	}
	if len(c.JWTSecret) < MinJWTSecretLen {
		return fmt.Errorf("%w: jwt secret must be at least %d bytes (set %sJWT_SECRET)",
			ErrInvalidConfig, MinJWTSecretLen, EnvPrefix)
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= c.AccessTokenTTL {
		return fmt.Errorf("%w: token TTLs must be positive and refresh must outlive access", ErrInvalidConfig)
	}
	if c.IdempotencyTTL <= 0 || c.CleanupInterval <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: idempotency ttl, cleanup interval and shutdown timeout must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 ||
		c.RateLimit.AuthRequests <= 0 || c.RateLimit.AuthWindow <= 0 {
		return fmt.Errorf("%w: rate limits must be positive", ErrInvalidConfig)
	}
	return c.Log.validate()
}
