package config

import (
	"flag"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/fieldkeeper/internal/models"
)

// Client holds the settings of the field client.
type Client struct {
	ServerURL string `yaml:"server_url"`
	DBPath    string `yaml:"db_path"`
	// MetricsAddr включает /metrics в режиме watch; пусто - выключено
	MetricsAddr string `yaml:"metrics_addr"`
	Log         Log    `yaml:"log"`
	Sync        Sync   `yaml:"sync"`
	Probe       Probe  `yaml:"probe"`
}

// Sync configures the offline queue and the sync engine.
type Sync struct {
	RetryBudgets     map[string]int `yaml:"retry_budgets"`
	SettleDelay      time.Duration  `yaml:"settle_delay"`
	HandlerTimeout   time.Duration  `yaml:"handler_timeout"`
	AutoSyncInterval time.Duration  `yaml:"auto_sync_interval"`
	RetryBudget      int            `yaml:"retry_budget"`
}

// Probe configures the connectivity probe.
type Probe struct {
	URL      string        `yaml:"url"` // пусто - health endpoint сервера
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DefaultClient returns the built-in client settings.
func DefaultClient() Client {
	cfg := Client{
		ServerURL: "http://localhost:8080",
		DBPath:    "fieldkeeper.db",
		Log:       defaultLog(),
		Sync: Sync{
			SettleDelay:      time.Second,
			AutoSyncInterval: time.Minute,
			RetryBudget:      3,
		},
		Probe: Probe{
			Interval: 15 * time.Second,
			Timeout:  3 * time.Second,
		},
	}
	// результат команды идет в stdout, служебные логи только при проблемах
	cfg.Log.Level = "warn"
	return cfg
}

// LoadClient registers the client flags on fs, parses args and resolves the
// final configuration. Positional arguments stay available through fs.Args.
func LoadClient(fs *flag.FlagSet, args []string, lookup LookupEnv) (*Client, error) {
	cfg := DefaultClient()

	path := fs.String("config", "", "path to YAML config file (env "+EnvPrefix+"CONFIG)")
	b := &flagBinder{fs: fs}
	b.string("server", "server URL (default "+cfg.ServerURL+")", &cfg.ServerURL)
	b.string("db", "path to local database (default "+cfg.DBPath+")", &cfg.DBPath)
	b.string("log-level", "log level: debug, info, warn, error", &cfg.Log.Level)
	b.string("log-format", "log format: text or json", &cfg.Log.Format)
	b.string("log-file", "write logs to a rotated file instead of stderr", &cfg.Log.File)
	b.string("metrics-addr", "serve /metrics on this address in watch mode", &cfg.MetricsAddr)
	b.duration("settle-delay", "wait after reconnect before draining (default 1s)", &cfg.Sync.SettleDelay)
	b.duration("auto-sync", "periodic sync interval in watch mode, 0 disables (default 1m)", &cfg.Sync.AutoSyncInterval)
	b.duration("handler-timeout", "per-action timeout, 0 disables", &cfg.Sync.HandlerTimeout)
	b.int("retry-budget", "attempts per action before it is marked failed (default 3)", &cfg.Sync.RetryBudget)
	b.string("probe-url", "connectivity probe URL (default server health endpoint)", &cfg.Probe.URL)
	b.duration("probe-interval", "connectivity probe interval (default 15s)", &cfg.Probe.Interval)

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

	if cfg.Probe.URL == "" {
		cfg.Probe.URL = strings.TrimRight(cfg.ServerURL, "/") + "/api/v1/health"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) applyEnv(lookup LookupEnv) error {
	setString(lookup, "SERVER_URL", &c.ServerURL)
	setString(lookup, "DB_PATH", &c.DBPath)
	setString(lookup, "METRICS_ADDR", &c.MetricsAddr)
	setString(lookup, "PROBE_URL", &c.Probe.URL)
	if err := c.Log.applyEnv(lookup); err != nil {
		return err
	}
	for key, dst := range map[string]*time.Duration{
		"SETTLE_DELAY":       &c.Sync.SettleDelay,
		"AUTO_SYNC_INTERVAL": &c.Sync.AutoSyncInterval,
		"HANDLER_TIMEOUT":    &c.Sync.HandlerTimeout,
		"PROBE_INTERVAL":     &c.Probe.Interval,
		"PROBE_TIMEOUT":      &c.Probe.Timeout,
	} {
		if err := setDuration(lookup, key, dst); err != nil {
			return err
		}
	}
	return setInt(lookup, "RETRY_BUDGET", &c.Sync.RetryBudget)
}

// Validate checks the resolved settings.
func (c *Client) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server url %q", ErrInvalidConfig, c.ServerURL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db path is required", ErrInvalidConfig)
	}
	if c.Sync.RetryBudget < 1 {
		return fmt.Errorf("%w: retry budget must be at least 1", ErrInvalidConfig)
	}
	for kind, n := range c.Sync.RetryBudgets {
		if !models.Kind(kind).Valid() {
			return fmt.Errorf("%w: retry_budgets: %w: %s", ErrInvalidConfig, models.ErrUnknownKind, kind)
		}
		if n < 1 {
			return fmt.Errorf("%w: retry_budgets.%s must be at least 1", ErrInvalidConfig, kind)
		}
	}
	if c.Sync.HandlerTimeout < 0 || c.Sync.AutoSyncInterval < 0 {
		return fmt.Errorf("%w: sync durations must not be negative", ErrInvalidConfig)
	}
	if c.Probe.Interval <= 0 || c.Probe.Timeout <= 0 {
		return fmt.Errorf("%w: probe interval and timeout must be positive", ErrInvalidConfig)
	}
	return c.Log.validate()
}

// KindBudgets converts RetryBudgets to the queue form. Call after Validate.
func (c *Client) KindBudgets() map[models.Kind]int {
	if len(c.Sync.RetryBudgets) == 0 {
		return nil
	}
	out := make(map[models.Kind]int, len(c.Sync.RetryBudgets))
	for k, n := range c.Sync.RetryBudgets {
		out[models.Kind(k)] = n
	}
	return out
}
