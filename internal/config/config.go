package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foracure/backend/pkg"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const minSessionSecretLen = 32

var ErrSessionSecretTooShort = fmt.Errorf("session secret must be at least %d characters", minSessionSecretLen)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// cors
	AllowedOrigins []string `toml:"allowed_origins"`

	// addresses or CIDR ranges of the reverse proxies whose forwarding headers are
	// believed; empty means the peer address is always the client address
	TrustedProxies []string `toml:"trusted_proxies"`

	// outbound mail
	MailFrom    string        `toml:"mail_from"`
	MailTimeout time.Duration `toml:"mail_timeout"`

	// login rate limiting: "memory" or "redis"
	RateLimitBackend       string        `toml:"rate_limit_backend"`
	LoginRateLimitAttempts int           `toml:"login_rate_limit_attempts"`
	LoginRateLimitWindow   time.Duration `toml:"login_rate_limit_window"`
	RedisHost              string        `toml:"redis_host"`
	RedisPort              string        `toml:"redis_port"`

	// news
	NewsCacheTTL    time.Duration `toml:"news_cache_ttl"`
	NewsCacheSizeMB int           `toml:"news_cache_size_mb"`
	AutoMigrate     bool          `toml:"auto_migrate"`

	Secrets Secrets `toml:"-"`
}

// Secrets are never kept in the config file, only in the environment (or .env)
type Secrets struct {
	AdminUsername     string `env:"ADMIN_USERNAME, required"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH, required"`
	SessionSecret     string `env:"SESSION_SECRET, required"`
	DatabaseURL       string `env:"DATABASE_URL, required"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	InboxAddress string `env:"EMAIL_USER"`

	RedisPassword    string `env:"REDIS_PASS"`
	SentryDSN        string `env:"SENTRY_DSN"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED"`

	// deploy overrides of the toml values
	Port           int      `env:"PORT"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("env [%s] missing in config", env)
	}
	return cfg, nil
}

// Load reads the toml config for the given env and completes it with the secrets
// found by the lookuper. A nil lookuper means the process environment.
func Load(ctx context.Context, env, path string, lookuper envconfig.Lookuper) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.Environment = strings.ToLower(env)

	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg.Secrets,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Secrets.Port > 0 {
		c.Port = c.Secrets.Port
	}
	if c.Port == 0 {
		c.Port = 5000
	}
	if len(c.Secrets.AllowedOrigins) > 0 {
		c.AllowedOrigins = c.Secrets.AllowedOrigins
	}
	if len(c.Secrets.TrustedProxies) > 0 {
		c.TrustedProxies = c.Secrets.TrustedProxies
	}
	if c.MailTimeout == 0 {
		c.MailTimeout = 10 * time.Second
	}
	if c.RateLimitBackend == "" {
		c.RateLimitBackend = "memory"
	}
	if c.LoginRateLimitAttempts == 0 {
		c.LoginRateLimitAttempts = 10
	}
	if c.LoginRateLimitWindow == 0 {
		c.LoginRateLimitWindow = 15 * time.Minute
	}
	if c.NewsCacheSizeMB == 0 {
		c.NewsCacheSizeMB = 16
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "9091"
	}
}

func (c *Config) validate() error {
	if len(c.Secrets.SessionSecret) < minSessionSecretLen {
		return ErrSessionSecretTooShort
	}
	if _, err := pkg.ParseTrustedProxies(c.TrustedProxies); err != nil {
		return err
	}
	switch c.RateLimitBackend {
	case "memory":
	case "redis":
		if c.RedisHost == "" || c.RedisPort == "" {
			return errors.New("redis rate limit backend needs redis_host and redis_port")
		}
	default:
		return fmt.Errorf("unknown rate limit backend: %s", c.RateLimitBackend)
	}
	return nil
}
