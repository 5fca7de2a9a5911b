// Package config provides the runtime configuration for the snack price
// service. Configuration is resolved once at startup in three layers:
// built-in defaults, an optional YAML file, then environment overrides.
// The resulting struct is passed down explicitly; nothing reads the
// environment after Load returns.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaojiwei520/snack-price-api/internal/infra/postgres"
)

// Config holds the full runtime configuration.
type Config struct {
	DB   postgres.Config `yaml:"db"`
	HTTP HTTPConfig      `yaml:"http"`
	Log  LogConfig       `yaml:"log"`
	Auth AuthConfig      `yaml:"auth"`
}

// HTTPConfig holds the listen address for HTTP transport mode.
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogConfig selects the slog handler. Level is one of debug, info, warn,
// error; Format is text or json.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuthConfig configures bearer-token auth on the HTTP transport. An empty
// secret disables auth entirely; stdio transport never authenticates.
type AuthConfig struct {
	Secret      string `yaml:"secret"`
	ExpiryHours int    `yaml:"expiry_hours"`
}

const (
	envKeyDBHost     = "DB_HOST"
	envKeyDBPort     = "DB_PORT"
	envKeyDBUser     = "DB_USER"
	envKeyDBPassword = "DB_PASSWORD"
	envKeyDBName     = "DB_NAME"
	envKeyDBSSLMode  = "DB_SSLMODE"

	envKeyHTTPHost = "HTTP_HOST"
	envKeyHTTPPort = "HTTP_PORT"

	envKeyLogLevel  = "LOG_LEVEL"
	envKeyLogFormat = "LOG_FORMAT"

	envKeyAuthSecret      = "AUTH_SECRET"
	envKeyAuthExpiryHours = "AUTH_TOKEN_EXPIRY"
)

// Default returns the built-in configuration defaults. The binary runs
// locally against a default PostgreSQL with no file and no env setup.
func Default() Config {
	return Config{
		DB: postgres.DefaultConfig(),
		HTTP: HTTPConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Auth: AuthConfig{
			ExpiryHours: 24,
		},
	}
}

// Load resolves the runtime configuration. path names an optional YAML file;
// pass "" to skip the file layer. Environment variables override both the
// defaults and the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyEnv overlays environment variables onto cfg. Numeric values that do
// not parse are configuration errors, reported at startup rather than as a
// misdirected connection later.
func applyEnv(cfg *Config) error {
	cfg.DB.Host = envOr(envKeyDBHost, cfg.DB.Host)
	cfg.DB.User = envOr(envKeyDBUser, cfg.DB.User)
	cfg.DB.Password = envOr(envKeyDBPassword, cfg.DB.Password)
	cfg.DB.Name = envOr(envKeyDBName, cfg.DB.Name)
	cfg.DB.SSLMode = envOr(envKeyDBSSLMode, cfg.DB.SSLMode)

	cfg.HTTP.Host = envOr(envKeyHTTPHost, cfg.HTTP.Host)

	cfg.Log.Level = envOr(envKeyLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOr(envKeyLogFormat, cfg.Log.Format)

	cfg.Auth.Secret = envOr(envKeyAuthSecret, cfg.Auth.Secret)

	for _, v := range []struct {
		key string
		dst *int
	}{
		{envKeyDBPort, &cfg.DB.Port},
		{envKeyHTTPPort, &cfg.HTTP.Port},
		{envKeyAuthExpiryHours, &cfg.Auth.ExpiryHours},
	} {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s = %q is not a number", v.key, raw)
		}
		*v.dst = n
	}

	return nil
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewLogger builds the slog logger described by c, writing to w. Unknown
// levels fall back to info and unknown formats to text.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
