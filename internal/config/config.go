// internal/config/config.go
// Centralized configuration management
// Loads from .env, an optional config.yaml and environment variables with sensible defaults

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Matching    MatchingConfig `mapstructure:"matching"`
	Activity    ActivityConfig `mapstructure:"activity"`
	Log         LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig describes the member datastore connection.
// It is the only input to database.Manager; nothing reads connection settings from globals.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// MatchingConfig controls the match finder
type MatchingConfig struct {
	DefaultLimit int           `mapstructure:"default_limit"`
	MaxLimit     int           `mapstructure:"max_limit"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

type ActivityConfig struct {
	Retention   time.Duration `mapstructure:"retention"`
	CleanupHour int           `mapstructure:"cleanup_hour"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]interface{}{
	"environment":                "development",
	"server.port":                "8080",
	"server.read_timeout":        "15s",
	"server.write_timeout":       "15s",
	"server.idle_timeout":        "60s",
	"server.shutdown_timeout":    "30s",
	"database.url":               "",
	"database.max_open_conns":    25,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": "5m",
	"database.query_timeout":     "5s",
	"database.auto_migrate":      true,
	"redis.url":                  "",
	"matching.default_limit":     20,
	"matching.max_limit":         50,
	"matching.cache_ttl":         "2m",
	"activity.retention":         "2160h", // 90 days
	"activity.cleanup_hour":      3,
	"log.level":                  "info",
	"log.format":                 "json",
}

// Flat environment names accepted in addition to the dotted keys (DATABASE_URL, SERVER_PORT...).
var aliases = map[string]string{
	"server.port": "PORT",
	"environment": "ENVIRONMENT",
}

// Load reads configuration. It can be called again at runtime to pick up changes;
// callers decide what to do with the new value.
func Load() (*Config, error) {
	loadDotEnv()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range aliases {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv is best effort: a missing .env is the normal case in containers
func loadDotEnv() {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database URL is required")
	}

	if _, err := url.Parse(c.Database.URL); err != nil {
		return fmt.Errorf("invalid database URL: %w", err)
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database max open connections must be positive")
	}

	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database max idle connections must be between 0 and max open connections")
	}

	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database query timeout must be positive")
	}

	if c.Matching.MaxLimit < 1 {
		return fmt.Errorf("matching max limit must be positive")
	}

	if c.Matching.DefaultLimit < 1 || c.Matching.DefaultLimit > c.Matching.MaxLimit {
		return fmt.Errorf("matching default limit must be between 1 and %d", c.Matching.MaxLimit)
	}

	if c.Activity.CleanupHour < 0 || c.Activity.CleanupHour > 23 {
		return fmt.Errorf("activity cleanup hour must be between 0 and 23")
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// ConnectionInfo is the non-secret view of the database settings
type ConnectionInfo struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	SSLMode  string `json:"sslMode,omitempty"`
}

// Redacted describes the database target without the password
func (d DatabaseConfig) Redacted() ConnectionInfo {
	u, err := url.Parse(d.URL)
	if err != nil || u.Host == "" {
		return ConnectionInfo{}
	}

	info := ConnectionInfo{
		Host:     u.Hostname(),
		Port:     u.Port(),
		Database: strings.TrimPrefix(u.Path, "/"),
		SSLMode:  u.Query().Get("sslmode"),
	}
	if u.User != nil {
		info.User = u.User.Username()
	}
	if info.Port == "" {
		info.Port = "5432"
	}
	return info
}
