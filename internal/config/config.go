// Package config loads service settings from defaults, an optional YAML file
// and the environment, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/govalues/money"
	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Dev      DevConfig      `mapstructure:"dev"`

	// CurrencyCode is the raw ISO 4217 code; Load parses it into Currency.
	CurrencyCode string         `mapstructure:"currency"`
	Currency     money.Currency `mapstructure:"-"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StorageConfig selects the record store backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig enables the view cache when URL is set.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type DevConfig struct {
	Seed bool `mapstructure:"seed"`
}

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("storage.backend", "")
	v.SetDefault("database.url", "")
	v.SetDefault("sqlite.path", "records.db")
	v.SetDefault("redis.url", "")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("currency", "USD")
	v.SetDefault("dev.seed", false)
}

// Load reads configuration. path may be empty, in which case only defaults and
// environment variables (HTTP_ADDR, DATABASE_URL, ...) apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	// DATABASE_URL alone is enough to select postgres.
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendMemory
		if cfg.Database.URL != "" {
			cfg.Storage.Backend = BackendPostgres
		}
	}
	cfg.CurrencyCode = strings.ToUpper(strings.TrimSpace(cfg.CurrencyCode))
	curr, err := money.ParseCurr(cfg.CurrencyCode)
	if err != nil {
		return Config{}, fmt.Errorf("config: currency %q: %w", cfg.CurrencyCode, err)
	}
	cfg.Currency = curr
	return cfg, cfg.Validate()
}

// Validate rejects combinations the service cannot start with.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite:
	case BackendPostgres:
		if c.Database.URL == "" {
			return errors.New("config: postgres backend requires database.url")
		}
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if c.Currency == money.XXX {
		return errors.New("config: currency is required")
	}
	if c.Cache.TTL < 0 {
		return errors.New("config: cache.ttl must not be negative")
	}
	return nil
}
