// Package config loads the catalog server settings: built-in defaults, then
// an optional YAML file, then environment variables, then validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port" validate:"required,numeric"`

	Wiki   WikiConfig   `yaml:"wiki"`
	Cache  CacheConfig  `yaml:"cache"`
	Search SearchConfig `yaml:"search"`

	MetricsEnabled bool   `yaml:"metrics_enabled"`
	MetricsToken   string `yaml:"metrics_token" validate:"required_if=MetricsEnabled true"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

type WikiConfig struct {
	BaseURL   string        `yaml:"base_url" validate:"required,http_url"`
	UserAgent string        `yaml:"user_agent" validate:"required"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
}

type CacheConfig struct {
	Backend  string        `yaml:"backend" validate:"oneof=ristretto badger"`
	TTL      time.Duration `yaml:"ttl" validate:"gt=0"`
	MaxItems int64         `yaml:"max_items" validate:"gt=0"`
	// BadgerPath is only read by the badger backend. Empty keeps badger in memory.
	BadgerPath string `yaml:"badger_path"`
}

type SearchConfig struct {
	RatePerMinute int `yaml:"rate_per_minute" validate:"gte=0"`
	Burst         int `yaml:"burst" validate:"gte=0"`
}

func Default() Config {
	return Config{
		Port: "3002",
		Wiki: WikiConfig{
			BaseURL:   "https://en.wikipedia.org",
			UserAgent: "ParasiteAtlas/1.0 (catalog service)",
			Timeout:   8 * time.Second,
		},
		Cache: CacheConfig{
			Backend:  "ristretto",
			TTL:      time.Hour,
			MaxItems: 1000,
		},
		Search: SearchConfig{
			RatePerMinute: 60,
			Burst:         10,
		},
		LogLevel: "info",
	}
}

// Load returns the effective configuration. path may be empty.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str("PORT", &cfg.Port)
	str("WIKI_BASE_URL", &cfg.Wiki.BaseURL)
	str("WIKI_USER_AGENT", &cfg.Wiki.UserAgent)
	dur("UPSTREAM_TIMEOUT", &cfg.Wiki.Timeout)
	str("CACHE_BACKEND", &cfg.Cache.Backend)
	dur("CACHE_TTL", &cfg.Cache.TTL)
	str("BADGER_PATH", &cfg.Cache.BadgerPath)
	num("SEARCH_RATE_LIMIT", &cfg.Search.RatePerMinute)
	num("SEARCH_RATE_BURST", &cfg.Search.Burst)
	flag("METRICS_ENABLED", &cfg.MetricsEnabled)
	str("METRICS_TOKEN", &cfg.MetricsToken)
	str("LOG_LEVEL", &cfg.LogLevel)

	if v, ok := lookup("CACHE_MAX_ITEMS"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("CACHE_MAX_ITEMS: %w", err))
		} else {
			cfg.Cache.MaxItems = n
		}
	}

	return errors.Join(errs...)
}
