// Package config loads client settings from ~/.taskline/config.toml with
// TASKLINE_* environment overrides. Precedence: defaults, then file,
// then environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Cache    CacheConfig    `toml:"cache"`
	Timeline TimelineConfig `toml:"timeline"`
	Log      LogConfig      `toml:"log"`
}

type ServerConfig struct {
	URL        string `toml:"url"`
	Token      string `toml:"token"`
	TimeoutSec int    `toml:"timeout_sec"`
	MaxRetries int    `toml:"max_retries"`
}

type CacheConfig struct {
	Path string `toml:"path"`
}

type TimelineConfig struct {
	DefaultZoom string `toml:"default_zoom"` // week | month
	BufferDays  int    `toml:"buffer_days"`
}

type LogConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
}

// Default returns the stock configuration. The cache path is resolved
// lazily in Load because it depends on the home directory.
func Default() Config {
	return Config{
		Server:   ServerConfig{TimeoutSec: 10, MaxRetries: 2},
		Timeline: TimelineConfig{DefaultZoom: "week", BufferDays: 1},
		Log:      LogConfig{Level: "warn"},
	}
}

// Load reads the config file if present, applies environment overrides,
// and validates the result. A missing file is not an error; a malformed
// one is.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("TASKLINE_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".taskline", "config.toml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults + env only
	default:
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(&cfg)

	if cfg.Cache.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.Cache.Path = filepath.Join(home, ".taskline", "cache.db")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TASKLINE_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("TASKLINE_TOKEN"); v != "" {
		cfg.Server.Token = v
	}
	if v := os.Getenv("TASKLINE_CACHE"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("TASKLINE_ZOOM"); v != "" {
		cfg.Timeline.DefaultZoom = v
	}
	if v := os.Getenv("TASKLINE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TASKLINE_BUFFER_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Timeline.BufferDays = n
		}
	}
}

func (c Config) validate() error {
	switch c.Timeline.DefaultZoom {
	case "week", "month":
	default:
		return fmt.Errorf("timeline.default_zoom must be week or month, got %q", c.Timeline.DefaultZoom)
	}
	if c.Timeline.BufferDays < 0 {
		return fmt.Errorf("timeline.buffer_days must be >= 0, got %d", c.Timeline.BufferDays)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("server.timeout_sec must be positive, got %d", c.Server.TimeoutSec)
	}
	return nil
}
