package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all host configuration.
type Config struct {
	Server    ServerConfig
	Panels    PanelConfig
	Data      DataConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// PanelConfig holds panel surface configuration.
type PanelConfig struct {
	ManifestPath string        `envconfig:"PANEL_MANIFEST" default:"panels.yaml"`
	AssetRoot    string        `envconfig:"PANEL_ASSET_ROOT" default:"./assets"`
	StateDir     string        `envconfig:"PANEL_STATE_DIR" default:"/tmp/panelhost-state"`
	ReplyTimeout time.Duration `envconfig:"PANEL_REPLY_TIMEOUT" default:"5s"`
}

// DataConfig holds the getData source configuration.
type DataConfig struct {
	UpstreamURL string        `envconfig:"DATA_UPSTREAM_URL" default:""`
	Timeout     time.Duration `envconfig:"DATA_TIMEOUT" default:"10s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Panels: PanelConfig{
			ManifestPath: "panels.yaml",
			AssetRoot:    "./assets",
			StateDir:     "/tmp/panelhost-state",
			ReplyTimeout: 5 * time.Second,
		},
		Data: DataConfig{
			Timeout: 10 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
