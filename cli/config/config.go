package config

import (
	"fmt"
	"time"

	"github.com/pithecene-io/lumen/header"
	"github.com/pithecene-io/lumen/inflate"
	"github.com/pithecene-io/lumen/log"
	"github.com/pithecene-io/lumen/types"
)

// DefaultFile is the config file name looked up when --config is not given.
const DefaultFile = "lumen.yaml"

// Config represents a lumen.yaml configuration file.
// CLI flags always override config values.
type Config struct {
	Limits  LimitsConfig  `yaml:"limits"`
	Inflate InflateConfig `yaml:"inflate"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Notify  NotifyConfig  `yaml:"notify"`
}

// LimitsConfig bounds accepted image dimensions. Zero means the container
// maximum (2^31-1).
type LimitsConfig struct {
	MaxWidth  uint32 `yaml:"max_width"`
	MaxHeight uint32 `yaml:"max_height"`
}

// InflateConfig tunes decompression buffer sizing.
type InflateConfig struct {
	Headroom    int `yaml:"headroom"`
	MaxAttempts int `yaml:"max_attempts"`
}

// LogConfig holds logging defaults.
type LogConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig holds storage defaults. An empty Backend disables
// persistence.
type StorageConfig struct {
	Dataset     string `yaml:"dataset"`
	Source      string `yaml:"source"`
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

// NotifyConfig configures decode completion notifications. Each adapter
// is enabled by setting its URL. Notifications require storage.
type NotifyConfig struct {
	WebhookURL     string            `yaml:"webhook_url"`
	WebhookHeaders map[string]string `yaml:"webhook_headers"`
	RedisURL       string            `yaml:"redis_url"`
	RedisChannel   string            `yaml:"redis_channel"`
	RedisList      string            `yaml:"redis_list"`
	RedisListMax   int64             `yaml:"redis_list_max"`
	Retries        int               `yaml:"retries"`
	Timeout        time.Duration     `yaml:"timeout"`
}

// Enabled reports whether any adapter is configured.
func (n NotifyConfig) Enabled() bool {
	return n.WebhookURL != "" || n.RedisURL != ""
}

// Storage backends.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{MaxWidth: 16384, MaxHeight: 16384},
		Inflate: InflateConfig{
			Headroom:    inflate.DefaultHeadroom,
			MaxAttempts: inflate.DefaultMaxAttempts,
		},
		Log: LogConfig{Level: "info"},
		Storage: StorageConfig{
			Dataset: "lumen",
			Source:  "local",
			Backend: BackendFS,
			Path:    "./out",
		},
		Notify: NotifyConfig{Retries: 3},
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Limits.MaxWidth > types.MaxDimension {
		return fmt.Errorf("limits.max_width must be <= %d, got %d", types.MaxDimension, c.Limits.MaxWidth)
	}
	if c.Limits.MaxHeight > types.MaxDimension {
		return fmt.Errorf("limits.max_height must be <= %d, got %d", types.MaxDimension, c.Limits.MaxHeight)
	}
	if c.Inflate.Headroom < 0 {
		return fmt.Errorf("inflate.headroom must be >= 0, got %d", c.Inflate.Headroom)
	}
	if c.Inflate.MaxAttempts < 0 {
		return fmt.Errorf("inflate.max_attempts must be >= 0, got %d", c.Inflate.MaxAttempts)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Storage.Backend {
	case "", BackendFS, BackendS3:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendFS, BackendS3, c.Storage.Backend)
	}
	if c.Notify.Retries < 0 {
		return fmt.Errorf("notify.retries must be >= 0, got %d", c.Notify.Retries)
	}
	if c.Notify.Timeout < 0 {
		return fmt.Errorf("notify.timeout must be >= 0, got %s", c.Notify.Timeout)
	}
	if c.Notify.RedisListMax < 0 {
		return fmt.Errorf("notify.redis_list_max must be >= 0, got %d", c.Notify.RedisListMax)
	}
	return nil
}

// HeaderLimits converts the limits section for the header validator.
func (c *Config) HeaderLimits() header.Limits {
	return header.Limits{MaxWidth: c.Limits.MaxWidth, MaxHeight: c.Limits.MaxHeight}
}

// InflateOptions converts the inflate section for inflate.Run.
func (c *Config) InflateOptions() inflate.Options {
	return inflate.Options{Headroom: c.Inflate.Headroom, MaxAttempts: c.Inflate.MaxAttempts}
}
