package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/YuhanLiin/heapless/errors"
)

// Config holds the full histwatch configuration.
type Config struct {
	NATS    NATSConfig    `yaml:"nats"`
	Window  WindowConfig  `yaml:"window"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// NATSConfig configures the sample source.
type NATSConfig struct {
	URL      string   `yaml:"url"`
	Subjects []string `yaml:"subjects"`
}

// WindowConfig configures the per-subject history windows.
type WindowConfig struct {
	// Size is the number of most recent samples retained per subject.
	Size int `yaml:"size"`
	// ReportInterval is how often rolling aggregates are logged.
	ReportInterval time.Duration `yaml:"report_interval"`
}

// MetricsConfig configures the Prometheus exposition server.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

// DefaultConfig returns a configuration with sensible defaults applied.
func DefaultConfig() Config {
	return Config{
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
		Window: WindowConfig{
			Size:           64,
			ReportInterval: 10 * time.Second,
		},
		Metrics: MetricsConfig{
			Port: 9090,
			Path: "/metrics",
		},
	}
}

// LoadConfig reads and validates a yaml configuration file. Fields not
// present in the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WrapFatal(err, "Config", "LoadConfig", "read config file")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.WrapFatal(err, "Config", "LoadConfig", "parse yaml")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the configuration for missing or nonsensical values.
func (c Config) Validate() error {
	if c.NATS.URL == "" {
		return errors.WrapFatal(errors.ErrMissingConfig, "Config", "Validate", "nats.url is required")
	}
	if len(c.NATS.Subjects) == 0 {
		return errors.WrapFatal(errors.ErrMissingConfig, "Config", "Validate", "at least one nats.subjects entry is required")
	}
	for _, subject := range c.NATS.Subjects {
		if subject == "" {
			return errors.WrapFatal(errors.ErrInvalidConfig, "Config", "Validate", "empty nats.subjects entry")
		}
	}
	if c.Window.Size <= 0 {
		return errors.WrapFatal(
			fmt.Errorf("window.size must be positive, got %d: %w", c.Window.Size, errors.ErrInvalidConfig),
			"Config", "Validate", "validate window size")
	}
	if c.Window.ReportInterval <= 0 {
		return errors.WrapFatal(errors.ErrInvalidConfig, "Config", "Validate", "window.report_interval must be positive")
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return errors.WrapFatal(errors.ErrInvalidConfig, "Config", "Validate", "metrics.port out of range")
	}
	return nil
}
