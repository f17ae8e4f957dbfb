package main

import (
	"flag"
	"fmt"
	"os"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	ShowVersion bool
	Validate    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("HISTWATCH_CONFIG", "configs/histwatch.yaml"),
		"Path to configuration file (env: HISTWATCH_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("HISTWATCH_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: HISTWATCH_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("HISTWATCH_LOG_FORMAT", "json"),
		"Log format: json, text (env: HISTWATCH_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
