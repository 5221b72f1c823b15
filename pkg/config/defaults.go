package config

import (
	"os"
	"strings"

	"github.com/ccollicutt/prettylog/pkg/output"
)

// Default values for configuration.
const (
	DefaultConfigPath = "~/.config/prettylog/config.yaml"
	DefaultLogLevel   = "warn"
)

// Environment variable names.
const (
	EnvColor    = "PRETTYLOG_COLOR"
	EnvTimezone = "PRETTYLOG_TIMEZONE"
	EnvLogLevel = "PRETTYLOG_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Color:                ColorAuto,
		Timezone:             TimezoneLocal,
		NewlineMarker:        output.DefaultNewlineMarker,
		RequestIDPlaceholder: output.DefaultRequestIDPlaceholder,
		LogLevel:             DefaultLogLevel,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := strings.TrimSpace(os.Getenv(EnvColor)); v != "" {
		c.Color = ColorMode(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimezone)); v != "" {
		c.Timezone = Timezone(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}
