// Package config provides configuration loading and validation for prettylog.
package config

import (
	"time"

	"github.com/ccollicutt/prettylog/pkg/resolve"
)

// Config is the root configuration structure loaded from YAML or TOML.
type Config struct {
	// Color selects when severity coloring is emitted.
	Color ColorMode `yaml:"color" toml:"color"`

	// Timezone selects the display zone for timestamps.
	Timezone Timezone `yaml:"timezone" toml:"timezone"`

	// NewlineMarker replaces line breaks inside rendered values.
	NewlineMarker string `yaml:"newline_marker" toml:"newline_marker"`

	// RequestIDPlaceholder is shown when a record has no request id.
	RequestIDPlaceholder string `yaml:"request_id_placeholder" toml:"request_id_placeholder"`

	// LogLevel is the level of diagnostics written to stderr.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Aliases overrides the key lists probed for each semantic field.
	Aliases AliasConfig `yaml:"aliases" toml:"aliases"`
}

// ColorMode determines whether output is colored.
type ColorMode string

const (
	// ColorAuto colors output when stdout is a terminal and NO_COLOR is unset.
	ColorAuto ColorMode = "auto"

	// ColorAlways always colors output.
	ColorAlways ColorMode = "always"

	// ColorNever never colors output.
	ColorNever ColorMode = "never"
)

// Timezone determines the display zone.
type Timezone string

const (
	TimezoneLocal Timezone = "local"
	TimezoneUTC   Timezone = "utc"
)

// Location returns the time.Location for the zone.
func (tz Timezone) Location() *time.Location {
	if tz == TimezoneUTC {
		return time.UTC
	}
	return time.Local
}

// AliasConfig lists alias keys per semantic field. A non-empty list
// replaces the built-in list for that field.
type AliasConfig struct {
	Time      []string `yaml:"time,omitempty" toml:"time,omitempty"`
	Severity  []string `yaml:"severity,omitempty" toml:"severity,omitempty"`
	RequestID []string `yaml:"request_id,omitempty" toml:"request_id,omitempty"`
	Message   []string `yaml:"message,omitempty" toml:"message,omitempty"`
}

// Table returns the effective alias table.
func (a AliasConfig) Table() resolve.Aliases {
	table := resolve.DefaultAliases()
	overrides := map[resolve.Slot][]string{
		resolve.Time:      a.Time,
		resolve.Severity:  a.Severity,
		resolve.RequestID: a.RequestID,
		resolve.Message:   a.Message,
	}
	for slot, keys := range overrides {
		if len(keys) > 0 {
			table[slot] = append([]string(nil), keys...)
		}
	}
	return table
}
