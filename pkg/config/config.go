package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/prettylog/pkg/resolve"
)

// Load reads and validates a configuration file. An empty path means
// DefaultConfigPath, which may be absent, or unreachable when there is no
// home directory: the defaults are used then. An explicit path must
// exist. Files ending in .toml are read as TOML, anything else as YAML.
func Load(_ context.Context, path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg := DefaultConfig()

	resolved, data, found, err := readConfig(path, explicit)
	if err != nil {
		return nil, err
	}
	if found {
		if err := decode(resolved, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// readConfig reads the file at path. found is false when the default
// file does not exist or its location cannot be resolved.
func readConfig(path string, explicit bool) (resolved string, data []byte, found bool, err error) {
	resolved, err = expandPath(path)
	if err != nil {
		if !explicit {
			return "", nil, false, nil
		}
		return "", nil, false, fmt.Errorf("resolving config path: %w", err)
	}

	data, err = os.ReadFile(resolved) // #nosec G304 -- user-provided config path is expected
	switch {
	case err == nil:
		return resolved, data, true, nil
	case !explicit && errors.Is(err, os.ErrNotExist):
		return resolved, nil, false, nil
	default:
		return "", nil, false, fmt.Errorf("reading config file: %w", err)
	}
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks a configuration for errors and fills empty values with
// their defaults.
func Validate(cfg *Config) error {
	defaults := DefaultConfig()

	switch cfg.Color {
	case "":
		cfg.Color = defaults.Color
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color: invalid value %q (must be auto, always, or never)", cfg.Color)
	}

	switch cfg.Timezone {
	case "":
		cfg.Timezone = defaults.Timezone
	case TimezoneLocal, TimezoneUTC:
	default:
		return fmt.Errorf("timezone: invalid value %q (must be local or utc)", cfg.Timezone)
	}

	if cfg.NewlineMarker == "" {
		cfg.NewlineMarker = defaults.NewlineMarker
	}
	if strings.ContainsAny(cfg.NewlineMarker, "\r\n") {
		return errors.New("newline_marker: must not contain line breaks")
	}

	if cfg.RequestIDPlaceholder == "" {
		cfg.RequestIDPlaceholder = defaults.RequestIDPlaceholder
	}
	if strings.ContainsAny(cfg.RequestIDPlaceholder, "\r\n") {
		return errors.New("request_id_placeholder: must not contain line breaks")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	table := cfg.Aliases.Table()
	for _, slot := range resolve.Slots() {
		for i, key := range table[slot] {
			if key == "" {
				return fmt.Errorf("aliases.%s[%d]: key must not be empty", slot, i)
			}
		}
	}

	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
