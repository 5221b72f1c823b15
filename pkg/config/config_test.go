package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/prettylog/pkg/resolve"
)

func TestLoad_ValidYAML(t *testing.T) {
	content := `
color: never
timezone: utc
newline_marker: " | "
request_id_placeholder: "none"
log_level: debug
aliases:
  message:
    - text
    - msg
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Color != ColorNever {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorNever)
	}
	if cfg.Timezone != TimezoneUTC {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, TimezoneUTC)
	}
	if cfg.NewlineMarker != " | " {
		t.Errorf("NewlineMarker = %q, want %q", cfg.NewlineMarker, " | ")
	}
	if cfg.RequestIDPlaceholder != "none" {
		t.Errorf("RequestIDPlaceholder = %q, want %q", cfg.RequestIDPlaceholder, "none")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if got := strings.Join(cfg.Aliases.Message, ","); got != "text,msg" {
		t.Errorf("Aliases.Message = %q, want %q", got, "text,msg")
	}
}

func TestLoad_ValidTOML(t *testing.T) {
	content := `
color = "always"
timezone = "local"

[aliases]
request_id = ["corr_id"]
`
	path := writeTempFile(t, "config.toml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Color != ColorAlways {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorAlways)
	}
	if cfg.Timezone != TimezoneLocal {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, TimezoneLocal)
	}
	if len(cfg.Aliases.RequestID) != 1 || cfg.Aliases.RequestID[0] != "corr_id" {
		t.Errorf("Aliases.RequestID = %v, want [corr_id]", cfg.Aliases.RequestID)
	}
	// unset values are defaulted
	if cfg.NewlineMarker != `\n` {
		t.Errorf("NewlineMarker = %q, want default", cfg.NewlineMarker)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_DefaultPathMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Color != ColorAuto || cfg.Timezone != TimezoneLocal {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_NoHomeDirectory(t *testing.T) {
	t.Setenv("HOME", "")
	t.Setenv(EnvTimezone, "utc")

	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("Color = %q, want default %q", cfg.Color, ColorAuto)
	}
	// environment overrides still apply
	if cfg.Timezone != TimezoneUTC {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, TimezoneUTC)
	}
}

func TestLoad_NoHomeDirectoryExplicitTilde(t *testing.T) {
	t.Setenv("HOME", "")

	_, err := Load(context.Background(), "~/prettylog.yaml")
	if err == nil {
		t.Error("Load() expected error for explicit path under an unknown home")
	}
}

func TestLoad_DefaultPathPresent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "prettylog")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("timezone: utc\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timezone != TimezoneUTC {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, TimezoneUTC)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "invalid.yaml", `invalid: yaml: content: [`)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeTempFile(t, "invalid.toml", `color = `)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid TOML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvColor, "NEVER")
	t.Setenv(EnvTimezone, "utc")
	t.Setenv(EnvLogLevel, "info")

	path := writeTempFile(t, "config.yaml", "color: always\ntimezone: local\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Color != ColorNever {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorNever)
	}
	if cfg.Timezone != TimezoneUTC {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, TimezoneUTC)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	t.Setenv(EnvColor, "sometimes")

	path := writeTempFile(t, "config.yaml", "color: always\n")
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid PRETTYLOG_COLOR")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty values filled", func(c *Config) { *c = Config{} }, ""},
		{"bad color", func(c *Config) { c.Color = "rainbow" }, "color"},
		{"bad timezone", func(c *Config) { c.Timezone = "mars" }, "timezone"},
		{"multiline marker", func(c *Config) { c.NewlineMarker = "a\nb" }, "newline_marker"},
		{"multiline placeholder", func(c *Config) { c.RequestIDPlaceholder = "\r" }, "request_id_placeholder"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"empty alias", func(c *Config) { c.Aliases.Severity = []string{"level", ""} }, "aliases.severity[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := &Config{}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := DefaultConfig()
	if cfg.Color != want.Color || cfg.Timezone != want.Timezone ||
		cfg.NewlineMarker != want.NewlineMarker ||
		cfg.RequestIDPlaceholder != want.RequestIDPlaceholder ||
		cfg.LogLevel != want.LogLevel {
		t.Errorf("Validate() = %+v, want %+v", cfg, want)
	}
}

func TestAliasConfig_Table(t *testing.T) {
	aliases := AliasConfig{Message: []string{"text"}}
	table := aliases.Table()
	defaults := resolve.DefaultAliases()

	if got := table[resolve.Message]; len(got) != 1 || got[0] != "text" {
		t.Errorf("Message aliases = %v, want [text]", got)
	}
	for _, slot := range []resolve.Slot{resolve.Time, resolve.Severity, resolve.RequestID} {
		if strings.Join(table[slot], ",") != strings.Join(defaults[slot], ",") {
			t.Errorf("%s aliases = %v, want defaults %v", slot, table[slot], defaults[slot])
		}
	}

	// the table must not share backing storage with the config
	table[resolve.Message][0] = "changed"
	if aliases.Message[0] != "text" {
		t.Error("Table() aliased the config slice")
	}
}

func TestTimezone_Location(t *testing.T) {
	if TimezoneUTC.Location() != time.UTC {
		t.Error("utc should map to time.UTC")
	}
	if TimezoneLocal.Location() != time.Local {
		t.Error("local should map to time.Local")
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
