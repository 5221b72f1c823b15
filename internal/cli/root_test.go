package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if !strings.HasPrefix(cmd.Use, "prettylog") {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	for _, flag := range []string{"config", "color", "utc", "log-level", "newline-marker"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}

	subcommands := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, name := range []string{"validate", "version"} {
		if !subcommands[name] {
			t.Errorf("Missing subcommand: %s", name)
		}
	}
}

func TestRootCommand_FiltersStdin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--utc", "--color", "never"})
	cmd.SetIn(strings.NewReader(`{"time":"2024-01-01T00:00:00.5Z","level":"debug","message":"ready","port":8080}` + "\n"))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "2024-01-01 00:00:00.500Z DEBUG   -        ready port=8080\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRootCommand_Version(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"version"})
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "prettylog ") {
		t.Errorf("version output = %q", out.String())
	}
}
