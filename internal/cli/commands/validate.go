package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/prettylog/pkg/config"
	"github.com/ccollicutt/prettylog/pkg/resolve"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a prettylog configuration file without reading any logs.

Checks:
  - YAML or TOML syntax (by file extension)
  - color, timezone and log_level values
  - Alias lists (no empty keys)

Prints the effective settings and the alias table, and warns when a key
is listed for more than one field.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Color:          %s\n", cfg.Color)
	fmt.Fprintf(out, "  Timezone:       %s\n", cfg.Timezone)
	fmt.Fprintf(out, "  Newline marker: %q\n", cfg.NewlineMarker)
	fmt.Fprintf(out, "  No request id:  %q\n", cfg.RequestIDPlaceholder)
	fmt.Fprintf(out, "  Log level:      %s\n", cfg.LogLevel)

	table := cfg.Aliases.Table()
	fmt.Fprintf(out, "\nAliases (first match wins):\n")
	for _, slot := range resolve.Slots() {
		fmt.Fprintf(out, "  %-10s %s\n", slot, strings.Join(table[slot], ", "))
	}

	for _, w := range aliasOverlaps(table) {
		fmt.Fprintf(out, "\nWarning: %s\n", w)
	}

	return nil
}

// aliasOverlaps reports keys listed for more than one field. Such a key
// only ever fills the earliest field.
func aliasOverlaps(table resolve.Aliases) []string {
	owner := make(map[string]resolve.Slot)
	var warnings []string
	for _, slot := range resolve.Slots() {
		for _, key := range table[slot] {
			first, seen := owner[key]
			if !seen {
				owner[key] = slot
				continue
			}
			if first != slot {
				warnings = append(warnings, fmt.Sprintf("key %q is listed for %s and %s; it will only fill %s", key, first, slot, first))
			}
		}
	}
	return warnings
}
