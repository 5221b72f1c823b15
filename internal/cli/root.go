// Package cli provides the command-line interface for prettylog.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/prettylog/internal/cli/commands"
	"github.com/ccollicutt/prettylog/pkg/pipeline"
)

// Execute runs the root command and returns the exit code.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCommand()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, pipeline.ErrOutput), errors.Is(err, context.Canceled):
		// already logged by the driver, or the user asked us to stop
	default:
		// SilenceErrors prevents Cobra from printing this
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return commands.ExitCode(err)
}

// NewRootCommand creates the root cobra command, which runs the filter.
func NewRootCommand() *cobra.Command {
	opts := &commands.FilterOptions{}

	rootCmd := &cobra.Command{
		Use:   "prettylog [file|glob|-]...",
		Short: "Pretty-print JSON log lines",
		Long: `prettylog turns newline-delimited JSON logs into aligned, colored lines.

Each JSON object becomes one line:

  <time> <SEVERITY> <request id> <message> key=value ...

Lines that are not JSON objects are printed unchanged. With no arguments,
standard input is read; "-" names standard input among files.

Exit codes:
  0 - End of input reached
  1 - Output could not be written
  2 - Configuration or usage error`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunFilter(cmd, args, opts)
		},
	}
	commands.AddFilterFlags(rootCmd, opts)

	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
