package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/prettylog/internal/logging"
	"github.com/ccollicutt/prettylog/pkg/config"
	"github.com/ccollicutt/prettylog/pkg/output"
	"github.com/ccollicutt/prettylog/pkg/parser"
	"github.com/ccollicutt/prettylog/pkg/pipeline"
	"github.com/ccollicutt/prettylog/pkg/resolve"
	"github.com/ccollicutt/prettylog/pkg/timefmt"
)

// FilterOptions holds command-line options for the filter.
type FilterOptions struct {
	ConfigPath    string
	Color         string
	UTC           bool
	LogLevel      string
	NewlineMarker string
}

// AddFilterFlags registers the filter flags on cmd.
func AddFilterFlags(cmd *cobra.Command, opts *FilterOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default "+config.DefaultConfigPath+" if present)")
	cmd.Flags().StringVar(&opts.Color, "color", string(config.ColorAuto), "When to color output (auto|always|never)")
	cmd.Flags().BoolVar(&opts.UTC, "utc", false, "Show timestamps in UTC instead of local time")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "Diagnostic level on stderr (debug|info|warn|error|disabled)")
	cmd.Flags().StringVar(&opts.NewlineMarker, "newline-marker", output.DefaultNewlineMarker, "Text that replaces line breaks inside values")
}

// RunFilter renders every input line to the command's output. With no
// arguments it reads standard input.
func RunFilter(cmd *cobra.Command, args []string, opts *FilterOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cmd, cfg, opts)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	logger, err := logging.New(stderr, cfg.LogLevel, colorEnabled(config.ColorAuto, stderr))
	if err != nil {
		return err
	}

	files := []string{parser.StdinName}
	if len(args) > 0 {
		files, err = parser.ExpandGlobs(args)
		if err != nil {
			return fmt.Errorf("expanding inputs: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	color := colorEnabled(cfg.Color, out)
	logger.Debug().
		Strs("inputs", files).
		Str("timezone", string(cfg.Timezone)).
		Bool("color", color).
		Msg("starting")

	source := parser.NewFileSource(files).WithStdin(cmd.InOrStdin())
	driver := pipeline.New(source, out,
		pipeline.WithResolver(resolve.New(cfg.Aliases.Table())),
		pipeline.WithNormalizer(timefmt.New(cfg.Timezone.Location())),
		pipeline.WithRenderer(output.NewTextRenderer(output.Options{
			Color:                color,
			RequestIDPlaceholder: cfg.RequestIDPlaceholder,
			NewlineMarker:        cfg.NewlineMarker,
		})),
		pipeline.WithLogger(logger),
	)

	return runDriver(ctx, driver, source, logger)
}

// runDriver runs the driver until it finishes or ctx is canceled. A read
// blocked on a quiet stream cannot observe ctx, so cancellation returns
// without waiting for it.
func runDriver(ctx context.Context, driver *pipeline.Driver, source parser.LineSource, logger zerolog.Logger) error {
	done := make(chan error, 1)
	go func() {
		err := driver.Run(ctx)
		if cerr := source.Close(); cerr != nil {
			logger.Debug().Err(cerr).Msg("closing input")
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		logger.Debug().Msg("interrupted")
		return ctx.Err()
	}
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *FilterOptions) {
	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Color = config.ColorMode(strings.ToLower(opts.Color))
	}
	if flags.Changed("utc") {
		cfg.Timezone = config.TimezoneLocal
		if opts.UTC {
			cfg.Timezone = config.TimezoneUTC
		}
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if flags.Changed("newline-marker") {
		cfg.NewlineMarker = opts.NewlineMarker
	}
}

// colorEnabled decides whether w gets colored output. Auto mode requires
// a terminal and honors NO_COLOR.
func colorEnabled(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
