// Package pipeline drives raw input lines through decoding, field
// resolution, time normalization and rendering, one line at a time.
package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/prettylog/pkg/output"
	"github.com/ccollicutt/prettylog/pkg/parser"
	"github.com/ccollicutt/prettylog/pkg/record"
	"github.com/ccollicutt/prettylog/pkg/resolve"
	"github.com/ccollicutt/prettylog/pkg/timefmt"
)

// Stats counts what the driver has done so far.
type Stats struct {
	LinesRead   int
	Rendered    int
	Passthrough int
}

// Driver reads lines from a source and writes one output line per input line.
type Driver struct {
	source     parser.LineSource
	out        io.Writer
	resolver   *resolve.Resolver
	normalizer *timefmt.Normalizer
	renderer   output.Renderer
	logger     zerolog.Logger
	stats      Stats
}

// Option configures a Driver.
type Option func(*Driver)

// WithResolver sets the field resolver (default: built-in aliases).
func WithResolver(r *resolve.Resolver) Option {
	return func(d *Driver) {
		if r != nil {
			d.resolver = r
		}
	}
}

// WithNormalizer sets the time normalizer (default: local time).
func WithNormalizer(n *timefmt.Normalizer) Option {
	return func(d *Driver) {
		if n != nil {
			d.normalizer = n
		}
	}
}

// WithRenderer sets the line renderer (default: uncolored text).
func WithRenderer(r output.Renderer) Option {
	return func(d *Driver) {
		if r != nil {
			d.renderer = r
		}
	}
}

// WithLogger sets the diagnostic logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// New creates a Driver reading from source and writing to out.
func New(source parser.LineSource, out io.Writer, opts ...Option) *Driver {
	d := &Driver{
		source: source,
		out:    out,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.resolver == nil {
		d.resolver = resolve.New(resolve.DefaultAliases())
	}
	if d.normalizer == nil {
		d.normalizer = timefmt.New(time.Local)
	}
	if d.renderer == nil {
		d.renderer = output.NewTextRenderer(output.Options{})
	}
	return d
}

// Run processes lines until the source is exhausted. It returns nil at
// end of input, an *OutputError when a write fails, and any other source
// or context error unchanged.
func (d *Driver) Run(ctx context.Context) error {
	for {
		line, err := d.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			d.logger.Debug().
				Int("lines", d.stats.LinesRead).
				Int("rendered", d.stats.Rendered).
				Int("passthrough", d.stats.Passthrough).
				Msg("end of input")
			return nil
		}
		if err != nil {
			return err
		}

		d.stats.LinesRead++
		if err := d.write(line, d.Process(line.Content)); err != nil {
			d.logger.Error().Err(err).Str("source", line.Source).Int("line", line.LineNum).Msg("output failed")
			return err
		}
	}
}

// Process turns one raw line into its output text, without the newline.
// Lines that are not JSON objects come back unchanged.
func (d *Driver) Process(raw []byte) []byte {
	obj, err := record.Decode(raw)
	if err != nil {
		d.stats.Passthrough++
		d.logger.Debug().Err(err).Msg("passing line through")
		return raw
	}

	fields := d.resolver.Resolve(obj)
	var (
		timeValue record.Value
		present   bool
	)
	if fields.Time != nil {
		timeValue, present = fields.Time.Value, true
	}
	ts := d.normalizer.Normalize(timeValue, present)

	d.stats.Rendered++
	return []byte(d.renderer.Render(fields, ts))
}

// Stats returns the counters accumulated so far.
func (d *Driver) Stats() Stats {
	return d.stats
}

// write emits text and its newline in a single Write so every line
// reaches the sink as soon as it is ready.
func (d *Driver) write(line *parser.LogLine, text []byte) error {
	buf := make([]byte, 0, len(text)+1)
	buf = append(buf, text...)
	buf = append(buf, '\n')

	if _, err := d.out.Write(buf); err != nil {
		return &OutputError{LineNum: line.LineNum, Cause: err}
	}
	return nil
}
