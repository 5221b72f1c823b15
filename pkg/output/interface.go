package output

import "github.com/ccollicutt/prettylog/pkg/resolve"

// Renderer turns resolved fields and a normalized time into one output line.
type Renderer interface {
	// Render returns the line without a trailing newline.
	Render(fields resolve.Fields, ts string) string
}

// Options controls renderer behavior.
type Options struct {
	// Color enables ANSI styling. When false the emitted characters are
	// exactly the uncolored composition.
	Color bool

	// RequestIDPlaceholder is shown when a record has no request id.
	RequestIDPlaceholder string

	// NewlineMarker replaces line breaks inside values so that one record
	// always yields one line.
	NewlineMarker string
}

// Defaults for Options fields left empty.
const (
	DefaultRequestIDPlaceholder = "-"
	DefaultNewlineMarker        = `\n`
)
