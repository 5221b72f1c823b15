// Package parser provides line-oriented reading of log input.
package parser

// LogLine is one raw input line.
type LogLine struct {
	// Content is the line without its trailing "\n". A "\r" before the
	// newline is kept so passthrough output is byte-exact.
	Content []byte

	// Source is the file path this line came from, or "-" for stdin.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}
