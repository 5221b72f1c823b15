// Package output renders resolved log records as styled terminal lines.
package output

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/prettylog/pkg/record"
	"github.com/ccollicutt/prettylog/pkg/resolve"
	"github.com/ccollicutt/prettylog/pkg/severity"
)

const (
	// requestIDWidth is the minimum width of the request id column.
	requestIDWidth = 8

	// processIDPrefix marks a process id taken from the context object,
	// shortened to processIDLength characters so it fits the column.
	processIDPrefix = "p="
	processIDLength = 6
)

// TextRenderer composes the column layout:
//
//	time severity request-id message key=value...
type TextRenderer struct {
	opts     Options
	styles   styles
	newlines *strings.Replacer
}

// NewTextRenderer creates a TextRenderer, filling empty options with
// their defaults.
func NewTextRenderer(opts Options) *TextRenderer {
	if opts.RequestIDPlaceholder == "" {
		opts.RequestIDPlaceholder = DefaultRequestIDPlaceholder
	}
	if opts.NewlineMarker == "" {
		opts.NewlineMarker = DefaultNewlineMarker
	}
	m := opts.NewlineMarker
	newlines := strings.NewReplacer(
		"\r\n", m, "\n", m, "\r", m, "\v", m, "\f", m,
		"\u0085", m, "\u2028", m, "\u2029", m,
	)
	return &TextRenderer{
		opts:     opts,
		styles:   newStyles(opts.Color),
		newlines: newlines,
	}
}

// Options returns the effective options.
func (r *TextRenderer) Options() Options {
	return r.opts
}

// Render builds the output line for one record.
func (r *TextRenderer) Render(fields resolve.Fields, ts string) string {
	level := severity.Unknown
	if fields.Severity != nil {
		level = severity.Parse(fields.Severity.Value)
	}

	var b strings.Builder
	b.WriteString(r.styles.paint(r.styles.time, ts))
	b.WriteByte(' ')
	b.WriteString(r.styles.paint(r.styles.level(level), padRight(level.String(), severity.Width)))
	b.WriteByte(' ')
	b.WriteString(r.styles.paint(r.styles.requestID, padRight(r.requestID(fields), requestIDWidth)))
	b.WriteByte(' ')

	if fields.Message == nil {
		// Without a message the whole leftover record stands in for it.
		b.WriteString(r.oneLine(record.FieldsJSON(fields.Leftover)))
		return b.String()
	}

	text := fields.Message.Value.Text()
	if fields.Exception != nil {
		text += "\n" + fields.Exception.Value.Text()
	}
	message := r.oneLine(text)
	if style, ok := r.styles.message(level); ok {
		message = r.styles.paint(style, message)
	}
	b.WriteString(message)

	for _, f := range fields.Leftover {
		b.WriteByte(' ')
		b.WriteString(r.styles.paint(r.styles.key, r.formatText(f.Key)+"="))
		b.WriteString(r.formatValue(f.Value))
	}

	return b.String()
}

func (r *TextRenderer) requestID(fields resolve.Fields) string {
	if fields.RequestID == nil {
		return r.opts.RequestIDPlaceholder
	}
	id := r.oneLine(fields.RequestID.Value.Text())
	if strings.TrimSpace(id) == "" {
		return r.opts.RequestIDPlaceholder
	}
	if fields.RequestID.Key == resolve.ContextProcessIDKey {
		if runes := []rune(id); len(runes) > processIDLength {
			id = string(runes[:processIDLength])
		}
		return processIDPrefix + id
	}
	return id
}

// oneLine replaces line breaks with the newline marker and spells out
// the remaining control characters, except tab, as \uXXXX.
func (r *TextRenderer) oneLine(s string) string {
	return escapeControls(r.newlines.Replace(s))
}

func escapeControls(s string) string {
	if strings.IndexFunc(s, isEscapedControl) < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		c, size := utf8.DecodeRuneInString(s[i:])
		if isEscapedControl(c) {
			fmt.Fprintf(&b, `\u%04x`, c)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func isEscapedControl(c rune) bool {
	return c != '\t' && unicode.IsControl(c)
}

// formatValue renders a leftover value: strings bare or quoted, other
// values as compact JSON.
func (r *TextRenderer) formatValue(v record.Value) string {
	if s, ok := v.AsString(); ok {
		return r.formatText(s)
	}
	return r.oneLine(v.JSON())
}

func (r *TextRenderer) formatText(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for i, c := range s {
		if c == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return true
			}
		}
		if c == '=' || c == '"' || unicode.IsSpace(c) || unicode.IsControl(c) {
			return true
		}
	}
	return false
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
