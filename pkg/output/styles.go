package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ccollicutt/prettylog/pkg/severity"
)

// styles holds the lipgloss styles for one color setting.
type styles struct {
	enabled   bool
	time      lipgloss.Style
	requestID lipgloss.Style
	key       lipgloss.Style
	levels    map[severity.Level]lipgloss.Style
	messages  map[severity.Level]lipgloss.Style
}

// newStyles builds styles on a private renderer so output never depends on
// what the process's own terminal supports.
func newStyles(color bool) styles {
	r := lipgloss.NewRenderer(io.Discard)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	r.SetHasDarkBackground(true)

	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	fg := func(c string) lipgloss.Style { return base.Foreground(lipgloss.Color(c)) }

	return styles{
		enabled:   color,
		time:      fg("2"),
		requestID: fg("6"),
		key:       fg("245"),
		levels: map[severity.Level]lipgloss.Style{
			severity.Unknown: base,
			severity.Trace:   fg("8"),
			severity.Debug:   fg("8"),
			severity.Info:    fg("2").Bold(true),
			severity.Warn:    fg("3").Bold(true),
			severity.Error:   fg("1").Bold(true),
			severity.Fatal:   fg("5").Bold(true),
		},
		messages: map[severity.Level]lipgloss.Style{
			severity.Warn:  fg("3"),
			severity.Error: fg("1"),
			severity.Fatal: fg("5"),
		},
	}
}

func (s styles) paint(style lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return style.Render(text)
}

func (s styles) level(l severity.Level) lipgloss.Style {
	if style, ok := s.levels[l]; ok {
		return style
	}
	return s.levels[severity.Unknown]
}

// message returns the message style for l; levels without one keep the
// terminal's default color.
func (s styles) message(l severity.Level) (lipgloss.Style, bool) {
	style, ok := s.messages[l]
	return style, ok
}
