package timefmt

import "time"

// Format is an accepted textual timestamp encoding.
type Format struct {
	Name   string // Human-readable name
	Layout string // Go time layout for parsing
}

// DefaultFormats returns the string encodings the normalizer accepts, most
// specific first. Fractional seconds are optional in every layout, and
// layouts without a zone are read as UTC.
func DefaultFormats() []Format {
	return []Format{
		{Name: "RFC 3339", Layout: time.RFC3339Nano},
		{Name: "ISO 8601 with basic offset", Layout: "2006-01-02T15:04:05.999999999Z0700"},
		{Name: "ISO 8601 space separated", Layout: "2006-01-02 15:04:05.999999999Z07:00"},
		{Name: "ISO 8601 space separated, basic offset", Layout: "2006-01-02 15:04:05.999999999Z0700"},
		{Name: "ISO 8601 space separated, short offset", Layout: "2006-01-02 15:04:05.999999999 -0700"},
		{Name: "ISO 8601 without zone", Layout: "2006-01-02T15:04:05.999999999"},
		{Name: "datetime without zone", Layout: "2006-01-02 15:04:05.999999999"},
	}
}
