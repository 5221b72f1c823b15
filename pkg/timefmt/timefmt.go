// Package timefmt converts resolved timestamp values into fixed-width
// local time strings.
package timefmt

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/ccollicutt/prettylog/pkg/record"
)

const (
	// Layout is the display layout. The date is always included.
	Layout = "2006-01-02 15:04:05.000"

	// Unknown is shown, padded to the display width, when a timestamp is
	// missing or cannot be read.
	Unknown = "unknown"

	// MillisThreshold separates epoch seconds from epoch milliseconds:
	// numbers whose magnitude exceeds it are read as milliseconds.
	MillisThreshold = 1e11

	// maxUnixSeconds is 9999-12-31T23:59:59Z, the last instant that fits
	// the four-digit year of Layout.
	maxUnixSeconds = 253402300799
)

// Normalizer renders timestamps in a fixed location. The location is
// chosen once and never changes.
type Normalizer struct {
	loc     *time.Location
	suffix  string
	formats []Format
}

// New creates a Normalizer for loc. A nil loc means time.Local. UTC output
// carries a trailing "Z".
func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	n := &Normalizer{loc: loc, formats: DefaultFormats()}
	if loc == time.UTC {
		n.suffix = "Z"
	}
	return n
}

// Location returns the display location.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Width is the number of characters every normalized value occupies.
func (n *Normalizer) Width() int {
	return len(Layout) + len(n.suffix)
}

// Normalize converts v to display form. present reports whether a time
// field was resolved at all; when it is false, or v cannot be read, the
// padded Unknown marker is returned.
func (n *Normalizer) Normalize(v record.Value, present bool) string {
	if !present {
		return n.unknown()
	}
	t, ok := n.Parse(v)
	if !ok {
		return n.unknown()
	}
	return n.Format(t)
}

// Format renders t in the normalizer's location.
func (n *Normalizer) Format(t time.Time) string {
	return t.In(n.loc).Format(Layout) + n.suffix
}

// Parse reads a timestamp from a string, an epoch number, or a
// {"seconds": N, "nanos": N} object.
func (n *Normalizer) Parse(v record.Value) (time.Time, bool) {
	var (
		t  time.Time
		ok bool
	)
	switch v.Kind() {
	case record.KindString:
		s, _ := v.AsString()
		t, ok = n.parseString(s)
	case record.KindNumber:
		num, _ := v.AsNumber()
		t, ok = parseEpoch(num)
	case record.KindObject:
		obj, _ := v.AsObject()
		t, ok = parseSecondsNanos(obj)
	}
	if !ok {
		return time.Time{}, false
	}
	if year := t.In(n.loc).Year(); year < 0 || year > 9999 {
		return time.Time{}, false
	}
	return t, true
}

func (n *Normalizer) parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, f := range n.formats {
		if t, err := time.Parse(f.Layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseEpoch reads seconds or milliseconds since the Unix epoch.
func parseEpoch(num json.Number) (time.Time, bool) {
	if i, err := num.Int64(); err == nil {
		if i > MillisThreshold || i < -MillisThreshold {
			if i/1000 > maxUnixSeconds || i/1000 < -maxUnixSeconds {
				return time.Time{}, false
			}
			return time.UnixMilli(i), true
		}
		return time.Unix(i, 0), true
	}

	f, err := num.Float64()
	if err != nil {
		return time.Time{}, false
	}
	if math.Abs(f) > MillisThreshold {
		f /= 1000
	}
	return unixFloat(f)
}

func unixFloat(secs float64) (time.Time, bool) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) || math.Abs(secs) > maxUnixSeconds {
		return time.Time{}, false
	}
	whole, frac := math.Modf(secs)
	// float64 carries about microsecond precision at current epochs
	micros := math.Round(frac * 1e6)
	return time.Unix(int64(whole), int64(micros)*int64(time.Microsecond)), true
}

func parseSecondsNanos(obj *record.Object) (time.Time, bool) {
	secsValue, ok := obj.Get("seconds")
	if !ok {
		return time.Time{}, false
	}
	secsNum, ok := secsValue.AsNumber()
	if !ok {
		return time.Time{}, false
	}
	secs, err := secsNum.Int64()
	if err != nil || secs > maxUnixSeconds || secs < -maxUnixSeconds {
		return time.Time{}, false
	}

	var nanos int64
	if nanosValue, ok := obj.Get("nanos"); ok {
		nanosNum, ok := nanosValue.AsNumber()
		if !ok {
			return time.Time{}, false
		}
		nanos, err = nanosNum.Int64()
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Unix(secs, nanos), true
}

func (n *Normalizer) unknown() string {
	return Unknown + strings.Repeat(" ", n.Width()-len(Unknown))
}
