// Package clock provides a wall-clock time of day that marshals as HH:MM.
package clock

import (
	"encoding/json"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
)

const (
	// MinutesPerHour is the number of minutes in an hour.
	MinutesPerHour = 60
	// MinutesPerDay is the number of minutes in a day (24:00 as an offset).
	MinutesPerDay = 24 * MinutesPerHour
)

// Time is a local time of day with minute precision. The zero value is 00:00.
type Time struct {
	minutes int
}

// New returns the time h:m. It fails with MALFORMED_TIME when h or m is out of range.
func New(h, m int) (Time, error) {
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return Time{}, malformed(fmt.Sprintf("%d:%d", h, m))
	}
	return Time{minutes: h*MinutesPerHour + m}, nil
}

// MustParse is Parse for known-good literals; it panics on error.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromMinutes returns the time that is m minutes after midnight, wrapped into a single day.
func FromMinutes(m int) Time {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Time{minutes: m}
}

// FromTime returns the wall-clock hour and minute of t.
func FromTime(t time.Time) Time {
	return Time{minutes: t.Hour()*MinutesPerHour + t.Minute()}
}

// Parse parses exactly "HH:MM": two zero-padded digits, a colon, two
// zero-padded digits, with hour 00-23 and minute 00-59.
func Parse(s string) (Time, error) {
	const layoutLen = 5
	if len(s) != layoutLen || s[2] != ':' {
		return Time{}, malformed(s)
	}
	h, ok := twoDigits(s[0], s[1])
	if !ok {
		return Time{}, malformed(s)
	}
	m, ok := twoDigits(s[3], s[4])
	if !ok {
		return Time{}, malformed(s)
	}
	if h > 23 || m > 59 {
		return Time{}, malformed(s)
	}
	return Time{minutes: h*MinutesPerHour + m}, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

func malformed(input string) *clierr.Error {
	return clierr.Newf(clierr.MalformedTime, "invalid time %q: expected HH:MM (00:00-23:59)", input).
		WithDetails(map[string]any{"input": input})
}

// Minutes returns the number of minutes since midnight.
func (t Time) Minutes() int { return t.minutes }

// Hour returns the hour, 0-23.
func (t Time) Hour() int { return t.minutes / MinutesPerHour }

// Minute returns the minute within the hour, 0-59.
func (t Time) Minute() int { return t.minutes % MinutesPerHour }

// Before reports whether t is earlier in the day than u.
func (t Time) Before(u Time) bool { return t.minutes < u.minutes }

// String returns the time as HH:MM.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Ptr returns a pointer to a copy of t.
func (t Time) Ptr() *Time { return &t }

// MarshalYAML implements yaml.Marshaler.
func (t Time) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (t *Time) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
