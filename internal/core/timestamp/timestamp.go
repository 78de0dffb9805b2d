// Package timestamp parses the elapsed-time forms accepted in event logs
// Accepted forms
// 1 plain float seconds eg "1.0" "90" "0.04"
// 2 clock notation MM:SS or HH:MM:SS with optional fraction eg "01:30" "00:01:30.5"
// 3 Go duration strings eg "1m30s" "250ms"
package timestamp

import (
	"strconv"
	"strings"
	"time"

	perr "frameset/internal/platform/errors"
)

// Parse returns the elapsed seconds represented by s
// Negative elapsed times are rejected
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, perr.MalformedTimestampf("empty timestamp")
	}

	if strings.Contains(s, ":") {
		return parseClock(s)
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < 0 {
			return 0, perr.MalformedTimestampf("negative timestamp %q", s)
		}
		return v, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, perr.MalformedTimestampf("negative timestamp %q", s)
		}
		return d.Seconds(), nil
	}

	return 0, perr.MalformedTimestampf("unparseable timestamp %q", s)
}

// parseClock handles MM:SS and HH:MM:SS with an optional fractional seconds part
func parseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, perr.MalformedTimestampf("unparseable timestamp %q", s)
	}

	var hours, minutes int
	var err error
	if len(parts) == 3 {
		if hours, err = parseField(parts[0]); err != nil {
			return 0, perr.MalformedTimestampf("bad hours in %q", s)
		}
		parts = parts[1:]
	}
	if minutes, err = parseField(parts[0]); err != nil {
		return 0, perr.MalformedTimestampf("bad minutes in %q", s)
	}

	secs, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || secs < 0 || secs >= 60 {
		return 0, perr.MalformedTimestampf("bad seconds in %q", s)
	}

	return float64(hours)*3600 + float64(minutes)*60 + secs, nil
}

// parseField parses a non-negative integer clock component
func parseField(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, perr.MalformedTimestampf("bad clock field %q", s)
	}
	return v, nil
}
