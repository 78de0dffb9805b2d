package dataset

import (
	"bufio"
	"context"
	"os"
	"strings"

	"frameset/internal/core/timestamp"
	perr "frameset/internal/platform/errors"
	"frameset/internal/platform/logger"
)

// ReadEvents loads one event log. Line grammar:
//
//	timestamp
//	video_id timestamp
//	video_id,timestamp
//
// A bare timestamp attaches to the most recently named video, starting from
// defaultVideo. Malformed lines are skipped with a warning; an unreadable or
// empty log is an unreadable-input error (the caller decides whether that is
// fatal for the batch)
func ReadEvents(ctx context.Context, path, defaultVideo string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnreadable, "open event log %s", path)
	}
	defer f.Close()

	l := logger.C(ctx)
	video := defaultVideo
	var out []Event

	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := splitLine(text)
		var ts string
		switch len(fields) {
		case 1:
			ts = fields[0]
		case 2:
			video = fields[0]
			ts = fields[1]
		default:
			l.Warn().Str("file", path).Int("line", line).Str("text", text).
				Str("reason", perr.ErrorCodeMalformedTimestamp.String()).Msg("event line skipped")
			continue
		}

		secs, err := timestamp.Parse(ts)
		if err != nil {
			l.Warn().Str("file", path).Int("line", line).Str("text", text).Err(err).
				Str("reason", perr.ErrorCodeMalformedTimestamp.String()).Msg("event line skipped")
			continue
		}
		out = append(out, Event{Video: video, Seconds: secs, Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnreadable, "read event log %s", path)
	}

	if len(out) == 0 {
		return nil, perr.Unreadablef("event log %s has no usable lines", path)
	}
	return out, nil
}

// splitLine splits on the first comma, else on whitespace
func splitLine(s string) []string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		a := strings.TrimSpace(s[:i])
		b := strings.TrimSpace(s[i+1:])
		return []string{a, b}
	}
	return strings.Fields(s)
}
