package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	perr "frameset/internal/platform/errors"
	"frameset/internal/platform/logger"
)

// countsColumns is the expected counts-table header
var countsColumns = []string{"filename", "framecount"}

// ReadCounts loads the counts table at path. Malformed rows are dropped with
// a warning; an unreadable file or a file with no usable rows is an
// unreadable-input error (fatal to the calling job)
func ReadCounts(ctx context.Context, path string) (*Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnreadable, "open counts table %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	head, err := r.Read()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnreadable, "read counts header %s", path)
	}
	if len(head) < 2 ||
		!strings.EqualFold(strings.TrimSpace(head[0]), countsColumns[0]) ||
		!strings.EqualFold(strings.TrimSpace(head[1]), countsColumns[1]) {
		return nil, perr.Unreadablef("counts table %s: want header %v, got %v", path, countsColumns, head)
	}

	l := logger.C(ctx)
	out := &Counts{}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.Warn().Str("file", path).Int("line", line).Err(err).Msg("counts row unreadable, dropped")
			continue
		}
		if len(rec) < 2 {
			l.Warn().Str("file", path).Int("line", line).Msg("counts row too short, dropped")
			continue
		}
		name := strings.TrimSpace(rec[0])
		n, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if name == "" || err != nil || n < 0 {
			l.Warn().Str("file", path).Int("line", line).Strs("row", rec).Msg("counts row malformed, dropped")
			continue
		}
		if !out.add(VideoRecord{Filename: name, FrameCount: n}) {
			l.Warn().Str("file", path).Int("line", line).Str("video", name).Msg("duplicate video, first row kept")
		}
	}

	if out.Len() == 0 {
		return nil, perr.Unreadablef("counts table %s has no usable rows", path)
	}
	return out, nil
}
