// Package service implements the Dataset Validator: scan dataset tables,
// drop rows that break the structural invariants, back up and rewrite in place
package service

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"

	"frameset/internal/dataset"
	perr "frameset/internal/platform/errors"
	"frameset/internal/platform/logger"
	"frameset/internal/platform/validate"
	"frameset/internal/services/check/domain"
)

// Service implements the Dataset Validator
type Service struct {
	Opts domain.Options
}

// New validates opts and constructs the checker for a pattern-driven batch
func New(opts domain.Options) (*Service, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, err
	}
	return &Service{Opts: opts}, nil
}

// NewChecker constructs a bare checker for embedding (the builder runs one on
// its own output); only CheckFile may be called on it
func NewChecker() *Service { return &Service{} }

// Run executes one validator batch over every file matching the pattern.
// A file that fails to parse is reported and skipped; the batch never aborts
// on per-file findings
func (s *Service) Run(ctx context.Context) error {
	l := logger.C(ctx)

	counts, err := dataset.ReadCounts(ctx, filepath.Join(s.Opts.InPath, s.Opts.CountsFile))
	if err != nil {
		return err
	}

	matches, err := filepath.Glob(filepath.Join(s.Opts.InPath, s.Opts.Pattern))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad search pattern %q", s.Opts.Pattern)
	}
	sort.Strings(matches)
	l.Info().Str("pattern", s.Opts.Pattern).Strs("files", matches).Msg("found dataset files")
	if len(matches) == 0 {
		l.Warn().Str("pattern", s.Opts.Pattern).Msg("no dataset files matched")
		return nil
	}

	for _, path := range matches {
		if err := s.CheckFile(ctx, path, counts); err != nil {
			l.Error().Str("file", path).Err(err).Msg("dataset file skipped")
		}
	}
	return nil
}

// finding is one row-level violation
type finding struct {
	code   perr.ErrorCode
	detail string
}

// CheckFile validates every row of the table at path, logs each violation,
// and when any exist backs the file up to .bak and rewrites it without the
// offending rows (stable filter). A clean file is left untouched
func (s *Service) CheckFile(ctx context.Context, path string, counts *dataset.Counts) error {
	l := logger.C(ctx)

	tf, err := dataset.ReadTable(ctx, path)
	if err != nil {
		return err
	}

	faulty := make(map[int]bool)
	for i := range tf.Records {
		for _, f := range checkRow(tf.Raw(i), counts) {
			faulty[i] = true
			l.Warn().Str("file", path).Int("row", i).Strs("cells", tf.Records[i]).
				Str("reason", f.code.String()).Str("detail", f.detail).Msg("faulty row")
		}
	}
	l.Info().Str("file", path).Int("faulty_rows", len(faulty)).Msg("check complete")

	if len(faulty) == 0 {
		l.Info().Str("file", path).Msg("dataset is clean, no backup made")
		return nil
	}

	bak, err := dataset.Backup(ctx, path)
	if err != nil {
		return err
	}
	l.Info().Str("file", path).Str("backup", bak).Msg("original preserved")

	cleaned := make([][]string, 0, len(tf.Records)-len(faulty))
	for i, rec := range tf.Records {
		if !faulty[i] {
			cleaned = append(cleaned, rec)
		}
	}
	if len(cleaned) == 0 {
		l.Warn().Str("file", path).Msg("dataset empty after cleaning")
	}
	if err := dataset.WriteRecords(ctx, path, tf.Header, cleaned); err != nil {
		return err
	}
	l.Info().Str("file", path).Int("rows", len(cleaned)).Msg("cleaned dataset written")
	return nil
}

// checkRow runs every independent structural check on one row and returns all
// violations found. Checks never look across rows, so filtering is stable and
// order-independent
func checkRow(rr dataset.RawRow, counts *dataset.Counts) []finding {
	var out []finding

	// blank cells first: an unparseable row supports no further checks
	if fes := validate.FieldErrors(rr); len(fes) > 0 {
		for _, fe := range fes {
			out = append(out, finding{code: perr.ErrorCodeMissingValue, detail: fe.Field() + " is blank"})
		}
		return out
	}

	begin, berr := strconv.Atoi(rr.BeginFrame)
	end, eerr := strconv.Atoi(rr.EndFrame)
	if _, cerr := strconv.Atoi(rr.Class); cerr != nil {
		out = append(out, finding{code: perr.ErrorCodeMissingValue, detail: "class is not an integer"})
	}
	if berr != nil {
		out = append(out, finding{code: perr.ErrorCodeMissingValue, detail: "beginframe is not an integer"})
	}
	if eerr != nil {
		out = append(out, finding{code: perr.ErrorCodeMissingValue, detail: "endframe is not an integer"})
	}
	if berr != nil || eerr != nil {
		return out
	}

	if begin < 0 || end < 0 {
		out = append(out, finding{code: perr.ErrorCodeNegativeFrame, detail: "negative frame index"})
	}
	if begin > end {
		out = append(out, finding{code: perr.ErrorCodeInvalidOrdering, detail: "begin frame greater than end frame"})
	}

	total, ok := counts.FrameCount(rr.Filename)
	if !ok {
		out = append(out, finding{code: perr.ErrorCodeMissingVideo, detail: "video not in counts table"})
	} else if end > total-1 {
		out = append(out, finding{
			code:   perr.ErrorCodeOutOfBounds,
			detail: "end frame " + rr.EndFrame + " past last frame " + strconv.Itoa(total-1),
		})
	}
	return out
}
