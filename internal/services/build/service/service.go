// Package service implements the Interval Builder: event logs plus the counts
// table in, labeled frame intervals out
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"frameset/internal/core/frames"
	"frameset/internal/dataset"
	perr "frameset/internal/platform/errors"
	"frameset/internal/platform/logger"
	"frameset/internal/platform/validate"
	"frameset/internal/services/build/domain"
)

// DatasetFile is the table the builder writes under Options.OutPath
const DatasetFile = "dataset.csv"

// RunDescriptionFile records the log-file to class-index mapping, append-only
const RunDescriptionFile = "RUN_DESCRIPTION.log"

// Service implements the Interval Builder
type Service struct {
	Opts  domain.Options
	Check domain.CheckerPort // optional; nil skips the post-write check
}

// New validates opts and constructs the builder
func New(opts domain.Options, check domain.CheckerPort) (*Service, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, err
	}
	return &Service{Opts: opts, Check: check}, nil
}

// runState carries the per-run mutable bits so nothing leaks across runs when
// the builder is driven as a library
type runState struct {
	classIdx   int
	rows       []dataset.Row
	unreadable int
}

// Run executes one builder batch. Row and line problems are dropped with a
// warning; only an unusable counts table or a run where every log file is
// unreadable returns an error
func (s *Service) Run(ctx context.Context) error {
	l := logger.C(ctx)
	l.Info().Str("counts", s.Opts.CountsFile).Strs("logs", s.Opts.LogFiles).
		Float64("fps", s.Opts.FPS).Msg("building dataset")

	counts, err := dataset.ReadCounts(ctx, filepath.Join(s.Opts.InPath, s.Opts.CountsFile))
	if err != nil {
		return err
	}
	first, _ := counts.First()

	rd, err := s.openRunDescription(ctx)
	if err != nil {
		return err
	}
	defer rd.Close()

	st := &runState{}
	for _, logFile := range s.Opts.LogFiles {
		class := st.classIdx
		st.classIdx++

		name := className(logFile)
		l.Info().Int("class", class).Str("name", name).Str("file", logFile).Msg("assigning class number")
		fmt.Fprintf(rd, "Assigning class number %d to class %s\n", class, name)

		events, err := dataset.ReadEvents(ctx, filepath.Join(s.Opts.InPath, logFile), first.Filename)
		if err != nil {
			l.Error().Str("file", logFile).Err(err).Msg("event log unusable, class will be empty")
			st.unreadable++
			continue
		}
		s.emitIntervals(ctx, st, counts, logFile, class, events)
	}

	if st.unreadable == len(s.Opts.LogFiles) {
		return perr.Unreadablef("no readable event logs among %v", s.Opts.LogFiles)
	}

	out := filepath.Join(s.Opts.OutPath, DatasetFile)
	if err := dataset.WriteTable(ctx, out, st.rows); err != nil {
		return err
	}
	l.Info().Str("file", out).Int("rows", len(st.rows)).Msg("dataset written")

	if s.Check != nil {
		if err := s.Check.CheckFile(ctx, out, counts); err != nil {
			return err
		}
	}
	return nil
}

// emitIntervals turns one log's events into rows for the given class.
// Consecutive events for the same video pair into begin/end intervals;
// ends clamp to the usable bound, and with a non-zero frame interval a later
// interval starting too close to the previous emitted end loses (first wins)
func (s *Service) emitIntervals(
	ctx context.Context,
	st *runState,
	counts *dataset.Counts,
	logFile string,
	class int,
	events []dataset.Event,
) {
	l := logger.C(ctx)
	prev := make(map[string]int)    // last seen frame per video
	lastEnd := make(map[string]int) // last emitted end per video

	for _, ev := range events {
		total, ok := counts.FrameCount(ev.Video)
		if !ok {
			l.Warn().Str("file", logFile).Int("line", ev.Line).Str("video", ev.Video).
				Str("reason", perr.ErrorCodeMissingVideo.String()).Msg("event dropped")
			continue
		}

		frame := frames.At(ev.Seconds, s.Opts.FPS, s.Opts.StartingFrame)
		begin, seen := prev[ev.Video]
		prev[ev.Video] = frame
		if !seen {
			continue // first event for this video only opens an interval
		}
		end := frame

		bound := frames.UsableBound(total, s.Opts.EndFrameBuffer)
		switch {
		case end < begin:
			l.Warn().Str("file", logFile).Int("line", ev.Line).Str("video", ev.Video).
				Int("begin", begin).Int("end", end).Msg("interval dropped, log out of order")
			continue
		case begin > bound:
			l.Warn().Str("file", logFile).Int("line", ev.Line).Str("video", ev.Video).
				Int("begin", begin).Int("bound", bound).Msg("interval dropped, begins past usable range")
			continue
		}
		if end > bound {
			end = bound
		}

		if s.Opts.FrameInterval > 0 {
			if le, emitted := lastEnd[ev.Video]; emitted && begin < le+s.Opts.FrameInterval {
				l.Warn().Str("file", logFile).Int("line", ev.Line).Str("video", ev.Video).
					Int("begin", begin).Int("last_end", le).Int("frame_interval", s.Opts.FrameInterval).
					Msg("interval dropped, closer than frame interval to previous (first wins)")
				continue
			}
		}

		st.rows = append(st.rows, dataset.Row{
			Filename:   ev.Video,
			Class:      class,
			BeginFrame: begin,
			EndFrame:   end,
		})
		lastEnd[ev.Video] = end
	}
}

// openRunDescription appends the class-relations block header for this run
func (s *Service) openRunDescription(ctx context.Context) (*os.File, error) {
	p := filepath.Join(s.Opts.OutPath, RunDescriptionFile)
	f, err := os.OpenFile(p, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "open %s", p)
	}
	fmt.Fprintf(f, "\n-- Class Relations --\n")
	if id := logger.RunID(ctx); id != "" {
		fmt.Fprintf(f, "run %s\n", id)
	}
	return f, nil
}

// className derives the class name from a log filename:
// logPos.txt -> POS, logNo.txt -> NO. A name without the log prefix is
// uppercased whole
func className(logFile string) string {
	base := filepath.Base(logFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimPrefix(base, "log")
	return strings.ToUpper(base)
}
