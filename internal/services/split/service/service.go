// Package service implements the Class Splitter: every video becomes its own
// class and its usable frame range is cut into N contiguous segments
package service

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"frameset/internal/core/frames"
	"frameset/internal/dataset"
	"frameset/internal/platform/logger"
	"frameset/internal/platform/validate"
	"frameset/internal/services/split/domain"
)

// DatasetFile is the master table the splitter writes under Options.OutPath
const DatasetFile = "dataset.csv"

// Service implements the Class Splitter
type Service struct {
	Opts domain.Options
}

// New validates opts and constructs the splitter
func New(opts domain.Options) (*Service, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, err
	}
	return &Service{Opts: opts}, nil
}

// Run executes one splitter batch: the master table plus one filtered table
// per split index. Per-video anomalies are logged and skipped; only an
// unusable counts table returns an error
func (s *Service) Run(ctx context.Context) error {
	l := logger.C(ctx)

	seed := s.Opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	l.Info().Str("counts", s.Opts.CountsFile).Int("splits", s.Opts.Splits).
		Int64("seed", seed).Msg("splitting videos into classes")

	counts, err := dataset.ReadCounts(ctx, filepath.Join(s.Opts.InPath, s.Opts.CountsFile))
	if err != nil {
		return err
	}

	master, perClass := s.buildMaster(ctx, counts)
	out := filepath.Join(s.Opts.OutPath, DatasetFile)
	if err := dataset.WriteTable(ctx, out, master); err != nil {
		return err
	}
	l.Info().Str("file", out).Int("rows", len(master)).Msg("master dataset written")

	for i := 0; i < s.Opts.Splits; i++ {
		sub := make([]dataset.Row, 0, len(perClass))
		for class := 0; class < counts.Len(); class++ {
			left := perClass[class]
			if len(left) == 0 {
				continue // short video, out of segments
			}
			pick := rng.Intn(len(left))
			sub = append(sub, left[pick])
			perClass[class] = append(left[:pick], left[pick+1:]...)
		}

		name := fmt.Sprintf("dataset_%d.csv", i)
		p := filepath.Join(s.Opts.OutPath, name)
		if err := dataset.WriteTable(ctx, p, sub); err != nil {
			return err
		}
		l.Info().Str("file", p).Int("rows", len(sub)).Msg("split dataset written")
	}
	return nil
}

// buildMaster partitions each video's usable range, assigning sequential
// class indices in counts order. Returns the master rows plus the per-class
// candidate pool the split selection draws from
func (s *Service) buildMaster(ctx context.Context, counts *dataset.Counts) ([]dataset.Row, map[int][]dataset.Row) {
	l := logger.C(ctx)
	var master []dataset.Row
	perClass := make(map[int][]dataset.Row, counts.Len())

	for class, rec := range counts.Records() {
		spans := frames.Partition(rec.FrameCount, s.Opts.StartFrame, s.Opts.EndFrameBuffer, s.Opts.Splits)
		if len(spans) == 0 {
			l.Warn().Str("video", rec.Filename).Int("framecount", rec.FrameCount).
				Msg("video skipped, no usable frames")
			continue
		}
		if len(spans) < s.Opts.Splits {
			l.Warn().Str("video", rec.Filename).Int("framecount", rec.FrameCount).
				Int("segments", len(spans)).Int("splits", s.Opts.Splits).
				Msg("video shorter than split count, zero-length segments skipped")
		}
		for _, sp := range spans {
			row := dataset.Row{
				Filename:   rec.Filename,
				Class:      class,
				BeginFrame: sp.Begin,
				EndFrame:   sp.End,
			}
			master = append(master, row)
			perClass[class] = append(perClass[class], row)
		}
	}
	return master, perClass
}
