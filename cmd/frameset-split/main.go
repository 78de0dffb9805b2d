package main

import (
	"context"
	"flag"

	"frameset/internal/platform/config"
	"frameset/internal/platform/logger"
	splitdom "frameset/internal/services/split/domain"
	splitsvc "frameset/internal/services/split/service"

	"github.com/google/uuid"
)

func main() {
	root := config.New()
	cfg := root.Prefix("FRAMESET_")
	l := logger.Get()

	var (
		fIn     = flag.String("in-path", cfg.MayString("IN_PATH", "."), "directory holding the counts table")
		fOut    = flag.String("out-path", cfg.MayString("OUT_PATH", ""), "directory for the master and split tables (default: in-path)")
		fCounts = flag.String("counts", cfg.MayString("COUNTS_FILE", "counts.csv"), "counts table filename")
		fStart  = flag.Int("start-frame", cfg.MayInt("START_FRAME", 0), "first usable frame of every video")
		fBuffer = flag.Int("end-frame-buffer", cfg.MayInt("END_FRAME_BUFFER", 0), "frames excluded at the end of every video")
		fSplits = flag.Int("splits", cfg.MayInt("SPLITS", 3), "number of segments per video")
		fSeed   = flag.Int64("seed", cfg.MayInt64("SEED", 0), "PRNG seed for split selection; 0 derives one from the clock")
	)
	flag.Parse()

	outPath := *fOut
	if outPath == "" {
		outPath = *fIn
	}

	svc, err := splitsvc.New(splitdom.Options{
		InPath:         *fIn,
		OutPath:        outPath,
		CountsFile:     *fCounts,
		StartFrame:     *fStart,
		EndFrameBuffer: *fBuffer,
		Splits:         *fSplits,
		Seed:           *fSeed,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("bad splitter options")
	}
	var runner splitdom.RunnerPort = svc

	ctx := logger.WithRun(context.Background(), "split", uuid.NewString())
	if err := runner.Run(ctx); err != nil {
		logger.C(ctx).Fatal().Err(err).Msg("split failed")
	}
}
