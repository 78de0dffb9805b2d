package main

import (
	"context"
	"flag"

	"frameset/internal/platform/config"
	"frameset/internal/platform/logger"
	checkdom "frameset/internal/services/check/domain"
	checksvc "frameset/internal/services/check/service"

	"github.com/google/uuid"
)

func main() {
	root := config.New()
	cfg := root.Prefix("FRAMESET_")
	l := logger.Get()

	var (
		fIn      = flag.String("in-path", cfg.MayString("IN_PATH", "."), "directory holding the dataset files and counts table")
		fCounts  = flag.String("counts", cfg.MayString("COUNTS_FILE", "counts.csv"), "counts table filename")
		fPattern = flag.String("search-string", cfg.MayString("SEARCH_STRING", "dataset_*.csv"), "glob pattern matching the dataset files to check")
	)
	// accepted so the three jobs share one flag surface; cleaned tables are
	// rewritten in place, so the value is never read
	_ = flag.String("out-path", cfg.MayString("OUT_PATH", ""), "unused; cleaned tables are rewritten in place")
	flag.Parse()

	svc, err := checksvc.New(checkdom.Options{
		InPath:     *fIn,
		CountsFile: *fCounts,
		Pattern:    *fPattern,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("bad checker options")
	}
	var runner checkdom.RunnerPort = svc

	ctx := logger.WithRun(context.Background(), "check", uuid.NewString())
	if err := runner.Run(ctx); err != nil {
		logger.C(ctx).Fatal().Err(err).Msg("check failed")
	}
}
