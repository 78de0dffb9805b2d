package main

import (
	"context"
	"flag"
	"strings"

	"frameset/internal/platform/config"
	"frameset/internal/platform/logger"
	builddom "frameset/internal/services/build/domain"
	buildsvc "frameset/internal/services/build/service"
	checksvc "frameset/internal/services/check/service"

	"github.com/google/uuid"
)

func main() {
	root := config.New()
	cfg := root.Prefix("FRAMESET_")
	l := logger.Get()

	var (
		fIn       = flag.String("in-path", cfg.MayString("IN_PATH", "."), "directory holding the counts table and event logs")
		fOut      = flag.String("out-path", cfg.MayString("OUT_PATH", ""), "directory for dataset.csv and RUN_DESCRIPTION.log (default: in-path)")
		fCounts   = flag.String("counts", cfg.MayString("COUNTS_FILE", "counts.csv"), "counts table filename")
		fFiles    = flag.String("files", strings.Join(cfg.MayCSV("LOG_FILES", []string{"logNo.txt", "logPos.txt", "logNeg.txt"}), ","), "comma-separated event log filenames, one class each")
		fFPS      = flag.Float64("fps", cfg.MayFloat64("FPS", 25), "frames per second of the source videos")
		fStart    = flag.Int("starting-frame", cfg.MayInt("STARTING_FRAME", 0), "frame offset added to every converted timestamp")
		fInterval = flag.Int("frame-interval", cfg.MayInt("FRAME_INTERVAL", 0), "minimum frame gap between intervals of one video/class; 0 disables")
		fBuffer   = flag.Int("end-frame-buffer", cfg.MayInt("END_FRAME_BUFFER", 0), "frames excluded at the end of every video")
	)
	flag.Parse()

	outPath := *fOut
	if outPath == "" {
		outPath = *fIn
	}

	var files []string
	for _, f := range strings.Split(*fFiles, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}

	svc, err := buildsvc.New(builddom.Options{
		InPath:         *fIn,
		OutPath:        outPath,
		CountsFile:     *fCounts,
		LogFiles:       files,
		FPS:            *fFPS,
		StartingFrame:  *fStart,
		FrameInterval:  *fInterval,
		EndFrameBuffer: *fBuffer,
	}, checksvc.NewChecker())
	if err != nil {
		l.Fatal().Err(err).Msg("bad builder options")
	}
	var runner builddom.RunnerPort = svc

	ctx := logger.WithRun(context.Background(), "build", uuid.NewString())
	if err := runner.Run(ctx); err != nil {
		logger.C(ctx).Fatal().Err(err).Msg("build failed")
	}
}
