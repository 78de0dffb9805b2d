// Package domain holds the Interval Builder's option and port types
package domain

import (
	"context"

	"frameset/internal/dataset"
)

// Options configure one Interval Builder run
type Options struct {
	InPath         string   `json:"in_path" validate:"required"`
	OutPath        string   `json:"out_path" validate:"required"`
	CountsFile     string   `json:"counts_file" validate:"required"`
	LogFiles       []string `json:"log_files" validate:"required,min=1,dive,required"`
	FPS            float64  `json:"fps" validate:"gt=0"`
	StartingFrame  int      `json:"starting_frame" validate:"gte=0"`
	FrameInterval  int      `json:"frame_interval" validate:"gte=0"`
	EndFrameBuffer int      `json:"end_frame_buffer" validate:"gte=0"`
}

// RunnerPort is the public port exposed by the builder
type RunnerPort interface {
	Run(ctx context.Context) error
}

// CheckerPort is what the builder invokes on its freshly written table.
// Implemented by the check service
type CheckerPort interface {
	CheckFile(ctx context.Context, path string, counts *dataset.Counts) error
}
