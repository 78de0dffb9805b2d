// Package domain holds the Class Splitter's option and port types
package domain

import "context"

// Options configure one Class Splitter run.
// Seed 0 means nondeterministic: the service derives a seed from the clock
// and logs it so a run can still be replayed
type Options struct {
	InPath         string `json:"in_path" validate:"required"`
	OutPath        string `json:"out_path" validate:"required"`
	CountsFile     string `json:"counts_file" validate:"required"`
	StartFrame     int    `json:"start_frame" validate:"gte=0"`
	EndFrameBuffer int    `json:"end_frame_buffer" validate:"gte=0"`
	Splits         int    `json:"splits" validate:"gte=1"`
	Seed           int64  `json:"seed"`
}

// RunnerPort is the public port exposed by the splitter
type RunnerPort interface {
	Run(ctx context.Context) error
}
