// Package domain holds the Dataset Validator's option and port types
package domain

import (
	"context"

	"frameset/internal/dataset"
)

// Options configure one Dataset Validator batch
type Options struct {
	InPath     string `json:"in_path" validate:"required"`
	CountsFile string `json:"counts_file" validate:"required"`
	Pattern    string `json:"search_string" validate:"required"`
}

// RunnerPort is the public port exposed by the checker
type RunnerPort interface {
	Run(ctx context.Context) error
}

// CheckerPort checks and cleans a single dataset file in place
type CheckerPort interface {
	CheckFile(ctx context.Context, path string, counts *dataset.Counts) error
}
