// Package pipeline runs a complete extraction: parse the XEF document,
// extract the record, render it and write the artifacts.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mvp-joe/xef-extract/internal/config"
	"github.com/mvp-joe/xef-extract/internal/extraction"
	"github.com/mvp-joe/xef-extract/internal/output"
	"github.com/mvp-joe/xef-extract/internal/render"
	"github.com/mvp-joe/xef-extract/internal/xmltree"
)

// Options describes a single run.
type Options struct {
	Input      string
	OutputDir  string
	BodyPolicy extraction.BodyPolicy
	Include    []string
	Exclude    []string
	Workers    int
	Prune      bool
	Layout     render.Layout
	Extensions render.Extensions

	// Now stamps the project info file. Defaults to time.Now.
	Now func() time.Time
}

// Stats summarises a completed run.
type Stats struct {
	Project      extraction.ProjectInfo
	OutputDir    string
	Counts       map[extraction.UnitKind]int // units extracted, after filtering
	FilesWritten int
	FilesPruned  []string
	Duration     time.Duration
}

// Total returns the number of extracted units across all kinds.
func (s *Stats) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// DefaultOutputDir derives the output directory from the input file name:
// the base name without extension plus suffix, relative to the working directory.
func DefaultOutputDir(input, suffix string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix
}

// OptionsFromConfig builds run options from a validated configuration.
// An empty outputDir is derived from the input name.
func OptionsFromConfig(cfg *config.Config, input, outputDir string) (Options, error) {
	policy, err := extraction.ParseBodyPolicy(cfg.Extraction.BodyPolicy)
	if err != nil {
		return Options{}, err
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir(input, cfg.Output.Suffix)
	}
	return Options{
		Input:      input,
		OutputDir:  outputDir,
		BodyPolicy: policy,
		Include:    cfg.Filter.Include,
		Exclude:    cfg.Filter.Exclude,
		Workers:    cfg.Output.Workers,
		Prune:      cfg.Output.Prune,
		Layout:     cfg.Output.Layout,
		Extensions: cfg.Output.Extensions,
	}, nil
}

// Run executes the pipeline. Parse and extraction errors are returned before
// anything is written, so a failed run never leaves partial output behind.
func Run(ctx context.Context, opts Options, progress ProgressReporter) (*Stats, error) {
	start := time.Now()
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	filter, err := extraction.NewNameFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	root, err := xmltree.ParseFile(opts.Input)
	if err != nil {
		return nil, err
	}
	progress.OnParseComplete(opts.Input)

	extractor := extraction.New(
		extraction.WithReporter(progress),
		extraction.WithBodyPolicy(opts.BodyPolicy),
	)
	rec, err := extractor.Extract(root)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	rec = rec.Filter(filter)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderer := render.NewRenderer(opts.Layout, opts.Extensions)
	units := renderer.Render(rec)
	artifacts := append([]render.Artifact{renderer.ProjectInfo(rec.Project, now())}, units...)

	w, err := output.NewWriter(opts.OutputDir, opts.Layout)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	progress.OnWriteStart(len(artifacts))
	err = w.WriteAll(ctx, artifacts, opts.Workers, func(a render.Artifact) {
		progress.OnArtifactWritten(a.RelPath())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write artifacts: %w", err)
	}

	stats := &Stats{
		Project:      rec.Project,
		OutputDir:    w.Root(),
		Counts:       rec.Counts(),
		FilesWritten: len(artifacts),
	}

	if opts.Prune {
		removed, err := w.Prune(units, opts.Extensions)
		if err != nil {
			return nil, fmt.Errorf("failed to prune stale artifacts: %w", err)
		}
		stats.FilesPruned = removed
	}

	stats.Duration = time.Since(start)
	progress.OnComplete(stats)

	return stats, nil
}
