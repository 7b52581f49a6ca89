// Package output writes rendered artifacts to disk.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/xef-extract/internal/render"
	"golang.org/x/sync/errgroup"
)

const tempDirName = ".tmp"

// Writer writes artifacts atomically using temp → rename.
type Writer struct {
	root    string
	tempDir string
	layout  render.Layout
}

// NewWriter creates the output root and every category directory up front,
// so later writes (possibly parallel) never race on directory creation.
func NewWriter(root string, layout render.Layout) (*Writer, error) {
	tempDir := filepath.Join(root, tempDirName)

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, dir := range layout.Dirs() {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}

	// Clean up stale temp files from an interrupted run
	if err := os.RemoveAll(tempDir); err != nil {
		return nil, fmt.Errorf("failed to clean temp directory: %w", err)
	}

	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &Writer{
		root:    root,
		tempDir: tempDir,
		layout:  layout,
	}, nil
}

// Root returns the output root directory.
func (w *Writer) Root() string {
	return w.root
}

// Write writes one artifact, replacing any previous version.
func (w *Writer) Write(a render.Artifact) error {
	tmp, err := os.CreateTemp(w.tempDir, a.File+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", a.RelPath(), err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.WriteString(a.Content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", a.RelPath(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close %s: %w", a.RelPath(), err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to chmod %s: %w", a.RelPath(), err)
	}

	// Rename to final location (atomic operation)
	finalPath := filepath.Join(w.root, a.RelPath())
	if err := os.Rename(tempPath, finalPath); err != nil {
		// Clean up temp file on error
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file for %s: %w", a.RelPath(), err)
	}

	return nil
}

// WriteAll writes artifacts with up to workers concurrent writes.
// workers <= 1 writes sequentially in order. onWritten, if set, is called
// after each successful write and may be called from several goroutines.
func (w *Writer) WriteAll(ctx context.Context, artifacts []render.Artifact, workers int, onWritten func(render.Artifact)) error {
	if workers <= 1 {
		for _, a := range artifacts {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := w.Write(a); err != nil {
				return err
			}
			if onWritten != nil {
				onWritten(a)
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	// Artifacts sharing a path are written in order by a single goroutine,
	// so the last one wins exactly as it does sequentially.
	for _, group := range groupByPath(artifacts) {
		group := group
		g.Go(func() error {
			for _, a := range group {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := w.Write(a); err != nil {
					return err
				}
				if onWritten != nil {
					onWritten(a)
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// groupByPath buckets artifacts by RelPath, keeping first-seen order of the
// buckets and document order within each.
func groupByPath(artifacts []render.Artifact) [][]render.Artifact {
	index := make(map[string]int, len(artifacts))
	var groups [][]render.Artifact
	for _, a := range artifacts {
		path := a.RelPath()
		i, ok := index[path]
		if !ok {
			i = len(groups)
			index[path] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], a)
	}
	return groups
}

// Close removes the temp directory.
func (w *Writer) Close() error {
	return os.RemoveAll(w.tempDir)
}
