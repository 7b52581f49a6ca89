package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/xef-extract/internal/render"
)

// Prune removes files from the category directories that were not produced
// by this run, e.g. units that were renamed or deleted in the project.
// Only files with one of the given extensions are considered.
// Returns the removed paths relative to the output root.
func (w *Writer) Prune(keep []render.Artifact, ext render.Extensions) ([]string, error) {
	kept := make(map[string]bool, len(keep))
	for _, a := range keep {
		kept[a.RelPath()] = true
	}

	managed := managedSuffixes(ext)

	var removed []string
	for _, dir := range uniqueDirs(w.layout) {
		entries, err := os.ReadDir(filepath.Join(w.root, dir))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("failed to read %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !hasAnySuffix(entry.Name(), managed) {
				continue
			}
			rel := filepath.Join(dir, entry.Name())
			if kept[rel] {
				continue
			}
			if err := os.Remove(filepath.Join(w.root, rel)); err != nil {
				return removed, fmt.Errorf("failed to remove stale %s: %w", rel, err)
			}
			removed = append(removed, rel)
		}
	}

	return removed, nil
}

// Clean removes what a previous run generated under root: files with one of
// the given extensions in the category directories, the project info file and
// the temp directory. Category directories and the root itself are removed
// only when nothing else is left in them.
// Returns the number of files removed.
func Clean(root string, layout render.Layout, ext render.Extensions) (int, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return 0, nil
	}

	managed := managedSuffixes(ext)

	removed := 0
	for _, dir := range uniqueDirs(layout) {
		path := filepath.Join(root, dir)
		n, err := removeManaged(path, managed)
		removed += n
		if err != nil {
			return removed, err
		}
		if err := removeIfEmpty(path); err != nil {
			return removed, err
		}
	}

	infoPath := filepath.Join(root, layout.ProjectInfo)
	if err := os.Remove(infoPath); err == nil {
		removed++
	} else if !os.IsNotExist(err) {
		return removed, fmt.Errorf("failed to remove %s: %w", layout.ProjectInfo, err)
	}

	if err := os.RemoveAll(filepath.Join(root, tempDirName)); err != nil {
		return removed, fmt.Errorf("failed to remove temp directory: %w", err)
	}

	if err := removeIfEmpty(root); err != nil {
		return removed, err
	}

	return removed, nil
}

func managedSuffixes(ext render.Extensions) []string {
	return []string{"." + ext.Code, "." + ext.Data, "." + ext.External}
}

// removeManaged deletes the files directly in dir that carry a managed suffix.
func removeManaged(dir string, managed []string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	n := 0
	for _, entry := range entries {
		if entry.IsDir() || !hasAnySuffix(entry.Name(), managed) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return n, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		n++
	}
	return n, nil
}

func removeIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return nil
	}
	if err := os.Remove(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	return nil
}

// uniqueDirs returns the category directories without duplicates; a layout
// may map several categories onto the same directory.
func uniqueDirs(layout render.Layout) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, d := range layout.Dirs() {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
