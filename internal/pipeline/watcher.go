package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a re-run.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a single input file and calls onChange once its writes settle.
// The parent directory is watched so editors that replace the file by rename
// are still observed.
type Watcher struct {
	input        string
	onChange     func(ctx context.Context)
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a watcher for input. A non-positive debounce uses DefaultDebounce.
func NewWatcher(input string, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", input, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		input:        abs,
		onChange:     onChange,
		watcher:      watcher,
		debounceTime: debounce,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}, nil
}

// Start begins watching for changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for an in-flight run to finish.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	runCh := make(chan struct{}, 1)

	stopTimer := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimer()
			return

		case <-w.stopCh:
			stopTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.shouldProcessEvent(event) {
				continue
			}

			stopTimer()
			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case runCh <- struct{}{}:
				default:
				}
			})

		case <-runCh:
			w.onChange(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// shouldProcessEvent reports whether event is a write or create of the input file.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.input
}

// Watch runs the pipeline once, then again after every settled change to the
// input file until ctx is cancelled. Errors from re-runs are logged, not returned.
func Watch(ctx context.Context, opts Options, progress ProgressReporter, debounce time.Duration) error {
	if _, err := Run(ctx, opts, progress); err != nil {
		return err
	}

	w, err := NewWatcher(opts.Input, debounce, func(ctx context.Context) {
		log.Printf("Change detected in %s, re-extracting...", filepath.Base(opts.Input))
		stats, err := Run(ctx, opts, progress)
		if err != nil {
			log.Printf("Error during re-extraction: %v", err)
			return
		}
		log.Printf("Re-extraction complete in %v (%d units, %d files)",
			stats.Duration, stats.Total(), stats.FilesWritten)
	})
	if err != nil {
		return err
	}
	w.Start(ctx)
	defer w.Stop()

	<-ctx.Done()
	return nil
}
