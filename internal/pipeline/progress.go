package pipeline

import "github.com/mvp-joe/xef-extract/internal/extraction"

// ProgressReporter provides callbacks for reporting pipeline progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnPassComplete is called after each extraction pass.
	extraction.Reporter

	// OnParseComplete is called once the input document has been parsed.
	OnParseComplete(path string)

	// OnWriteStart is called before any artifact is written.
	OnWriteStart(total int)

	// OnArtifactWritten is called after each artifact is written.
	// With more than one worker it may be called concurrently.
	OnArtifactWritten(relPath string)

	// OnComplete is called when the run completes successfully.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnParseComplete(path string)                        {}
func (n *NoOpProgressReporter) OnPassComplete(kind extraction.UnitKind, count int) {}
func (n *NoOpProgressReporter) OnWriteStart(total int)                             {}
func (n *NoOpProgressReporter) OnArtifactWritten(relPath string)                   {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)                            {}
