package cli

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/mvp-joe/xef-extract/internal/extraction"
	"github.com/mvp-joe/xef-extract/internal/pipeline"
	"github.com/schollz/progressbar/v3"
)

var _ pipeline.ProgressReporter = (*CLIProgressReporter)(nil)

// summaryKinds is the order unit counts are listed in the final summary.
var summaryKinds = []struct {
	kind  extraction.UnitKind
	label string
}{
	{extraction.KindFunctionBlock, "Function blocks:"},
	{extraction.KindDataType, "Data types:"},
	{extraction.KindExternalFunction, "External functions:"},
	{extraction.KindDerivedFunctionBlock, "DFBs:"},
	{extraction.KindProgram, "Programs:"},
}

// CLIProgressReporter implements progress reporting with a progress bar.
type CLIProgressReporter struct {
	out      io.Writer
	verbose  bool
	writeBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to out.
func NewCLIProgressReporter(out io.Writer, verbose bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		out:     out,
		verbose: verbose,
	}
}

func (c *CLIProgressReporter) OnParseComplete(path string) {
	log.Printf("Parsed %s", path)
}

func (c *CLIProgressReporter) OnPassComplete(kind extraction.UnitKind, count int) {
	if kind == extraction.KindProject {
		return
	}
	if c.verbose || count > 0 {
		log.Printf("Found %s %s unit(s)", formatNumber(count), kind)
	}
}

func (c *CLIProgressReporter) OnWriteStart(total int) {
	c.writeBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Writing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnArtifactWritten(relPath string) {
	if c.writeBar != nil {
		c.writeBar.Add(1)
	}
	if c.verbose {
		log.Printf("Wrote %s", relPath)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *pipeline.Stats) {
	c.writeBar = nil

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "✓ Extraction complete: %s units in %.1fs\n",
		formatNumber(stats.Total()), stats.Duration.Seconds())
	fmt.Fprintf(c.out, "  Project: %s (version %s)\n", stats.Project.Name, stats.Project.Version)
	for _, k := range summaryKinds {
		fmt.Fprintf(c.out, "  %-20s %s\n", k.label, formatNumber(stats.Counts[k.kind]))
	}
	fmt.Fprintf(c.out, "  Output: %s (%s files)\n", stats.OutputDir, formatNumber(stats.FilesWritten))

	if len(stats.FilesPruned) > 0 {
		fmt.Fprintf(c.out, "  Pruned: %s stale files\n", formatNumber(len(stats.FilesPruned)))
		if c.verbose {
			for _, p := range stats.FilesPruned {
				fmt.Fprintf(c.out, "    - %s\n", p)
			}
		}
	}
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
