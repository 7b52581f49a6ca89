package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvp-joe/xef-extract/internal/config"
	"github.com/mvp-joe/xef-extract/internal/extraction"
	"github.com/mvp-joe/xef-extract/internal/pipeline"
	"github.com/spf13/cobra"
)

func runExtract(cmd *cobra.Command, opts *rootOptions, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nInterrupted! Stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	cfg, err := loadConfig(opts.cfgFile)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd, opts, cfg); err != nil {
		return err
	}

	input := args[0]
	outputDir := ""
	if len(args) > 1 {
		outputDir = args[1]
	}

	runOpts, err := pipeline.OptionsFromConfig(cfg, input, outputDir)
	if err != nil {
		return err
	}

	var progress pipeline.ProgressReporter = &pipeline.NoOpProgressReporter{}
	if !opts.quiet {
		progress = NewCLIProgressReporter(cmd.OutOrStdout(), opts.verbose)
	}

	if opts.watch {
		if !opts.quiet {
			log.Printf("Watching %s for changes (Ctrl+C to stop)", input)
		}
		debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
		return pipeline.Watch(ctx, runOpts, progress, debounce)
	}

	_, err = pipeline.Run(ctx, runOpts, progress)
	return err
}

// applyFlagOverrides copies explicitly set flags over the loaded configuration
// and re-validates the result.
func applyFlagOverrides(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("include") {
		cfg.Filter.Include = opts.include
	}
	if flags.Changed("exclude") {
		cfg.Filter.Exclude = opts.exclude
	}
	if opts.strictBodies {
		cfg.Extraction.BodyPolicy = extraction.BodyPolicyStrict.String()
	}
	if flags.Changed("prune") {
		cfg.Output.Prune = opts.prune
	}
	if flags.Changed("workers") {
		cfg.Output.Workers = opts.workers
	}
	return config.Validate(cfg)
}
