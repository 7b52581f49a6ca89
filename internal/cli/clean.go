package cli

import (
	"fmt"

	"github.com/mvp-joe/xef-extract/internal/output"
	"github.com/mvp-joe/xef-extract/internal/pipeline"
	"github.com/spf13/cobra"
)

func newCleanCmd(root *rootOptions) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "clean <input.xef> [output-dir]",
		Short: "Remove files generated by a previous extraction",
		Long: `Clean removes what xef-extract generated for an input: the .st, .ddt and .ef
files in the category directories, PROJECT_INFO.txt and any leftover temp
directory. Other files are kept; a category directory, and the output
directory itself, is removed only when nothing else is left in it.

The output directory is resolved exactly as for extraction, so the same
arguments and configuration select the same tree. The input file does not
need to exist.

Examples:
  # Clean the default output directory (Station_extracted)
  xef-extract clean Station.xef

  # Clean an explicit output directory
  xef-extract clean Station.xef src
`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.cfgFile)
			if err != nil {
				return err
			}

			outputDir := pipeline.DefaultOutputDir(args[0], cfg.Output.Suffix)
			if len(args) > 1 {
				outputDir = args[1]
			}

			removed, err := output.Clean(outputDir, cfg.Output.Layout, cfg.Output.Extensions)
			if err != nil {
				return fmt.Errorf("failed to clean %s: %w", outputDir, err)
			}

			if !quiet {
				if removed == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Nothing to clean in %s\n", outputDir)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleaned %s (%s files)\n", outputDir, formatNumber(removed))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress output messages")
	return cmd
}
