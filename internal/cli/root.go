package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/xef-extract/internal/config"
	"github.com/spf13/cobra"
)

// rootOptions holds the flag values shared by the root command and its subcommands.
type rootOptions struct {
	cfgFile      string
	verbose      bool
	quiet        bool
	watch        bool
	include      []string
	exclude      []string
	strictBodies bool
	prune        bool
	workers      int
}

// NewRootCmd builds the xef-extract command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "xef-extract <input.xef> [output-dir]",
		Short: "Extract source code from Unity Pro / Control Expert XEF exports",
		Long: `xef-extract reads a Unity Pro / Control Expert XML export (.xef) and writes
every code unit it contains to a plain-text file tree:

  <output-dir>/PROJECT_INFO.txt
  <output-dir>/FunctionBlocks/   FBs (.st) and DFBs (_DFB.st)
  <output-dir>/DataTypes/        data types (.ddt)
  <output-dir>/Functions/        external functions (.ef)
  <output-dir>/Programs/         programs and sections (.st)

The output directory defaults to the input's base name plus "_extracted".
Settings are read from .xef-extract.yml in the working directory (or --config)
and XEF_* environment variables; flags win over both.

Examples:
  # Extract next to the current directory
  xef-extract Station.xef

  # Extract into a chosen directory, removing files of deleted units
  xef-extract Station.xef src --prune

  # Only function blocks and the main program, re-run on every save
  xef-extract Station.xef --include 'FB_*' --include MAIN --watch
`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./.xef-extract.yml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	flags := cmd.Flags()
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Disable progress bars and non-error output")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Watch the input file and re-extract on change")
	flags.StringArrayVar(&opts.include, "include", nil, "Only extract units whose name matches this glob (repeatable)")
	flags.StringArrayVar(&opts.exclude, "exclude", nil, "Skip units whose name matches this glob (repeatable)")
	flags.BoolVar(&opts.strictBodies, "strict-bodies", false, "Fail when a unit carries more than one body")
	flags.BoolVar(&opts.prune, "prune", false, "Remove stale files of units no longer in the export")
	flags.IntVar(&opts.workers, "workers", 1, "Number of parallel file writers")

	cmd.AddCommand(newCleanCmd(opts), newVersionCmd())
	return cmd
}

// Execute builds the command tree and runs it.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration from cfgFile, or from the working directory when empty.
func loadConfig(cfgFile string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewFileLoader(cfgFile).Load()
	} else {
		rootDir, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", wdErr)
		}
		cfg, err = config.LoadConfigFromDir(rootDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
