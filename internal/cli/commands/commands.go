package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"t262/internal/cli"
	"t262/internal/config"
	"t262/internal/discovery"
	"t262/internal/parser"
	"t262/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	List *ListCommand
}

// NewCommands creates all commands with dependencies. Components that depend on
// flag or environment values are built when a command executes.
func NewCommands(cfg *config.Config) *Commands {
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	esbuildParser := parser.NewESBuildParser()
	formatter := ui.NewFormatter(os.Stdout)
	browser := ui.NewBrowser(esbuildParser)

	return &Commands{
		Run:  NewRunCommand(cfg, scanner, filter, esbuildParser, formatter, browser),
		List: NewListCommand(cfg, scanner, filter, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Update config with env and flags after parsing
	applyConfig := func(cmd *cobra.Command, args []string) error {
		if err := cfg.LoadEnv(); err != nil {
			return err
		}
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:          "run",
		Short:        "Run the conformance corpus through the tool",
		Long:         "Discover cases, run each through parse, reparse, minify and minify-reparse using parallel workers, and report the counts",
		RunE:         c.Run.Execute,
		PreRunE:      applyConfig,
		SilenceUsage: true,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, fmt.Sprintf("Number of cases processed concurrently (default %d)", config.DefaultProcessors))
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the corpus directory")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g., '*arrow*' or 'language/statements/class')")
	runCmd.Flags().StringVar(&flags.Tool, "tool", "", "Tool binary to test (default \""+config.DefaultToolPath+"\")")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Deadline for a single tool invocation (default "+config.DefaultTimeout.String()+")")
	runCmd.Flags().StringVar(&flags.ScratchDir, "scratch-dir", "", "Directory for stage outputs (default <temp dir>/"+config.DefaultScratchDirName+")")
	runCmd.Flags().StringSliceVar(&flags.SkipFeatures, "skip-feature", nil, "Also skip cases requiring this feature")
	runCmd.Flags().StringSliceVar(&flags.RunFeatures, "run-feature", nil, "Run cases requiring this feature even if it is skipped by default")
	runCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Do not draw the progress bar")
	runCmd.Flags().BoolVar(&flags.Browse, "browse", false, "Browse the failed cases when the run finishes")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List discovered cases",
		Long:         "Scan and list the corpus without invoking the tool",
		RunE:         c.List.Execute,
		PreRunE:      applyConfig,
		SilenceUsage: true,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g., '*arrow*' or 'language/statements/class')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the corpus directory")
	listCmd.Flags().BoolVarP(&flags.Classify, "classify", "c", false, "Show how each case would be classified from its metadata")
	listCmd.Flags().StringSliceVar(&flags.SkipFeatures, "skip-feature", nil, "Also skip cases requiring this feature")
	listCmd.Flags().StringSliceVar(&flags.RunFeatures, "run-feature", nil, "Run cases requiring this feature even if it is skipped by default")
	rootCmd.AddCommand(listCmd)
}
