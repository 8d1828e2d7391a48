package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"t262/internal/config"
	"t262/internal/discovery"
	"t262/internal/domain"
	"t262/internal/execution"
	"t262/internal/metadata"
	"t262/internal/parser"
	"t262/internal/storage"
	"t262/internal/ui"
)

// ErrConformanceFailures is returned when a completed run has failing cases
var ErrConformanceFailures = errors.New("conformance failures")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	parser    *parser.ESBuildParser
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	parser *parser.ESBuildParser,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		parser:    parser,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Discover cases
	cases, err := rc.scanner.Scan(rc.config.GetTestPath())
	if err != nil {
		return err
	}
	cases = rc.filter.FilterByName(cases, rc.config.Flags.NameFilter)

	if len(cases) == 0 {
		color.Yellow("No cases to run")
		return nil
	}

	recorder := ui.NewRecorder()
	scheduler := rc.newScheduler(ui.Tee(ui.NewConsole(os.Stdout, os.Stderr), recorder))
	if !rc.config.Flags.NoProgress {
		scheduler.SetProgress(ui.NewProgressBar(len(cases)))
	}

	summary, err := scheduler.Run(ctx, cases)
	if err != nil {
		rc.formatter.PrintFault(err)
		if errors.Is(err, domain.ErrInvariantViolation) {
			return fmt.Errorf("run aborted: %w", err)
		}
		return err
	}

	rc.formatter.PrintReport(summary)

	if rc.config.Flags.Browse {
		if err := rc.viewer.View(recorder.Diagnostics()); err != nil {
			return fmt.Errorf("failed to open failure browser: %w", err)
		}
	}

	if summary.Failures() > 0 {
		return fmt.Errorf("%w: %d of %d cases", ErrConformanceFailures, summary.Failures(), summary.Run)
	}
	return nil
}

// newScheduler wires a scheduler from the current configuration
func (rc *RunCommand) newScheduler(reporter execution.Reporter) *execution.Scheduler {
	pipeline := execution.NewPipeline(
		execution.NewToolInvoker(rc.config),
		storage.NewScratchStorage(rc.config),
		metadata.NewSkipList(rc.config.SkipFeatures),
		rc.parser,
		reporter,
	)
	return execution.NewScheduler(rc.config, pipeline)
}
