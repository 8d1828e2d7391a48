package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"t262/internal/config"
	"t262/internal/discovery"
	"t262/internal/metadata"
	"t262/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, err := lc.scanner.Scan(lc.config.GetTestPath())
	if err != nil {
		return err
	}
	cases = lc.filter.FilterByName(cases, lc.config.Flags.NameFilter)

	if len(cases) == 0 {
		color.Yellow("No cases found")
		return nil
	}

	entries := make([]ui.ListEntry, 0, len(cases))
	if !lc.config.Flags.Classify {
		for _, tc := range cases {
			entries = append(entries, ui.ListEntry{Case: tc})
		}
		lc.formatter.PrintCaseList(entries, false)
		return nil
	}

	classifier := discovery.NewClassifier(metadata.NewSkipList(lc.config.SkipFeatures))
	for _, c := range classifier.Classify(cases) {
		entries = append(entries, ui.ListEntry{
			Case:  c.Case,
			Label: c.Label,
			Skip:  c.Skip,
			Error: c.Reason != nil,
		})
	}
	lc.formatter.PrintCaseList(entries, true)
	return nil
}
