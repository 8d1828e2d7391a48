package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"t262/internal/domain"
)

var titleCaser = cases.Title(language.English)

// Title returns the display label of an outcome kind, e.g. "Reprint Mismatch"
func Title(kind domain.OutcomeKind) string {
	return titleCaser.String(kind.String())
}

// ListEntry is one row of the list command
type ListEntry struct {
	Case  domain.TestCase
	Label string // Classification preview, e.g. "positive" or "skipped (hashbang)"
	Skip  bool
	Error bool
}

// Formatter formats and displays run output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintReport prints the final counters of a completed run.
// The counter lines keep a fixed "label: count" shape so other scripts can scrape them.
func (f *Formatter) PrintReport(s domain.RunSummary) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(f.out, "run %s (%d workers, %.2fs)\n", s.RunID, s.Workers, s.Duration.Seconds())

	fmt.Fprintf(f.out, "tests ran: %d\n", s.Run)
	fmt.Fprintf(f.out, "  tests incorrectly failed: %d\n", s.ShouldHavePassed)
	fmt.Fprintf(f.out, "  tests incorrectly passed: %d\n", s.ShouldHaveFailed)
	fmt.Fprintf(f.out, "tests skipped: %d\n", s.Skipped)
	fmt.Fprintf(f.out, "reparse failures: %d\n", s.ReparseFailures)
	fmt.Fprintf(f.out, "reprint failures: %d\n", s.ReprintFailures)
	fmt.Fprintf(f.out, "minify failures: %d\n", s.MinifyFailures)
	if s.MetadataErrors > 0 {
		fmt.Fprintf(f.out, "metadata errors: %d\n", s.MetadataErrors)
	}
	if s.TimedOut > 0 {
		fmt.Fprintf(f.out, "timeouts: %d\n", s.TimedOut)
	}

	fmt.Fprintln(f.out)
	if n := s.Failures(); n == 0 {
		color.New(color.FgGreen).Fprintf(f.out, "✓ All %d case(s) conform\n", s.Run)
	} else {
		color.New(color.FgRed).Fprintf(f.out, "✗ %d of %d case(s) failed\n", n, s.Run)
	}
}

// PrintFault prints the report for a run aborted by an internal fault
func (f *Formatter) PrintFault(err error) {
	red := color.New(color.FgRed)
	fmt.Fprintln(f.out)
	red.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	red.Fprintln(f.out, "║                        Unhandled fault                        ║")
	red.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	red.Fprintf(f.out, "%v\n", err)
	fmt.Fprintln(f.out, "The run was aborted; no counts were reported.")
}

// PrintCaseList prints discovered cases with their classification preview
func (f *Formatter) PrintCaseList(entries []ListEntry, withLabels bool) {
	var skipped, errored int
	for _, e := range entries {
		if !withLabels {
			fmt.Fprintln(f.out, e.Case.RelPath)
			continue
		}
		label := color.New(color.FgGreen)
		switch {
		case e.Error:
			label = color.New(color.FgRed)
			errored++
		case e.Skip:
			label = color.New(color.FgYellow)
			skipped++
		}
		fmt.Fprintf(f.out, "%s  ", e.Case.RelPath)
		label.Fprintln(f.out, e.Label)
	}

	fmt.Fprintln(f.out)
	color.New(color.FgCyan).Fprintf(f.out, "%d case(s) found", len(entries))
	if withLabels {
		fmt.Fprintf(f.out, ", %d skipped, %d with metadata errors", skipped, errored)
	}
	fmt.Fprintln(f.out)
}

func sortDiagnostics(ds []domain.Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Case.RelPath < ds[j].Case.RelPath
	})
}
