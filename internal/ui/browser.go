package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"t262/internal/domain"
	"t262/internal/parser"
)

// Viewer displays the diagnostics of a run
type Viewer interface {
	View(diagnostics []domain.Diagnostic) error
}

// Browser shows the failed cases of the finished run in an interactive TUI
type Browser struct {
	parser *parser.ESBuildParser
}

// NewBrowser creates a new Browser
func NewBrowser(p *parser.ESBuildParser) *Browser {
	return &Browser{parser: p}
}

// View blocks until the user quits the browser
func (b *Browser) View(diagnostics []domain.Diagnostic) error {
	if len(diagnostics) == 0 {
		color.Green("✓ No failed cases to browse")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, d := range diagnostics {
		list.AddItem(listItemText(i, d), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Failed cases (%d) | ↑↓ navigate, → details, ← back, q or Ctrl+C to exit ", len(diagnostics)))

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(body, 0, 1, true)

	showDetails := func(index int) {
		if index >= 0 && index < len(diagnostics) {
			detailsView.SetText(b.formatDetails(diagnostics[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		showDetails(index)
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	showDetails(0)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func listItemText(index int, d domain.Diagnostic) string {
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, tview.Escape(d.Case.RelPath))
}

// formatDetails renders one diagnostic using tview color tags
func (b *Browser) formatDetails(d domain.Diagnostic) string {
	var sb strings.Builder

	title := Title(d.Outcome.Kind)
	if d.Outcome.Kind == domain.OutcomeParseMismatch {
		if d.Outcome.ExpectedToParse {
			title += " (should have parsed)"
		} else {
			title += " (should have been rejected)"
		}
	}
	fmt.Fprintf(&sb, "[red]✗ %s[white]", title)
	if d.Outcome.TimedOut {
		sb.WriteString(" [magenta](timed out)[white]")
	}
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "[cyan]Case: %s[white]\n", tview.Escape(d.Case.RelPath))
	if msg, ok := b.parser.FirstError(d.Stderr); ok {
		if loc := msg.Location(); loc != "" {
			fmt.Fprintf(&sb, "[yellow]Location: %s[white]\n", tview.Escape(loc))
		}
		fmt.Fprintf(&sb, "[yellow]Error: %s[white]\n", tview.Escape(msg.Text))
	}
	sb.WriteString("\n")

	if d.Message != "" {
		fmt.Fprintf(&sb, "%s\n\n", tview.Escape(d.Message))
	}
	if d.Stderr != "" {
		fmt.Fprintf(&sb, "[yellow]Diagnostics:[white]\n%s\n", tview.Escape(d.Stderr))
	}

	return sb.String()
}
