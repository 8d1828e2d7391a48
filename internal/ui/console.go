package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"t262/internal/domain"
)

// Sink receives case-level reports while a run is in progress
type Sink interface {
	Diagnose(d domain.Diagnostic)
	TimedOut(tc domain.TestCase, stage string)
	Warn(format string, args ...any)
}

// Console writes case diagnostics as they happen.
// Each report is written under one lock so lines from concurrent cases never interleave.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

// NewConsole creates a Console writing diagnostics to out and warnings to errOut
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{out: out, err: errOut}
}

// Diagnose prints the headline of a failed case followed by the tool's diagnostics
func (c *Console) Diagnose(d domain.Diagnostic) {
	var b strings.Builder
	if d.Message != "" {
		headline := color.New(color.FgRed)
		if d.Outcome.Kind == domain.OutcomeParseMismatch {
			headline = color.New(color.FgYellow)
		}
		headline.Fprintln(&b, d.Message)
	}
	if d.Stderr != "" {
		b.WriteString(d.Stderr)
		if !strings.HasSuffix(d.Stderr, "\n") {
			b.WriteString("\n")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, b.String())
}

// TimedOut reports that an invocation was killed at the deadline
func (c *Console) TimedOut(tc domain.TestCase, stage string) {
	line := color.New(color.FgMagenta).Sprintf("%s: TIMED OUT!", tc.RelPath)
	if stage != "" {
		line += fmt.Sprintf(" (%s)", stage)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

// Warn prints a warning line to the error stream
func (c *Console) Warn(format string, args ...any) {
	line := color.New(color.FgYellow).Sprintf(format, args...)

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.err, line)
}

// Recorder keeps the diagnostics of the current run in memory for the browser
type Recorder struct {
	mu          sync.Mutex
	diagnostics []domain.Diagnostic
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Diagnose stores d
func (r *Recorder) Diagnose(d domain.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

// TimedOut is a no-op; timeouts surface through the diagnostic of the case.
func (r *Recorder) TimedOut(domain.TestCase, string) {}

// Warn is a no-op; warnings are not case failures.
func (r *Recorder) Warn(string, ...any) {}

// Diagnostics returns the stored diagnostics sorted by case path
func (r *Recorder) Diagnostics() []domain.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	sortDiagnostics(out)
	return out
}

type tee []Sink

// Tee fans reports out to every sink in order
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) Diagnose(d domain.Diagnostic) {
	for _, s := range t {
		s.Diagnose(d)
	}
}

func (t tee) TimedOut(tc domain.TestCase, stage string) {
	for _, s := range t {
		s.TimedOut(tc, stage)
	}
}

func (t tee) Warn(format string, args ...any) {
	for _, s := range t {
		s.Warn(format, args...)
	}
}
