package domain

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation marks faults that break the runner's own assumptions.
// Any error wrapping it aborts the whole run.
var ErrInvariantViolation = errors.New("invariant violation")

// InvariantError reports that the tool rejected input it had already accepted
type InvariantError struct {
	Case   string // Corpus-relative path
	Stage  string
	Stderr string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s failed on input the tool already accepted", e.Case, e.Stage)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

// Diagnostic is the human-readable detail printed when a case is classified as a failure
type Diagnostic struct {
	Case    TestCase
	Outcome Outcome
	Message string // One-line headline
	Stderr  string // Tool diagnostics, may be empty
}

// ToolMessage is one error or warning reported by the tool on its diagnostic stream
type ToolMessage struct {
	Severity string // "error" or "warning"
	Text     string
	File     string
	Line     int
	Column   int
}

// Location formats file:line:column, or the bare file when no position is known
func (m ToolMessage) Location() string {
	if m.Line == 0 {
		return m.File
	}
	return fmt.Sprintf("%s:%d:%d", m.File, m.Line, m.Column)
}
