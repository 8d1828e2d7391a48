package domain

import "time"

// Invocation describes one run of the external tool
type Invocation struct {
	Input  string // File handed to the tool
	Output string // Destination passed as --outfile
	Minify bool   // Adds --minify
}

// InvocationResult is the outcome of a single tool run
type InvocationResult struct {
	ExitSucceeded bool          // Tool exited with status 0
	Stderr        string        // Diagnostic stream
	TimedOut      bool          // Killed at the deadline
	Duration      time.Duration // Wall-clock time until exit or kill
}

// RunSummary holds the final counters of a run
type RunSummary struct {
	RunID            string        `json:"run_id"`
	Discovered       int           `json:"discovered"`
	Run              int           `json:"run"`
	ShouldHavePassed int           `json:"should_have_passed"`
	ShouldHaveFailed int           `json:"should_have_failed"`
	Skipped          int           `json:"skipped"`
	ReparseFailures  int           `json:"reparse_failures"`
	ReprintFailures  int           `json:"reprint_failures"`
	MinifyFailures   int           `json:"minify_failures"`
	MetadataErrors   int           `json:"metadata_errors"`
	TimedOut         int           `json:"timed_out"`
	Workers          int           `json:"workers"`
	Duration         time.Duration `json:"duration"`
}

// Failures returns the number of conformance failures of any kind
func (s RunSummary) Failures() int {
	return s.ShouldHavePassed + s.ShouldHaveFailed + s.ReparseFailures + s.ReprintFailures + s.MinifyFailures
}
