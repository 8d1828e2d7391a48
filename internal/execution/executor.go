package execution

import (
	"context"

	"t262/internal/domain"
)

// Executor runs a corpus and returns the run's counters
type Executor interface {
	Run(ctx context.Context, cases []domain.TestCase) (domain.RunSummary, error)
}

// Invoker runs the tool under test once.
// A non-nil error means the invocation could not be carried out at all
// (the tool could not start, or ctx was cancelled); a failing or timed-out
// tool is reported through the result.
type Invoker interface {
	Invoke(ctx context.Context, inv domain.Invocation) (domain.InvocationResult, error)
}

// CasePipeline classifies one case
type CasePipeline interface {
	Run(ctx context.Context, tc domain.TestCase) (domain.Outcome, error)
}

// Reporter receives case-level output at classification time
type Reporter interface {
	Diagnose(d domain.Diagnostic)
	TimedOut(tc domain.TestCase, stage string)
	Warn(format string, args ...any)
}

// Progress is notified after every completed case
type Progress interface {
	Update(completed, failed, skipped int)
	Finish()
}
