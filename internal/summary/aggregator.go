// Package summary accumulates case outcomes into the counters of a run.
package summary

import (
	"sync/atomic"

	"github.com/google/uuid"

	"t262/internal/domain"
)

// Aggregator counts outcomes from concurrently running pipelines.
// Record is safe for concurrent use; Summary must only be called once
// every pipeline has reported.
type Aggregator struct {
	runID string

	run              atomic.Int64
	shouldHavePassed atomic.Int64
	shouldHaveFailed atomic.Int64
	skipped          atomic.Int64
	reparse          atomic.Int64
	reprint          atomic.Int64
	minify           atomic.Int64
	metadataErrors   atomic.Int64
	timedOut         atomic.Int64
}

// NewAggregator creates an Aggregator with a fresh time-ordered run ID
func NewAggregator() *Aggregator {
	return NewAggregatorWithID(uuid.Must(uuid.NewV7()).String())
}

// NewAggregatorWithID creates an Aggregator with a fixed run ID
func NewAggregatorWithID(runID string) *Aggregator {
	return &Aggregator{runID: runID}
}

// RunID returns the identifier of this run
func (a *Aggregator) RunID() string {
	return a.runID
}

// Record counts one outcome
func (a *Aggregator) Record(o domain.Outcome) {
	if o.TimedOut {
		a.timedOut.Add(1)
	}

	switch o.Kind {
	case domain.OutcomeSkipped:
		a.skipped.Add(1)
		return
	case domain.OutcomeMetadataError:
		a.metadataErrors.Add(1)
		return
	case domain.OutcomeParseMismatch:
		if o.ExpectedToParse {
			a.shouldHavePassed.Add(1)
		} else {
			a.shouldHaveFailed.Add(1)
		}
	case domain.OutcomeReparseFailure:
		a.reparse.Add(1)
	case domain.OutcomeReprintMismatch:
		a.reprint.Add(1)
	case domain.OutcomeMinifyFailure:
		a.minify.Add(1)
	}
	a.run.Add(1)
}

// Summary returns a snapshot of the counters
func (a *Aggregator) Summary() domain.RunSummary {
	return domain.RunSummary{
		RunID:            a.runID,
		Run:              int(a.run.Load()),
		ShouldHavePassed: int(a.shouldHavePassed.Load()),
		ShouldHaveFailed: int(a.shouldHaveFailed.Load()),
		Skipped:          int(a.skipped.Load()),
		ReparseFailures:  int(a.reparse.Load()),
		ReprintFailures:  int(a.reprint.Load()),
		MinifyFailures:   int(a.minify.Load()),
		MetadataErrors:   int(a.metadataErrors.Load()),
		TimedOut:         int(a.timedOut.Load()),
	}
}
