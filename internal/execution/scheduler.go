package execution

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"t262/internal/config"
	"t262/internal/domain"
	"t262/internal/summary"
)

var _ Executor = (*Scheduler)(nil)

// Scheduler runs a case pipeline over the corpus with a fixed number of workers
type Scheduler struct {
	pipeline      CasePipeline
	workers       int
	progress      Progress
	newAggregator func() *summary.Aggregator
}

// NewScheduler creates a new Scheduler
func NewScheduler(cfg *config.Config, pipeline CasePipeline) *Scheduler {
	return &Scheduler{
		pipeline:      pipeline,
		workers:       cfg.Processors,
		newAggregator: summary.NewAggregator,
	}
}

// SetProgress sets the progress bar for the scheduler
func (s *Scheduler) SetProgress(progress Progress) {
	s.progress = progress
}

// Run sends every case through the pipeline exactly once, with at most
// workers pipelines in flight. It returns only after every started pipeline
// has finished. The first pipeline error cancels the remaining work and is
// returned instead of a summary.
func (s *Scheduler) Run(ctx context.Context, cases []domain.TestCase) (domain.RunSummary, error) {
	agg := s.newAggregator()
	startTime := time.Now()

	workerCount := s.workers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(cases) && len(cases) > 0 {
		workerCount = len(cases)
	}

	g, ctx := errgroup.WithContext(ctx)
	queue := make(chan domain.TestCase)

	g.Go(func() error {
		defer close(queue)
		for _, tc := range cases {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case queue <- tc:
			}
		}
		return nil
	})

	var mu sync.Mutex
	var completed, failed, skipped int

	for i := 1; i <= workerCount; i++ {
		g.Go(func() error {
			for tc := range queue {
				outcome, err := s.pipeline.Run(ctx, tc)
				if err != nil {
					return fmt.Errorf("case %s: %w", tc.RelPath, err)
				}
				agg.Record(outcome)

				mu.Lock()
				completed++
				if outcome.Failed() {
					failed++
				}
				if outcome.Kind == domain.OutcomeSkipped {
					skipped++
				}
				if s.progress != nil {
					s.progress.Update(completed, failed, skipped)
				}
				mu.Unlock()
			}
			return nil
		})
	}

	err := g.Wait()
	if s.progress != nil {
		s.progress.Finish()
	}
	if err != nil {
		return domain.RunSummary{}, err
	}

	result := agg.Summary()
	result.Discovered = len(cases)
	result.Workers = workerCount
	result.Duration = time.Since(startTime)
	return result, nil
}
