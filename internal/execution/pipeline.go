package execution

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"t262/internal/domain"
	"t262/internal/metadata"
	"t262/internal/parser"
	"t262/internal/storage"
)

// Stage names, used in timeout reports and invariant errors
const (
	StageParse         = "parse"
	StageReparse       = "reparse"
	StageMinify        = "minify"
	StageMinifyReparse = "minify-reparse"
)

var _ CasePipeline = (*Pipeline)(nil)

// Pipeline drives one case through parse, reparse, minify and minify-reparse.
// Stages run strictly in order; each one reads the previous stage's output.
type Pipeline struct {
	invoker  Invoker
	storage  storage.Storage
	skip     metadata.SkipList
	parser   parser.Parser
	reporter Reporter
}

// NewPipeline creates a new Pipeline
func NewPipeline(invoker Invoker, st storage.Storage, skip metadata.SkipList, p parser.Parser, reporter Reporter) *Pipeline {
	return &Pipeline{
		invoker:  invoker,
		storage:  st,
		skip:     skip,
		parser:   p,
		reporter: reporter,
	}
}

// Run classifies tc. Conformance failures are outcomes, not errors; an error
// means the run itself can no longer be trusted and must stop.
func (p *Pipeline) Run(ctx context.Context, tc domain.TestCase) (domain.Outcome, error) {
	content, err := os.ReadFile(tc.Path)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("read case: %w", err)
	}

	record, err := metadata.Decode(content)
	if err != nil {
		p.reporter.Warn("%s: %v", tc.RelPath, err)
		return domain.Outcome{Kind: domain.OutcomeMetadataError}, nil
	}

	if _, excluded := p.skip.Excluded(record); excluded {
		return domain.Outcome{Kind: domain.OutcomeSkipped}, nil
	}

	artifacts, err := p.storage.Artifacts(tc)
	if err != nil {
		return domain.Outcome{}, err
	}

	shouldParse := record.ShouldParse()
	parsed, err := p.invoke(ctx, tc, StageParse, domain.Invocation{Input: tc.Path, Output: artifacts.Print})
	if err != nil {
		return domain.Outcome{}, err
	}

	if parsed.ExitSucceeded != shouldParse {
		outcome := domain.Outcome{
			Kind:            domain.OutcomeParseMismatch,
			ExpectedToParse: shouldParse,
			TimedOut:        parsed.TimedOut,
		}
		p.reporter.Diagnose(p.parseMismatch(tc, record, outcome, parsed))
		return outcome, nil
	}

	// A case that must be rejected has no output to round-trip
	if !shouldParse {
		return domain.Outcome{Kind: domain.OutcomeMatched, TimedOut: parsed.TimedOut}, nil
	}

	reparsed, err := p.invoke(ctx, tc, StageReparse, domain.Invocation{Input: artifacts.Print, Output: artifacts.Reprint})
	if err != nil {
		return domain.Outcome{}, err
	}
	if !reparsed.ExitSucceeded {
		outcome := domain.Outcome{Kind: domain.OutcomeReparseFailure, TimedOut: reparsed.TimedOut}
		p.reporter.Diagnose(domain.Diagnostic{
			Case:    tc,
			Outcome: outcome,
			Message: fmt.Sprintf("!!! REPARSE ERROR: %s !!!", tc.RelPath),
			Stderr:  reparsed.Stderr,
		})
		return outcome, nil
	}

	printed, err := os.ReadFile(artifacts.Print)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("read print output: %w", err)
	}
	reprinted, err := os.ReadFile(artifacts.Reprint)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("read reprint output: %w", err)
	}
	if !bytes.Equal(printed, reprinted) {
		outcome := domain.Outcome{Kind: domain.OutcomeReprintMismatch}
		p.reporter.Diagnose(domain.Diagnostic{
			Case:    tc,
			Outcome: outcome,
			Message: fmt.Sprintf("!!! REPRINT ERROR: %s !!!", tc.RelPath),
			Stderr:  describeDifference(printed, reprinted),
		})
		return outcome, nil
	}

	minified, err := p.invoke(ctx, tc, StageMinify, domain.Invocation{Input: tc.Path, Output: artifacts.Print, Minify: true})
	if err != nil {
		return domain.Outcome{}, err
	}
	if !minified.ExitSucceeded {
		if !minified.TimedOut {
			return domain.Outcome{}, &domain.InvariantError{Case: tc.RelPath, Stage: StageMinify, Stderr: minified.Stderr}
		}
		// A timeout is the stage's failure, not a broken assumption about the tool
		outcome := domain.Outcome{Kind: domain.OutcomeMinifyFailure, TimedOut: true}
		p.reporter.Diagnose(domain.Diagnostic{
			Case:    tc,
			Outcome: outcome,
			Message: fmt.Sprintf("!!! MINIFY ERROR: %s !!!", tc.RelPath),
		})
		return outcome, nil
	}

	reminified, err := p.invoke(ctx, tc, StageMinifyReparse, domain.Invocation{Input: artifacts.Print, Output: artifacts.Reprint, Minify: true})
	if err != nil {
		return domain.Outcome{}, err
	}
	if !reminified.ExitSucceeded {
		outcome := domain.Outcome{Kind: domain.OutcomeMinifyFailure, TimedOut: reminified.TimedOut}
		p.reporter.Diagnose(domain.Diagnostic{
			Case:    tc,
			Outcome: outcome,
			Message: fmt.Sprintf("!!! MINIFY ERROR: %s !!!", tc.RelPath),
			Stderr:  reminified.Stderr,
		})
		return outcome, nil
	}

	return domain.Outcome{Kind: domain.OutcomeMatched}, nil
}

func (p *Pipeline) invoke(ctx context.Context, tc domain.TestCase, stage string, inv domain.Invocation) (domain.InvocationResult, error) {
	result, err := p.invoker.Invoke(ctx, inv)
	if err != nil {
		return result, fmt.Errorf("%s stage: %w", stage, err)
	}
	if result.TimedOut {
		p.reporter.TimedOut(tc, stage)
	}
	return result, nil
}

// parseMismatch prints the tool's own diagnostics when they point at the case,
// and falls back to the case description otherwise.
func (p *Pipeline) parseMismatch(tc domain.TestCase, record *metadata.Record, outcome domain.Outcome, result domain.InvocationResult) domain.Diagnostic {
	d := domain.Diagnostic{Case: tc, Outcome: outcome}
	if result.Stderr != "" && p.parser.MentionsFile(result.Stderr, tc.Path) {
		d.Stderr = result.Stderr
		return d
	}
	d.Message = fmt.Sprintf("%s: error: %s", tc.RelPath, strings.TrimSpace(record.Description))
	return d
}

// describeDifference locates the first byte where two prints disagree
func describeDifference(a, b []byte) string {
	n := min(len(a), len(b))
	offset := n
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			offset = i
			break
		}
	}
	line := bytes.Count(a[:offset], []byte("\n")) + 1
	return fmt.Sprintf("outputs differ at byte %d (line %d): first print is %d bytes, reprint is %d bytes\n",
		offset, line, len(a), len(b))
}
