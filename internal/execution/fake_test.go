package execution

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"t262/internal/config"
	"t262/internal/domain"
	"t262/internal/metadata"
	"t262/internal/parser"
	"t262/internal/storage"
)

// fakeTool stands in for the real tool. Cases steer it with "// @tool <directive>"
// lines, which it copies into its output so later stages see them too.
//
//	reject           fail, naming the input file on stderr
//	reject-quietly   fail without naming the input file
//	hang             time out
//	reject-reprint   print output that the next parse rejects
//	drift            every print appends a line, so reprints never converge
//	reject-minify    fail whenever asked to minify
//	hang-minify      time out whenever asked to minify
//	reject-minified  minified output is rejected when minified again
type fakeTool struct {
	delay time.Duration

	mu    sync.Mutex
	calls []domain.Invocation

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeTool) Invoke(ctx context.Context, inv domain.Invocation) (domain.InvocationResult, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, inv)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err := ctx.Err(); err != nil {
		return domain.InvocationResult{}, err
	}

	data, err := os.ReadFile(inv.Input)
	if err != nil {
		return domain.InvocationResult{}, err
	}
	text := string(data)
	has := func(directive string) bool {
		return strings.Contains(text, "@tool "+directive+"\n")
	}

	fail := func(stderr string) (domain.InvocationResult, error) {
		_ = os.Remove(inv.Output)
		return domain.InvocationResult{Stderr: stderr}, nil
	}

	switch {
	case has("hang"), inv.Minify && has("hang-minify"):
		_ = os.Remove(inv.Output)
		return domain.InvocationResult{TimedOut: true}, nil
	case has("reject"):
		return fail(fmt.Sprintf("✘ [ERROR] Unexpected token\n\n    %s:1:1:\n", filepath.Base(inv.Input)))
	case has("reject-quietly"):
		return fail("internal error\n")
	case inv.Minify && has("reject-minify"):
		return fail("minify crashed\n")
	}

	out := text
	if !inv.Minify {
		out = strings.Replace(out, "@tool reject-reprint\n", "@tool reject\n", 1)
		if has("drift") {
			out += "// drift\n"
		}
	} else {
		out = strings.Replace(out, "@tool reject-minified\n", "@tool reject-minify\n", 1)
	}
	if err := os.WriteFile(inv.Output, []byte(out), 0644); err != nil {
		return domain.InvocationResult{}, err
	}
	return domain.InvocationResult{ExitSucceeded: true}, nil
}

func (f *fakeTool) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeTool) callsFor(input string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Input == input {
			n++
		}
	}
	return n
}

type recordingReporter struct {
	mu          sync.Mutex
	diagnostics []domain.Diagnostic
	timeouts    []string
	warnings    []string
}

func (r *recordingReporter) Diagnose(d domain.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

func (r *recordingReporter) TimedOut(tc domain.TestCase, stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeouts = append(r.timeouts, tc.RelPath+" "+stage)
}

func (r *recordingReporter) Warn(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

const (
	positiveMeta      = "description: plain statement"
	negativeParseMeta = "description: must be rejected\nnegative:\n  phase: parse\n  type: SyntaxError"
	runtimeMeta       = "description: throws when run\nnegative:\n  phase: runtime\n  type: TypeError"
	skippedMeta       = "description: uses await at top level\nfeatures: [top-level-await]"
)

// writeCase writes a case file with the given front matter and fake tool directives
func writeCase(t *testing.T, dir, name, front string, directives ...string) domain.TestCase {
	t.Helper()
	var b strings.Builder
	b.WriteString("// Copyright (C) 2020 the contributors. All rights reserved.\n")
	b.WriteString("/*---\n" + front + "\n---*/\n")
	for _, d := range directives {
		b.WriteString("// @tool " + d + "\n")
	}
	b.WriteString("var x = 1;\n")

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return domain.NewTestCase(dir, path)
}

func newTestPipeline(t *testing.T, invoker Invoker) (*Pipeline, *recordingReporter) {
	t.Helper()
	cfg := config.New()
	cfg.ScratchDir = t.TempDir()
	reporter := &recordingReporter{}
	p := NewPipeline(
		invoker,
		storage.NewScratchStorage(cfg),
		metadata.NewSkipList(cfg.SkipFeatures),
		parser.NewESBuildParser(),
		reporter,
	)
	return p, reporter
}
