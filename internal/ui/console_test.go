package ui

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"t262/internal/domain"
)

func TestConsole_Diagnose(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut)

	c.Diagnose(domain.Diagnostic{
		Case:    domain.TestCase{RelPath: "a.js"},
		Outcome: domain.Outcome{Kind: domain.OutcomeReparseFailure},
		Message: "!!! REPARSE ERROR: a.js !!!",
		Stderr:  "✘ [ERROR] Unexpected end of file",
	})
	c.Diagnose(domain.Diagnostic{
		Outcome: domain.Outcome{Kind: domain.OutcomeParseMismatch},
		Stderr:  "b.js:1:1: error: bad\n",
	})

	assert.Equal(t,
		"!!! REPARSE ERROR: a.js !!!\n✘ [ERROR] Unexpected end of file\nb.js:1:1: error: bad\n",
		out.String())
	assert.Empty(t, errOut.String())
}

func TestConsole_TimedOutAndWarn(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut)

	c.TimedOut(domain.TestCase{RelPath: "slow.js"}, "reparse")
	c.TimedOut(domain.TestCase{RelPath: "slower.js"}, "")
	c.Warn("Missing YAML metadata: %s", "x.js")

	assert.Equal(t, "slow.js: TIMED OUT! (reparse)\nslower.js: TIMED OUT!\n", out.String())
	assert.Equal(t, "Missing YAML metadata: x.js\n", errOut.String())
}

func TestConsole_ConcurrentWritesDoNotInterleave(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, &out)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Diagnose(domain.Diagnostic{
				Message: fmt.Sprintf("begin %d", i),
				Stderr:  fmt.Sprintf("line 1 of %d\nline 2 of %d\nend %d\n", i, i, i),
			})
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 80)
	for i := 0; i < len(lines); i += 4 {
		var n int
		_, err := fmt.Sscanf(lines[i], "begin %d", &n)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("line 1 of %d", n), lines[i+1])
		assert.Equal(t, fmt.Sprintf("line 2 of %d", n), lines[i+2])
		assert.Equal(t, fmt.Sprintf("end %d", n), lines[i+3])
	}
}

func TestRecorderAndTee(t *testing.T) {
	var out bytes.Buffer
	rec := NewRecorder()
	sink := Tee(NewConsole(&out, &out), rec)

	sink.Diagnose(domain.Diagnostic{Case: domain.TestCase{RelPath: "z.js"}, Message: "z"})
	sink.Diagnose(domain.Diagnostic{Case: domain.TestCase{RelPath: "a.js"}, Message: "a"})
	sink.TimedOut(domain.TestCase{RelPath: "t.js"}, "")

	got := rec.Diagnostics()
	require.Len(t, got, 2)
	assert.Equal(t, "a.js", got[0].Case.RelPath)
	assert.Equal(t, "z.js", got[1].Case.RelPath)
	assert.Equal(t, "z\na\nt.js: TIMED OUT!\n", out.String())
}
