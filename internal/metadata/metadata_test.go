package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const positiveCase = `// Copyright (C) 2017 the contributors. All rights reserved.
/*---
esid: sec-async-function-definitions
description: Async function declaration in statement position
features: [async-functions]
flags: [async]
---*/

async function f() {}
`

const negativeParseCase = `/*---
description: |
  Duplicate parameter names are a syntax error in strict mode
negative:
  phase: parse
  type: SyntaxError
flags: [onlyStrict]
---*/

$DONOTEVALUATE();
function f(a, a) {}
`

const negativeRuntimeCase = `/*---
description: Calling undefined throws
negative:
  phase: runtime
  type: TypeError
---*/
undefined();
`

func TestDecode(t *testing.T) {
	t.Run("positive case", func(t *testing.T) {
		rec, err := Decode([]byte(positiveCase))
		require.NoError(t, err)
		assert.Equal(t, "Async function declaration in statement position", rec.Description)
		assert.Equal(t, "sec-async-function-definitions", rec.ESID)
		assert.Equal(t, []string{"async-functions"}, rec.RequiredFeatures())
		assert.Equal(t, []string{"async"}, rec.Flags)
		assert.Nil(t, rec.Negative)
		assert.True(t, rec.ShouldParse())
		assert.False(t, rec.ExpectFailureAtRuntimeOnly())
	})

	t.Run("negative parse case", func(t *testing.T) {
		rec, err := Decode([]byte(negativeParseCase))
		require.NoError(t, err)
		require.NotNil(t, rec.Negative)
		assert.Equal(t, PhaseParse, rec.Negative.Phase)
		assert.Equal(t, "SyntaxError", rec.Negative.Type)
		assert.False(t, rec.ShouldParse())
		assert.Contains(t, rec.Description, "Duplicate parameter names")
	})

	t.Run("negative runtime case still parses", func(t *testing.T) {
		rec, err := Decode([]byte(negativeRuntimeCase))
		require.NoError(t, err)
		assert.True(t, rec.ShouldParse())
		assert.True(t, rec.ExpectFailureAtRuntimeOnly())
	})

	t.Run("resolution phase still parses", func(t *testing.T) {
		rec, err := Decode([]byte("/*---\nnegative:\n  phase: resolution\n  type: SyntaxError\n---*/"))
		require.NoError(t, err)
		assert.True(t, rec.ShouldParse())
		assert.False(t, rec.ExpectFailureAtRuntimeOnly())
	})
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"no delimiters", "var x = 1;\n", ErrMissingMetadata},
		{"no closing delimiter", "/*---\ndescription: x\n", ErrMissingMetadata},
		{"no opening delimiter", "description: x\n---*/\n", ErrMissingMetadata},
		{"delimiters reversed", "---*/ text /*---", ErrMalformedMetadata},
		{"invalid yaml", "/*---\ndescription: [unterminated\n---*/", ErrMalformedMetadata},
		{"empty block", "/*------*/", ErrMalformedMetadata},
		{"scalar document", "/*---\njust text\n---*/", ErrMalformedMetadata},
		{"negative without phase", "/*---\nnegative:\n  type: SyntaxError\n---*/", ErrMalformedMetadata},
		{"unknown phase", "/*---\nnegative:\n  phase: lexing\n---*/", ErrMalformedMetadata},
		{"features not a list", "/*---\nfeatures: hashbang\n---*/", ErrMalformedMetadata},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Decode([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Nil(t, rec)
		})
	}
}

func TestSkipList_Excluded(t *testing.T) {
	skip := NewSkipList([]string{"top-level-await", "hashbang"})

	feature, excluded := skip.Excluded(&Record{Features: []string{"async-functions", "top-level-await"}})
	assert.True(t, excluded)
	assert.Equal(t, "top-level-await", feature)

	_, excluded = skip.Excluded(&Record{Features: []string{"async-functions"}})
	assert.False(t, excluded)

	_, excluded = skip.Excluded(&Record{})
	assert.False(t, excluded)
}
