// Package metadata decodes the expectation a test case declares in its front matter.
package metadata

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	openDelimiter  = "/*---"
	closeDelimiter = "---*/"

	// PhaseParse marks a case the tool must reject while parsing
	PhaseParse = "parse"
	// PhaseRuntime marks a case that parses but fails when executed
	PhaseRuntime = "runtime"
)

var (
	// ErrMissingMetadata means one of the front matter delimiters is absent
	ErrMissingMetadata = errors.New("missing YAML metadata")
	// ErrMalformedMetadata means the front matter could not be decoded
	ErrMalformedMetadata = errors.New("malformed YAML metadata")
)

// Record is the decoded front matter of one case
type Record struct {
	Description string    `yaml:"description"`
	Info        string    `yaml:"info"`
	ESID        string    `yaml:"esid"`
	Negative    *Negative `yaml:"negative"`
	Features    []string  `yaml:"features"`
	Flags       []string  `yaml:"flags"`
	Includes    []string  `yaml:"includes"`
}

// Negative describes an expected failure
type Negative struct {
	Phase string `yaml:"phase"`
	Type  string `yaml:"type"`
}

// Decode extracts and decodes the front matter block of a case file
func Decode(content []byte) (*Record, error) {
	start := bytes.Index(content, []byte(openDelimiter))
	end := bytes.Index(content, []byte(closeDelimiter))
	if start < 0 || end < 0 {
		return nil, ErrMissingMetadata
	}
	if end < start+len(openDelimiter) {
		return nil, fmt.Errorf("%w: closing delimiter before opening delimiter", ErrMalformedMetadata)
	}
	block := content[start+len(openDelimiter) : end]

	var doc any
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	var rec Record
	if err := yaml.Unmarshal(block, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	return &rec, nil
}

// ShouldParse reports whether the tool is expected to accept the case.
// Only a negative expectation in the parse phase means it must be rejected.
func (r *Record) ShouldParse() bool {
	return r.Negative == nil || r.Negative.Phase != PhaseParse
}

// ExpectFailureAtRuntimeOnly reports whether the case fails only when executed
func (r *Record) ExpectFailureAtRuntimeOnly() bool {
	return r.Negative != nil && r.Negative.Phase == PhaseRuntime
}

// RequiredFeatures returns the language features the case exercises
func (r *Record) RequiredFeatures() []string {
	return r.Features
}

// SkipList is a set of features whose cases are not run
type SkipList map[string]bool

// NewSkipList builds a SkipList from feature names
func NewSkipList(features []string) SkipList {
	s := make(SkipList, len(features))
	for _, f := range features {
		s[f] = true
	}
	return s
}

// Excluded returns the first feature of r on the skip list, if any
func (s SkipList) Excluded(r *Record) (string, bool) {
	for _, f := range r.RequiredFeatures() {
		if s[f] {
			return f, true
		}
	}
	return "", false
}
