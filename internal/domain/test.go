package domain

import (
	"path/filepath"
	"strings"
)

// TestCase is one file of the conformance corpus
type TestCase struct {
	Path    string // Path used to read and invoke the case
	RelPath string // Corpus-relative path, unique per run
}

// NewTestCase builds a TestCase for path relative to root.
// If path is not under root the full path is used as the identity.
func NewTestCase(root, path string) TestCase {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	return TestCase{Path: path, RelPath: filepath.ToSlash(rel)}
}
