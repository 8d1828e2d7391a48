package discovery

import (
	"path"
	"path/filepath"
	"strings"

	"t262/internal/domain"
)

// Filter narrows a corpus by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the cases whose file name or relative path matches pattern.
// Supports wildcards like "*-arrow-*.js" and path prefixes like
// "language/expressions/class"; a pattern without wildcards matches any
// case whose relative path contains it.
func (f *Filter) FilterByName(cases []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cases
	}
	pattern = filepath.ToSlash(pattern)

	var filtered []domain.TestCase
	for _, tc := range cases {
		if matches(pattern, filepath.ToSlash(tc.RelPath)) {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

func matches(pattern, rel string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(rel, pattern)
	}

	if ok, err := path.Match(pattern, path.Base(rel)); err == nil && ok {
		return true
	}
	if ok, err := path.Match(pattern, rel); err == nil && ok {
		return true
	}

	// "*Payment*"-style patterns: every literal part in order
	rest := rel
	found := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		if strings.ContainsRune(part, '?') {
			return false
		}
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
		found = true
	}
	return found
}
