package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"t262/internal/domain"
)

const (
	caseSuffix    = ".js"
	fixtureSuffix = "_FIXTURE.js"
)

// Scanner collects the cases of a corpus directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan walks root and returns every case file below it, sorted by relative path.
// Fixture files are support modules imported by other cases and are not cases themselves.
func (s *Scanner) Scan(root string) ([]domain.TestCase, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	var cases []domain.TestCase
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if strings.HasSuffix(name, caseSuffix) && !strings.HasSuffix(name, fixtureSuffix) {
			cases = append(cases, domain.NewTestCase(root, path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].RelPath < cases[j].RelPath
	})
	return cases, nil
}
