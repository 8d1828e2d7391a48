package storage

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"t262/internal/config"
	"t262/internal/domain"
)

// ScratchStorage names artifacts after a hash of the case path, so concurrent
// pipelines never share a file. Files are left in place after the run.
type ScratchStorage struct {
	dir     string
	once    sync.Once
	initErr error
}

// NewScratchStorage returns a Storage rooted at the config's scratch directory
func NewScratchStorage(cfg *config.Config) *ScratchStorage {
	return &ScratchStorage{dir: cfg.GetScratchDir()}
}

// Dir returns the scratch directory
func (s *ScratchStorage) Dir() string {
	return s.dir
}

// Artifacts returns the stage output paths for tc, creating the scratch directory on first use
func (s *ScratchStorage) Artifacts(tc domain.TestCase) (Artifacts, error) {
	s.once.Do(func() {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			s.initErr = fmt.Errorf("create scratch dir: %w", err)
		}
	})
	if s.initErr != nil {
		return Artifacts{}, s.initErr
	}

	sum := md5.Sum([]byte(tc.RelPath))
	hash := hex.EncodeToString(sum[:])
	return Artifacts{
		Print:   filepath.Join(s.dir, hash+"-1.js"),
		Reprint: filepath.Join(s.dir, hash+"-2.js"),
	}, nil
}
