package storage

import "t262/internal/domain"

// Storage hands out the files a case pipeline writes its stage outputs to
type Storage interface {
	Artifacts(tc domain.TestCase) (Artifacts, error)
}

// Artifacts are the two stage output files of one case.
// Print receives the first print (and later the minified print),
// Reprint receives the print of Print.
type Artifacts struct {
	Print   string
	Reprint string
}
