package cli

import (
	"time"

	"t262/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Processors   int
	TestPath     string
	NameFilter   string
	Tool         string
	Timeout      time.Duration
	ScratchDir   string
	SkipFeatures []string
	RunFeatures  []string
	NoProgress   bool
	Browse       bool
	Classify     bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:   f.Processors,
		TestPath:     f.TestPath,
		NameFilter:   f.NameFilter,
		Tool:         f.Tool,
		Timeout:      f.Timeout,
		ScratchDir:   f.ScratchDir,
		SkipFeatures: f.SkipFeatures,
		RunFeatures:  f.RunFeatures,
		NoProgress:   f.NoProgress,
		Browse:       f.Browse,
		Classify:     f.Classify,
	}
}
