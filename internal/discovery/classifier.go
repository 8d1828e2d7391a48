package discovery

import (
	"fmt"
	"os"

	"t262/internal/domain"
	"t262/internal/metadata"
)

// Classification previews what a run would do with a case, without invoking the tool
type Classification struct {
	Case   domain.TestCase
	Label  string
	Skip   bool
	Reason error
}

// Classifier reads case metadata to preview classifications
type Classifier struct {
	skip metadata.SkipList
}

// NewClassifier creates a new Classifier with the run's skip list
func NewClassifier(skip metadata.SkipList) *Classifier {
	return &Classifier{skip: skip}
}

// Classify labels each case as positive, negative or skipped. Unreadable or
// undecodable cases carry their error in Reason.
func (c *Classifier) Classify(cases []domain.TestCase) []Classification {
	out := make([]Classification, 0, len(cases))
	for _, tc := range cases {
		out = append(out, c.classify(tc))
	}
	return out
}

func (c *Classifier) classify(tc domain.TestCase) Classification {
	result := Classification{Case: tc}

	content, err := os.ReadFile(tc.Path)
	if err != nil {
		result.Label = "unreadable"
		result.Reason = err
		return result
	}

	record, err := metadata.Decode(content)
	if err != nil {
		result.Label = err.Error()
		result.Reason = err
		return result
	}

	if feature, excluded := c.skip.Excluded(record); excluded {
		result.Label = fmt.Sprintf("skipped (%s)", feature)
		result.Skip = true
		return result
	}

	switch {
	case record.Negative == nil:
		result.Label = "positive"
	case !record.ShouldParse():
		result.Label = fmt.Sprintf("negative (%s %s)", record.Negative.Phase, record.Negative.Type)
	case record.ExpectFailureAtRuntimeOnly():
		result.Label = fmt.Sprintf("positive (throws %s at runtime)", record.Negative.Type)
	default:
		result.Label = fmt.Sprintf("positive (%s %s)", record.Negative.Phase, record.Negative.Type)
	}
	return result
}
