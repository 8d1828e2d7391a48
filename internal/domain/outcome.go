package domain

// OutcomeKind classifies how a case ended
type OutcomeKind int

const (
	// OutcomeSkipped means a required feature is on the skip list; nothing was invoked.
	OutcomeSkipped OutcomeKind = iota
	// OutcomeMatched means the parse result matched the expectation and every later stage held.
	OutcomeMatched
	// OutcomeParseMismatch means the tool accepted invalid input or rejected valid input.
	OutcomeParseMismatch
	// OutcomeReparseFailure means the tool could not parse its own output.
	OutcomeReparseFailure
	// OutcomeReprintMismatch means printing is not a fixed point.
	OutcomeReprintMismatch
	// OutcomeMinifyFailure means the tool could not parse its own minified output.
	OutcomeMinifyFailure
	// OutcomeMetadataError means the front matter could not be decoded.
	// It is not a conformance outcome and counts as neither run nor skipped.
	OutcomeMetadataError
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeSkipped:         "skipped",
	OutcomeMatched:         "matched",
	OutcomeParseMismatch:   "parse mismatch",
	OutcomeReparseFailure:  "reparse failure",
	OutcomeReprintMismatch: "reprint mismatch",
	OutcomeMinifyFailure:   "minify failure",
	OutcomeMetadataError:   "metadata error",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeNames[k]; ok {
		return name
	}
	return "unknown"
}

// Outcome is the single classification reported for a case
type Outcome struct {
	Kind OutcomeKind
	// ExpectedToParse is only meaningful for OutcomeParseMismatch.
	// true means the tool should have accepted the input.
	ExpectedToParse bool
	// TimedOut is set when the deciding invocation hit the deadline
	TimedOut bool
}

// Failed reports whether the outcome is a conformance failure
func (o Outcome) Failed() bool {
	switch o.Kind {
	case OutcomeParseMismatch, OutcomeReparseFailure, OutcomeReprintMismatch, OutcomeMinifyFailure:
		return true
	}
	return false
}
