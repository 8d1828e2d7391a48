package parser

import "t262/internal/domain"

// Parser extracts structured messages from the tool's diagnostic stream
type Parser interface {
	ParseMessages(stderr string) []domain.ToolMessage
	MentionsFile(stderr, path string) bool
}
