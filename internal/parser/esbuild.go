package parser

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"t262/internal/domain"
)

var (
	// ✘ [ERROR] Expected ";" but found "x"
	headerPattern = regexp.MustCompile(`^\s*(?:✘|▲|X)?\s*\[(ERROR|WARNING)\]\s+(.*)$`)
	// indented location line that follows a header: "    test/a.js:3:4:"
	locationPattern = regexp.MustCompile(`^\s+(\S.*?):(\d+):(\d+):\s*$`)
	// single-line form: "test/a.js:3:4: error: Expected ..." with an optional "> " prefix
	inlinePattern = regexp.MustCompile(`^(?:>\s*)?(\S.*?):(\d+):(\d+):\s+(error|warning):\s+(.*)$`)
)

// ESBuildParser parses esbuild-style diagnostics
type ESBuildParser struct{}

// NewESBuildParser creates a new ESBuildParser
func NewESBuildParser() *ESBuildParser {
	return &ESBuildParser{}
}

// MentionsFile reports whether the diagnostics name the case file.
// Tools report the path they were given, so only the basename is compared.
func (p *ESBuildParser) MentionsFile(stderr, path string) bool {
	return strings.Contains(stderr, filepath.Base(path))
}

// ParseMessages extracts the errors and warnings found in stderr, in order
func (p *ESBuildParser) ParseMessages(stderr string) []domain.ToolMessage {
	var messages []domain.ToolMessage
	lines := strings.Split(stderr, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")

		if m := inlinePattern.FindStringSubmatch(line); m != nil {
			messages = append(messages, domain.ToolMessage{
				Severity: m[4],
				Text:     strings.TrimSpace(m[5]),
				File:     m[1],
				Line:     atoi(m[2]),
				Column:   atoi(m[3]),
			})
			continue
		}

		m := headerPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		msg := domain.ToolMessage{
			Severity: strings.ToLower(m[1]),
			Text:     strings.TrimSpace(m[2]),
		}

		// The location, when present, is the first non-empty line after the header
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimRight(lines[j], "\r")
			if strings.TrimSpace(next) == "" {
				continue
			}
			if loc := locationPattern.FindStringSubmatch(next); loc != nil {
				msg.File = strings.TrimSpace(loc[1])
				msg.Line = atoi(loc[2])
				msg.Column = atoi(loc[3])
				i = j
			}
			break
		}
		messages = append(messages, msg)
	}

	return messages
}

// FirstError returns the first error message, if any
func (p *ESBuildParser) FirstError(stderr string) (domain.ToolMessage, bool) {
	for _, m := range p.ParseMessages(stderr) {
		if m.Severity == "error" {
			return m, true
		}
	}
	return domain.ToolMessage{}, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
