package ingest

import (
	"regexp"
	"strings"
)

var spaceRun = regexp.MustCompile(`\s+`)
var blankRun = regexp.MustCompile(`\n\n\n+`)

// CleanText normalizes document text while preserving line structure.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF -> LF).
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	// Reduce 3+ consecutive blank lines to one blank line.
	result = blankRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims trailing whitespace and collapses internal space runs,
// keeping leading indentation for list-like structure.
func cleanLine(line string) string {
	if strings.TrimSpace(line) == "" {
		return ""
	}
	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)
	content := spaceRun.ReplaceAllString(strings.TrimSpace(trimmed), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}
