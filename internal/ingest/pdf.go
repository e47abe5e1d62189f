package ingest

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// fromPDF extracts text from a text-bearing PDF. pdfcpu writes one content
// stream per page into a scratch directory; the text-showing operators are
// then scraped out of each stream. A PDF with no recoverable text (scanned
// or image-based) is a load failure, not a crash.
func fromPDF(path string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "triage-pdf-")
	if err != nil {
		return "", &LoadError{Source: path, Message: "failed to create scratch directory", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	if err := api.ExtractContentFile(path, tmpDir, nil, nil); err != nil {
		return "", &LoadError{Source: path, Message: "failed to extract PDF content", Cause: err}
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", &LoadError{Source: path, Message: "failed to read extracted content", Cause: err}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	// Page files sort into page order by name.
	sort.Strings(names)

	var pages []string
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(tmpDir, name))
		if err != nil {
			continue
		}
		if text := contentStreamText(string(data)); text != "" {
			pages = append(pages, text)
		}
	}

	text := CleanText(strings.Join(pages, "\n\n"))
	if text == "" {
		return "", &LoadError{Source: path, Message: "no text could be extracted; PDF may be scanned or image-based"}
	}
	return text, nil
}

// Text-showing operators in a PDF content stream: (string) Tj, (string) ',
// and TJ arrays mixing strings with kerning numbers.
var textShowOp = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*(?:Tj|')`)
var textArrayOp = regexp.MustCompile(`\[((?:[^\[\]\\]|\\.)*)\]\s*TJ`)
var arrayString = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)

// contentStreamText scrapes literal strings shown by text operators.
func contentStreamText(stream string) string {
	var sb strings.Builder

	for _, line := range strings.Split(stream, "\n") {
		wrote := false
		for _, m := range textShowOp.FindAllStringSubmatch(line, -1) {
			sb.WriteString(unescapePDFString(m[1]))
			wrote = true
		}
		for _, m := range textArrayOp.FindAllStringSubmatch(line, -1) {
			for _, s := range arrayString.FindAllStringSubmatch(m[1], -1) {
				sb.WriteString(unescapePDFString(s[1]))
			}
			wrote = true
		}
		if wrote {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// unescapePDFString resolves the escape sequences of a PDF literal string.
func unescapePDFString(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r', 'f', 'b':
			// Ignore form feeds and friends.
		case '(', ')', '\\':
			sb.WriteByte(s[i])
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
