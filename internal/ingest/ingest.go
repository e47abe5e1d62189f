// Package ingest turns claim document sources (plain text files, PDFs, URLs,
// or raw text) into a single cleaned text blob for extraction.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/claims-triage/internal/fetch"
)

// LoadError represents a failed or empty document load. The orchestrator
// treats it as fatal to the run and short-circuits to a refer decision.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load failure for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("load failure for %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// FromFile loads a document from a local path. PDF files go through content
// extraction; everything else is read as plain text.
func FromFile(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fromPDF(path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	text := CleanText(string(content))
	if text == "" {
		return "", &LoadError{Source: path, Message: "file contains no text"}
	}
	return text, nil
}

// FromURL loads a document served over HTTP and strips it down to text.
func FromURL(ctx context.Context, url string) (string, error) {
	result, err := fetch.URL(ctx, url, nil)
	if err != nil {
		return "", &LoadError{Source: url, Message: "failed to fetch document", Cause: err}
	}

	var text string
	if strings.Contains(result.ContentType, "text/html") {
		text, err = fetch.ExtractMainText(result.HTML, fetch.DocumentSelectors())
		if err != nil {
			return "", &LoadError{Source: url, Message: "failed to parse HTML", Cause: err}
		}
	} else {
		text = result.HTML
	}

	text = CleanText(text)
	if text == "" {
		return "", &LoadError{Source: url, Message: "document contains no text"}
	}
	return text, nil
}

// FromText normalizes raw document text supplied directly by the caller.
func FromText(raw string) (string, error) {
	text := CleanText(raw)
	if text == "" {
		return "", &LoadError{Source: "(inline text)", Message: "document is empty"}
	}
	return text, nil
}
