// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/claims-triage/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDecision outputs a human-readable summary of a triage decision.
func (p *Printer) PrintDecision(decision *types.Decision) {
	if decision == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Decision:    %s\n", strings.ToUpper(string(decision.Outcome))))
	sb.WriteString(fmt.Sprintf("Confidence:  %.2f\n", decision.Confidence))
	if decision.MatchedRuleID != "" {
		sb.WriteString(fmt.Sprintf("Rule:        %s (%s)\n", decision.MatchedRuleID, decision.Tier))
	}
	sb.WriteString("\nRationale:\n")
	for _, line := range decision.Rationale {
		sb.WriteString(fmt.Sprintf("  - %s\n", line))
	}

	p.printBox("Triage Decision", strings.TrimRight(sb.String(), "\n"))
}

// PrintRecord outputs the extracted fields and issues of a record.
func (p *Printer) PrintRecord(record *types.ExtractedRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	for _, name := range record.FieldNames {
		value := record.Field(name)
		sb.WriteString(fmt.Sprintf("%-20s %s\n", name, describeValue(value)))
	}

	if len(record.Issues) > 0 {
		sb.WriteString("\nIssues:\n")
		for _, issue := range record.Issues {
			if issue.Field != "" {
				sb.WriteString(fmt.Sprintf("  [%s] %s: %s\n", issue.Kind, issue.Field, issue.Detail))
			} else {
				sb.WriteString(fmt.Sprintf("  [%s] %s\n", issue.Kind, issue.Detail))
			}
		}
	}

	p.printBox("Extracted Record", strings.TrimRight(sb.String(), "\n"))
}

// PrintSummary outputs the model's summary bullets, if any.
func (p *Printer) PrintSummary(record *types.ExtractedRecord) {
	if record == nil || len(record.Summary) == 0 {
		return
	}

	var sb strings.Builder
	for _, bullet := range record.Summary {
		sb.WriteString(fmt.Sprintf("- %s\n", bullet))
	}
	p.printBox("Document Summary", strings.TrimRight(sb.String(), "\n"))
}

func describeValue(v types.FieldValue) string {
	if !v.Present {
		return "(absent)"
	}
	switch v.Kind {
	case "number":
		return fmt.Sprintf("%g", v.Number)
	case "boolean":
		return fmt.Sprintf("%t", v.Flag)
	default:
		return v.Text
	}
}
