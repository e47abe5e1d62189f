// Package extractor turns raw document text into a schema-conformant
// ExtractedRecord via one black-box LLM call followed by a validation pass.
package extractor

import (
	"context"
	"fmt"

	"github.com/jonathan/claims-triage/internal/llm"
	"github.com/jonathan/claims-triage/internal/schema"
	"github.com/jonathan/claims-triage/internal/types"
)

// Extract runs one extraction call and validates the result against the
// schema. It never returns an error: if the call fails or the response
// cannot be parsed as structured data at all, the record comes back with
// every field absent and a single extraction_failed issue. The rule engine
// therefore always receives a well-formed record.
func Extract(ctx context.Context, documentText string, s *schema.Schema, client llm.Client) *types.ExtractedRecord {
	record := newAbsentRecord(s)

	prompt := BuildPrompt(s, documentText)
	raw, err := client.GenerateJSON(ctx, prompt)
	if err != nil {
		return failed(record, fmt.Sprintf("extraction call failed: %v", err))
	}

	payload, err := decodePayload(llm.CleanJSONBlock(raw))
	if err != nil {
		return failed(record, fmt.Sprintf("unparsable extraction response: %v", err))
	}

	for _, spec := range s.Fields() {
		value, issue := schema.Validate(payload.fields[spec.Name], spec)
		record.Fields[spec.Name] = value
		if issue != nil {
			record.Issues = append(record.Issues, *issue)
		}
		if spec.Required && !value.Present {
			record.Issues = append(record.Issues, types.ExtractionIssue{
				Field:  spec.Name,
				Kind:   types.IssueMissingRequired,
				Detail: fmt.Sprintf("required field %q has no usable value", spec.Name),
			})
		}
	}

	record.Summary = payload.summary
	for _, flag := range payload.qualityFlags {
		// Flags on fields the schema does not declare are kept for audit but
		// can never influence a rule, so the field attribution is dropped.
		field := flag.Field
		if !s.Has(field) {
			field = ""
		}
		record.Issues = append(record.Issues, types.ExtractionIssue{
			Field:  field,
			Kind:   types.IssueQualityFlag,
			Detail: flag.Note,
		})
	}

	return record
}

// newAbsentRecord builds a record with every schema field marked absent.
func newAbsentRecord(s *schema.Schema) *types.ExtractedRecord {
	record := &types.ExtractedRecord{
		FieldNames: s.Names(),
		Fields:     make(map[string]types.FieldValue, s.Len()),
	}
	for _, spec := range s.Fields() {
		record.Fields[spec.Name] = types.Absent(string(spec.Type))
	}
	return record
}

// failed stamps the record with the single extraction_failed issue.
func failed(record *types.ExtractedRecord, detail string) *types.ExtractedRecord {
	record.Issues = []types.ExtractionIssue{{
		Kind:   types.IssueExtractionFailed,
		Detail: detail,
	}}
	return record
}
