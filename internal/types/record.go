// Package types defines the shared data model for claims triage runs:
// extracted records, extraction issues, and triage decisions.
package types

// FieldValue holds one extracted field after schema validation.
// Present distinguishes "no valid value" from any legitimate zero value,
// including empty strings, zero amounts, and false flags.
type FieldValue struct {
	Present bool    `json:"present"`
	Kind    string  `json:"kind"`
	Text    string  `json:"text,omitempty"`   // string, enum and normalized date values
	Number  float64 `json:"number,omitempty"` // numeric values
	Flag    bool    `json:"flag,omitempty"`   // boolean values
	Raw     string  `json:"raw,omitempty"`    // verbatim value from the extraction payload
}

// Absent returns an absent marker for the given field kind.
func Absent(kind string) FieldValue {
	return FieldValue{Kind: kind}
}

// TextValue returns a present string/enum/date value.
func TextValue(kind, text, raw string) FieldValue {
	return FieldValue{Present: true, Kind: kind, Text: text, Raw: raw}
}

// NumberValue returns a present numeric value.
func NumberValue(n float64, raw string) FieldValue {
	return FieldValue{Present: true, Kind: "number", Number: n, Raw: raw}
}

// BoolValue returns a present boolean value.
func BoolValue(b bool, raw string) FieldValue {
	return FieldValue{Present: true, Kind: "boolean", Flag: b, Raw: raw}
}

// ExtractedRecord is the schema-conformant result of extracting one document.
// It is created once by the extractor and only read afterwards; the rule
// engine never mutates it.
type ExtractedRecord struct {
	FieldNames []string              `json:"field_names"`
	Fields     map[string]FieldValue `json:"fields"`
	Summary    []string              `json:"summary,omitempty"`
	Issues     []ExtractionIssue     `json:"issues,omitempty"`
}

// Field returns the value for a field name. Unknown names read as absent.
func (r *ExtractedRecord) Field(name string) FieldValue {
	if r == nil || r.Fields == nil {
		return FieldValue{}
	}
	return r.Fields[name]
}

// FieldAbsent reports whether a field carries no valid value.
func (r *ExtractedRecord) FieldAbsent(name string) bool {
	return !r.Field(name).Present
}

// IssuesOn returns the issues touching any of the given fields.
// Issues with no field attribution (extraction_failed) always match.
func (r *ExtractedRecord) IssuesOn(fields map[string]bool) []ExtractionIssue {
	if r == nil {
		return nil
	}
	var out []ExtractionIssue
	for _, issue := range r.Issues {
		if issue.Kind == IssueExtractionFailed || fields[issue.Field] {
			out = append(out, issue)
		}
	}
	return out
}
