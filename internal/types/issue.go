package types

// IssueKind classifies a defect recorded against an extracted record.
type IssueKind string

const (
	// IssueMissingRequired marks a schema-required field with no value after coercion.
	IssueMissingRequired IssueKind = "missing_required"
	// IssueInvalidValue marks a raw value that violated its field spec (bad enum,
	// malformed date, non-numeric number). The field becomes absent.
	IssueInvalidValue IssueKind = "invalid_value"
	// IssueExtractionFailed marks a failed or unparsable extraction call.
	// A record carries at most one of these, with every field absent.
	IssueExtractionFailed IssueKind = "extraction_failed"
	// IssueQualityFlag carries a data-quality note reported by the extraction
	// model itself (relative dates, year-only dates, illegible values).
	IssueQualityFlag IssueKind = "quality_flag"
)

// ExtractionIssue records one defect found while extracting a document.
type ExtractionIssue struct {
	Field  string    `json:"field,omitempty"`
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail"`
}
