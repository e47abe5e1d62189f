package types

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is a triage decision category.
type Outcome string

const (
	// OutcomeApprove indicates the claim can proceed without review.
	OutcomeApprove Outcome = "approve"
	// OutcomeDeny indicates a hard disqualifying signal.
	OutcomeDeny Outcome = "deny"
	// OutcomeRefer indicates the claim needs manual review.
	OutcomeRefer Outcome = "refer"
)

// Valid reports whether o is a recognized outcome.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeApprove, OutcomeDeny, OutcomeRefer:
		return true
	}
	return false
}

// Decision is the immutable result of one triage run.
type Decision struct {
	ID             uuid.UUID         `json:"id"`
	Outcome        Outcome           `json:"decision"`
	Confidence     float64           `json:"confidence"`
	Rationale      []string          `json:"rationale"`
	MatchedRuleID  string            `json:"matched_rule_id,omitempty"`
	Tier           string            `json:"tier,omitempty"`
	Extracted      *ExtractedRecord  `json:"extracted"`
	Issues         []ExtractionIssue `json:"issues,omitempty"`
	RulesetVersion string            `json:"ruleset_version,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
