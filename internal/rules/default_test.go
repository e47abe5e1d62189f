package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/claims-triage/internal/schema"
	"github.com/jonathan/claims-triage/internal/types"
)

func TestDefaultBindsAgainstClaimSchema(t *testing.T) {
	_, err := Bind(Default(), schema.ClaimSchema(), DefaultScoring())
	require.NoError(t, err)
}

func TestDefaultOutcomes(t *testing.T) {
	engine := mustBind(t, Default())

	tests := []struct {
		name     string
		mutate   func(r *types.ExtractedRecord)
		outcome  types.Outcome
		ruleID   string
		minScore float64
	}{
		{
			name:     "Clean active claim approves",
			mutate:   func(r *types.ExtractedRecord) {},
			outcome:  types.OutcomeApprove,
			ruleID:   "clean-active-claim",
			minScore: 0.85,
		},
		{
			name: "Lapsed policy denies",
			mutate: func(r *types.ExtractedRecord) {
				r.Fields["policy_status"] = types.TextValue("enum", "lapsed", "lapsed")
			},
			outcome:  types.OutcomeDeny,
			ruleID:   "policy-lapsed",
			minScore: 0.9,
		},
		{
			name: "Cancelled policy denies",
			mutate: func(r *types.ExtractedRecord) {
				r.Fields["policy_status"] = types.TextValue("enum", "cancelled", "cancelled")
			},
			outcome: types.OutcomeDeny,
			ruleID:  "policy-cancelled",
		},
		{
			name: "High-risk diagnosis refers even when active",
			mutate: func(r *types.ExtractedRecord) {
				r.Fields["primary_diagnosis"] = types.TextValue("string", "Acute myocardial infarction", "")
			},
			outcome: types.OutcomeRefer,
			ruleID:  "high-risk-diagnosis",
		},
		{
			name: "High-risk medication refers",
			mutate: func(r *types.ExtractedRecord) {
				r.Fields["medications"] = types.TextValue("string", "Metformin, Warfarin 5mg", "")
			},
			outcome: types.OutcomeRefer,
			ruleID:  "high-risk-medication",
		},
		{
			name: "Large claim amount refers",
			mutate: func(r *types.ExtractedRecord) {
				r.Fields["claim_amount"] = types.NumberValue(750000, "750000")
			},
			outcome: types.OutcomeRefer,
			ruleID:  "large-claim-amount",
		},
		{
			name: "Moderate-risk diagnosis blocks auto-approval",
			mutate: func(r *types.ExtractedRecord) {
				r.Fields["diagnosis_summary"] = types.TextValue("string", "Essential hypertension", "")
			},
			outcome: types.OutcomeRefer,
			ruleID:  "moderate-risk-diagnosis",
		},
		{
			name: "Missing provider refers",
			mutate: func(r *types.ExtractedRecord) {
				r.Fields["provider_name"] = types.Absent("string")
			},
			outcome: types.OutcomeRefer,
			ruleID:  "missing-provider",
		},
		{
			name: "Pending policy holds",
			mutate: func(r *types.ExtractedRecord) {
				r.Fields["policy_status"] = types.TextValue("enum", "pending", "pending")
			},
			outcome: types.OutcomeRefer,
			ruleID:  "pending-policy",
		},
		{
			name: "Missing identity fields fall through to incomplete-submission",
			mutate: func(r *types.ExtractedRecord) {
				r.Fields["patient_name"] = types.Absent("string")
			},
			outcome: types.OutcomeRefer,
			ruleID:  "incomplete-submission",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := completeRecord()
			tt.mutate(record)

			verdict := engine.Evaluate(record)
			assert.Equal(t, tt.outcome, verdict.Outcome)
			assert.Equal(t, tt.ruleID, verdict.RuleID)
			if tt.minScore > 0 {
				assert.GreaterOrEqual(t, verdict.Confidence, tt.minScore)
			}
		})
	}
}
