package rules

import "github.com/jonathan/claims-triage/internal/types"

// Diagnosis keywords that strongly trigger underwriting review.
var highRiskDiagnoses = []string{
	"cancer", "carcinoma", "malignant", "tumor", "leukaemia", "leukemia",
	"heart failure", "myocardial infarction", "stroke", "cerebrovascular",
	"hiv", "aids", "cirrhosis", "renal failure", "kidney failure",
	"aortic aneurysm", "pulmonary embolism", "psychosis", "schizophrenia",
}

// Medication keywords that indicate elevated underwriting risk.
var highRiskMedications = []string{
	"chemotherapy", "warfarin", "clozapine", "lithium", "methotrexate",
	"tacrolimus", "insulin", "morphine", "oxycodone", "fentanyl",
}

// Diagnosis keywords that are relevant but not immediate referral triggers
// on their own.
var moderateRiskDiagnoses = []string{
	"hypertension", "diabetes", "angina", "atrial fibrillation", "asthma",
	"depression", "anxiety", "sleep apnea", "obesity",
}

// largeClaimThreshold is the claim amount above which approval requires
// manual review.
const largeClaimThreshold = 500000

// Default returns the built-in claims triage ruleset. Tier order encodes
// priority: hard denial signals override everything, clean approvals beat
// referral triggers, and the default tier catches the long tail.
func Default() *Ruleset {
	return &Ruleset{
		Version: "claims-default-v1",
		Tiers: []Tier{
			{
				Name: "hard_denial",
				Rules: []Rule{
					{
						ID:      "policy-lapsed",
						Outcome: types.OutcomeDeny,
						Weight:  0.9,
						Explain: "policy lapsed at the time of the claim",
						When:    Predicate{Kind: KindEquals, Field: "policy_status", Value: "lapsed"},
					},
					{
						ID:      "policy-cancelled",
						Outcome: types.OutcomeDeny,
						Weight:  0.9,
						Explain: "policy was cancelled before the claim",
						When:    Predicate{Kind: KindEquals, Field: "policy_status", Value: "cancelled"},
					},
				},
			},
			{
				Name: "hard_approval",
				Rules: []Rule{
					{
						ID:      "clean-active-claim",
						Outcome: types.OutcomeApprove,
						Weight:  0.85,
						Explain: "policy active, mandatory fields complete, no elevated-risk findings",
						When: Predicate{Kind: KindAll, Of: []Predicate{
							{Kind: KindEquals, Field: "policy_status", Value: "active"},
							{Kind: KindPresent, Field: "patient_name"},
							{Kind: KindPresent, Field: "date_of_birth"},
							{Kind: KindPresent, Field: "report_date"},
							{Kind: KindPresent, Field: "provider_name"},
							{Kind: KindNone, Of: []Predicate{
								{Kind: KindContainsAny, Field: "diagnosis_summary", Keywords: highRiskDiagnoses},
								{Kind: KindContainsAny, Field: "primary_diagnosis", Keywords: highRiskDiagnoses},
								{Kind: KindContainsAny, Field: "diagnosis_summary", Keywords: moderateRiskDiagnoses},
								{Kind: KindContainsAny, Field: "primary_diagnosis", Keywords: moderateRiskDiagnoses},
								{Kind: KindContainsAny, Field: "medications", Keywords: highRiskMedications},
								{Kind: KindGreaterThan, Field: "claim_amount", Number: num(largeClaimThreshold)},
							}},
						}},
					},
				},
			},
			{
				Name: "refer_review",
				Rules: []Rule{
					{
						ID:      "high-risk-diagnosis",
						Outcome: types.OutcomeRefer,
						Weight:  0.8,
						Explain: "high-risk diagnosis requires underwriter review",
						When: Predicate{Kind: KindAny, Of: []Predicate{
							{Kind: KindContainsAny, Field: "diagnosis_summary", Keywords: highRiskDiagnoses},
							{Kind: KindContainsAny, Field: "primary_diagnosis", Keywords: highRiskDiagnoses},
						}},
					},
					{
						ID:      "high-risk-medication",
						Outcome: types.OutcomeRefer,
						Weight:  0.7,
						Explain: "high-risk medication requires underwriter review",
						When:    Predicate{Kind: KindContainsAny, Field: "medications", Keywords: highRiskMedications},
					},
					{
						ID:      "large-claim-amount",
						Outcome: types.OutcomeRefer,
						Weight:  0.65,
						Explain: "claim amount exceeds the auto-approval threshold",
						When:    Predicate{Kind: KindGreaterThan, Field: "claim_amount", Number: num(largeClaimThreshold)},
					},
					{
						ID:      "moderate-risk-diagnosis",
						Outcome: types.OutcomeRefer,
						Weight:  0.6,
						Explain: "moderate-risk diagnosis warrants review",
						When: Predicate{Kind: KindAny, Of: []Predicate{
							{Kind: KindContainsAny, Field: "diagnosis_summary", Keywords: moderateRiskDiagnoses},
							{Kind: KindContainsAny, Field: "primary_diagnosis", Keywords: moderateRiskDiagnoses},
						}},
					},
					{
						ID:      "missing-provider",
						Outcome: types.OutcomeRefer,
						Weight:  0.55,
						Explain: "treating provider details missing; request documents",
						When:    Predicate{Kind: KindAbsent, Field: "provider_name"},
					},
				},
			},
			{
				Name: "default",
				Rules: []Rule{
					{
						ID:      "pending-policy",
						Outcome: types.OutcomeRefer,
						Weight:  0.5,
						Explain: "policy not yet in force; hold for policy administration",
						When:    Predicate{Kind: KindEquals, Field: "policy_status", Value: "pending"},
					},
					{
						ID:      "incomplete-submission",
						Outcome: types.OutcomeRefer,
						Weight:  0.5,
						Explain: "mandatory identity fields missing; request documents",
						When: Predicate{Kind: KindAny, Of: []Predicate{
							{Kind: KindAbsent, Field: "patient_name"},
							{Kind: KindAbsent, Field: "date_of_birth"},
							{Kind: KindAbsent, Field: "report_date"},
							{Kind: KindAbsent, Field: "policy_status"},
						}},
					},
				},
			},
		},
	}
}

func num(v float64) *float64 {
	return &v
}
