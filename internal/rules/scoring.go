package rules

import "github.com/jonathan/claims-triage/internal/types"

// Scoring holds the confidence penalty applied per extraction issue kind.
// Penalties are subtracted from the winning rule's weight for every issue
// touching a field that rule consulted, then the result is clamped to
// [0, 1]. All penalties must be non-negative so that more or more-severe
// issues on consulted fields never increase confidence.
type Scoring struct {
	ExtractionFailed float64
	MissingRequired  float64
	InvalidValue     float64
	QualityFlag      float64
}

// DefaultScoring returns the standard penalty table.
func DefaultScoring() Scoring {
	return Scoring{
		ExtractionFailed: 0.50,
		MissingRequired:  0.25,
		InvalidValue:     0.15,
		QualityFlag:      0.05,
	}
}

// penalty returns the confidence deduction for one issue.
func (s Scoring) penalty(kind types.IssueKind) float64 {
	switch kind {
	case types.IssueExtractionFailed:
		return s.ExtractionFailed
	case types.IssueMissingRequired:
		return s.MissingRequired
	case types.IssueInvalidValue:
		return s.InvalidValue
	case types.IssueQualityFlag:
		return s.QualityFlag
	}
	return 0
}

// Score computes clamp(weight - sum of penalties) over the given issues.
func (s Scoring) Score(weight float64, issues []types.ExtractionIssue) float64 {
	confidence := weight
	for _, issue := range issues {
		confidence -= s.penalty(issue.Kind)
	}
	return clamp01(confidence)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
