package rules

import (
	"fmt"
	"strings"

	"github.com/jonathan/claims-triage/internal/schema"
	"github.com/jonathan/claims-triage/internal/types"
)

// NoMatchRationale is the rationale emitted when no rule in any tier matches.
const NoMatchRationale = "no applicable rule matched; manual review required"

// Verdict is the rule engine's output for one record.
type Verdict struct {
	Outcome    types.Outcome
	Confidence float64
	Rationale  []string
	RuleID     string
	Tier       string
}

// Engine evaluates a bound ruleset deterministically over extracted records.
// Binding happens once at process start; the engine is immutable afterwards
// and safe for concurrent use.
type Engine struct {
	ruleset  *Ruleset
	scoring  Scoring
	fields   map[string]map[string]bool // rule ID -> consulted field set
	critical []string                   // required fields behind deny/approve rules
}

// Bind validates the ruleset against the field schema and precomputes the
// per-rule consulted-field sets and the critical input set. Every field a
// rule references must exist in the schema; a mismatch is fatal here so it
// can never surface mid-run.
func Bind(rs *Ruleset, s *schema.Schema, scoring Scoring) (*Engine, error) {
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ruleset: %w", err)
	}
	for _, name := range rs.FieldsReferenced() {
		if !s.Has(name) {
			return nil, fmt.Errorf("ruleset %s references field %q not declared in the schema", rs.Version, name)
		}
	}

	engine := &Engine{
		ruleset: rs,
		scoring: scoring,
		fields:  make(map[string]map[string]bool),
	}

	criticalSeen := make(map[string]bool)
	for _, tier := range rs.Tiers {
		for _, rule := range tier.Rules {
			consulted := make(map[string]bool)
			for _, name := range rule.When.Fields() {
				consulted[name] = true
				// Critical inputs: schema-required fields referenced by a
				// hard-denial or hard-approval rule. A decision without its
				// load-bearing inputs is not trustworthy.
				if rule.Outcome == types.OutcomeDeny || rule.Outcome == types.OutcomeApprove {
					if spec, ok := s.Lookup(name); ok && spec.Required && !criticalSeen[name] {
						criticalSeen[name] = true
						engine.critical = append(engine.critical, name)
					}
				}
			}
			engine.fields[rule.ID] = consulted
		}
	}

	return engine, nil
}

// Version returns the bound ruleset version.
func (e *Engine) Version() string {
	return e.ruleset.Version
}

// CriticalFields returns the critical input field names.
func (e *Engine) CriticalFields() []string {
	out := make([]string, len(e.critical))
	copy(out, e.critical)
	return out
}

// Evaluate maps a record to a verdict. The record is only read. Evaluation
// is deterministic: the same record always yields the same verdict.
func (e *Engine) Evaluate(record *types.ExtractedRecord) Verdict {
	if verdict, shortCircuit := e.checkCriticalInputs(record); shortCircuit {
		return verdict
	}

	for _, tier := range e.ruleset.Tiers {
		for _, rule := range tier.Rules {
			if !rule.When.Eval(record) {
				continue
			}
			consulted := e.fields[rule.ID]
			relevant := record.IssuesOn(consulted)
			rationale := []string{fmt.Sprintf("%s: %s", rule.ID, rule.Explain)}
			for _, issue := range relevant {
				rationale = append(rationale, issueNote(issue))
			}
			return Verdict{
				Outcome:    rule.Outcome,
				Confidence: e.scoring.Score(rule.Weight, relevant),
				Rationale:  rationale,
				RuleID:     rule.ID,
				Tier:       tier.Name,
			}
		}
	}

	// Absence of a matching rule must never default to approve or deny.
	return Verdict{
		Outcome:    types.OutcomeRefer,
		Confidence: 0,
		Rationale:  []string{NoMatchRationale},
	}
}

// checkCriticalInputs short-circuits to refer when every critical input is
// absent, regardless of which rules would otherwise fire.
func (e *Engine) checkCriticalInputs(record *types.ExtractedRecord) (Verdict, bool) {
	if len(e.critical) == 0 {
		return Verdict{}, false
	}
	for _, name := range e.critical {
		if record.Field(name).Present {
			return Verdict{}, false
		}
	}

	criticalSet := make(map[string]bool, len(e.critical))
	for _, name := range e.critical {
		criticalSet[name] = true
	}
	rationale := []string{fmt.Sprintf(
		"critical inputs absent (%s); manual review required",
		strings.Join(e.critical, ", "),
	)}
	for _, issue := range record.IssuesOn(criticalSet) {
		rationale = append(rationale, issueNote(issue))
	}
	return Verdict{
		Outcome:    types.OutcomeRefer,
		Confidence: 0,
		Rationale:  rationale,
	}, true
}

// issueNote synthesizes the rationale line for one extraction issue.
func issueNote(issue types.ExtractionIssue) string {
	if issue.Field == "" {
		return fmt.Sprintf("extraction issue (%s): %s", issue.Kind, issue.Detail)
	}
	return fmt.Sprintf("extraction issue on %s (%s): %s", issue.Field, issue.Kind, issue.Detail)
}
