// Package rules implements the deterministic triage rule engine: declarative
// predicates over extracted records, grouped into priority tiers, evaluated
// first-match-wins with an auditable rationale trail.
package rules

import (
	"fmt"
	"strings"

	"github.com/jonathan/claims-triage/internal/types"
)

// Predicate kinds. A predicate is a tagged variant: exactly one kind with
// the parameters that kind needs.
const (
	KindEquals      = "equals"
	KindNotEquals   = "not_equals"
	KindPresent     = "present"
	KindAbsent      = "absent"
	KindGreaterThan = "gt"
	KindAtLeast     = "gte"
	KindLessThan    = "lt"
	KindAtMost      = "lte"
	KindContainsAny = "contains_any"
	KindIsTrue      = "is_true"
	KindIsFalse     = "is_false"
	KindAll         = "all"
	KindAny         = "any"
	KindNone        = "none"
)

// Predicate is a data-described condition over an extracted record.
// Composite kinds (all/any/none) use Of; leaf kinds use Field plus the
// parameter matching their kind.
type Predicate struct {
	Kind     string      `json:"kind"`
	Field    string      `json:"field,omitempty"`
	Value    string      `json:"value,omitempty"`    // equals / not_equals
	Number   *float64    `json:"number,omitempty"`   // gt / gte / lt / lte
	Keywords []string    `json:"keywords,omitempty"` // contains_any
	Of       []Predicate `json:"of,omitempty"`       // all / any / none
}

// Rule is a named predicate producing a decision candidate when it matches.
// Rules are pure and stateless; order within a tier is evaluation order.
type Rule struct {
	ID      string        `json:"id"`
	Outcome types.Outcome `json:"outcome"`
	Weight  float64       `json:"weight"`
	Explain string        `json:"explain"`
	When    Predicate     `json:"when"`
}

// Tier is a priority group of rules. Tiers are evaluated in declared order;
// the first matching rule in the first tier with any match decides.
type Tier struct {
	Name  string `json:"name"`
	Rules []Rule `json:"rules"`
}

// Ruleset is an ordered, versioned collection of tiers. It is read-only
// after construction and safe to share across concurrent runs.
type Ruleset struct {
	Version string `json:"version"`
	Tiers   []Tier `json:"tiers"`
}

// Eval reports whether the predicate matches the record. Absent fields never
// satisfy a value predicate; only the explicit absent kind matches them.
func (p Predicate) Eval(record *types.ExtractedRecord) bool {
	switch p.Kind {
	case KindEquals:
		v := record.Field(p.Field)
		return v.Present && strings.EqualFold(v.Text, p.Value)
	case KindNotEquals:
		v := record.Field(p.Field)
		return v.Present && !strings.EqualFold(v.Text, p.Value)
	case KindPresent:
		return record.Field(p.Field).Present
	case KindAbsent:
		return !record.Field(p.Field).Present
	case KindGreaterThan:
		v := record.Field(p.Field)
		return v.Present && p.Number != nil && v.Number > *p.Number
	case KindAtLeast:
		v := record.Field(p.Field)
		return v.Present && p.Number != nil && v.Number >= *p.Number
	case KindLessThan:
		v := record.Field(p.Field)
		return v.Present && p.Number != nil && v.Number < *p.Number
	case KindAtMost:
		v := record.Field(p.Field)
		return v.Present && p.Number != nil && v.Number <= *p.Number
	case KindContainsAny:
		v := record.Field(p.Field)
		if !v.Present {
			return false
		}
		haystack := strings.ToLower(v.Text)
		for _, kw := range p.Keywords {
			if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
				return true
			}
		}
		return false
	case KindIsTrue:
		v := record.Field(p.Field)
		return v.Present && v.Flag
	case KindIsFalse:
		v := record.Field(p.Field)
		return v.Present && !v.Flag
	case KindAll:
		for _, sub := range p.Of {
			if !sub.Eval(record) {
				return false
			}
		}
		return true
	case KindAny:
		for _, sub := range p.Of {
			if sub.Eval(record) {
				return true
			}
		}
		return false
	case KindNone:
		for _, sub := range p.Of {
			if sub.Eval(record) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Fields returns the distinct field names the predicate consults, in first
// reference order.
func (p Predicate) Fields() []string {
	seen := make(map[string]bool)
	var out []string
	p.collectFields(seen, &out)
	return out
}

func (p Predicate) collectFields(seen map[string]bool, out *[]string) {
	if p.Field != "" && !seen[p.Field] {
		seen[p.Field] = true
		*out = append(*out, p.Field)
	}
	for _, sub := range p.Of {
		sub.collectFields(seen, out)
	}
}

// validate checks the predicate's structural invariants.
func (p Predicate) validate(path string) error {
	switch p.Kind {
	case KindAll, KindAny, KindNone:
		if len(p.Of) == 0 {
			return fmt.Errorf("%s: composite %q has no sub-predicates", path, p.Kind)
		}
		if p.Field != "" {
			return fmt.Errorf("%s: composite %q must not name a field", path, p.Kind)
		}
		for i, sub := range p.Of {
			if err := sub.validate(fmt.Sprintf("%s.of[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	case KindEquals, KindNotEquals:
		if p.Field == "" || p.Value == "" {
			return fmt.Errorf("%s: %q needs field and value", path, p.Kind)
		}
	case KindGreaterThan, KindAtLeast, KindLessThan, KindAtMost:
		if p.Field == "" || p.Number == nil {
			return fmt.Errorf("%s: %q needs field and number", path, p.Kind)
		}
	case KindContainsAny:
		if p.Field == "" || len(p.Keywords) == 0 {
			return fmt.Errorf("%s: %q needs field and keywords", path, p.Kind)
		}
	case KindPresent, KindAbsent, KindIsTrue, KindIsFalse:
		if p.Field == "" {
			return fmt.Errorf("%s: %q needs a field", path, p.Kind)
		}
	default:
		return fmt.Errorf("%s: unknown predicate kind %q", path, p.Kind)
	}
	if len(p.Of) > 0 {
		return fmt.Errorf("%s: leaf %q must not have sub-predicates", path, p.Kind)
	}
	return nil
}

// Validate checks the ruleset's structural invariants: non-empty version,
// unique rule IDs, valid outcomes and weights, well-formed predicates.
func (rs *Ruleset) Validate() error {
	if rs.Version == "" {
		return fmt.Errorf("ruleset has no version")
	}
	if len(rs.Tiers) == 0 {
		return fmt.Errorf("ruleset %s has no tiers", rs.Version)
	}
	seenIDs := make(map[string]bool)
	for _, tier := range rs.Tiers {
		if tier.Name == "" {
			return fmt.Errorf("ruleset %s: tier has no name", rs.Version)
		}
		for _, rule := range tier.Rules {
			if rule.ID == "" {
				return fmt.Errorf("tier %s: rule has no id", tier.Name)
			}
			if seenIDs[rule.ID] {
				return fmt.Errorf("duplicate rule id %q", rule.ID)
			}
			seenIDs[rule.ID] = true
			if !rule.Outcome.Valid() {
				return fmt.Errorf("rule %s: unknown outcome %q", rule.ID, rule.Outcome)
			}
			if rule.Weight < 0 || rule.Weight > 1 {
				return fmt.Errorf("rule %s: weight %v outside [0,1]", rule.ID, rule.Weight)
			}
			if rule.Explain == "" {
				return fmt.Errorf("rule %s: missing explanation", rule.ID)
			}
			if err := rule.When.validate(rule.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// FieldsReferenced returns every field name any rule consults.
func (rs *Ruleset) FieldsReferenced() []string {
	seen := make(map[string]bool)
	var out []string
	for _, tier := range rs.Tiers {
		for _, rule := range tier.Rules {
			rule.When.collectFields(seen, &out)
		}
	}
	return out
}
