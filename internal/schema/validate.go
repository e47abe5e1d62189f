package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/claims-triage/internal/types"
)

// Date layouts accepted from the extraction model, most specific first.
// The prompt asks for YYYY-MM-DD but allows partial dates when the document
// only carries a year or a year and month.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// Validate coerces one raw extracted value into a typed FieldValue.
// It is a pure function: an invalid raw value becomes an absent marker plus
// an invalid_value issue, never a fabricated in-range value. A nil or empty
// raw value becomes absent with no issue; required-field enforcement is the
// extractor's responsibility.
func Validate(raw any, spec FieldSpec) (types.FieldValue, *types.ExtractionIssue) {
	if raw == nil {
		return types.Absent(string(spec.Type)), nil
	}

	switch spec.Type {
	case TypeString:
		return validateString(raw, spec)
	case TypeNumber:
		return validateNumber(raw, spec)
	case TypeEnum:
		return validateEnum(raw, spec)
	case TypeDate:
		return validateDate(raw, spec)
	case TypeBoolean:
		return validateBoolean(raw, spec)
	default:
		return types.Absent(string(spec.Type)), invalid(spec, raw, "unknown field type")
	}
}

func validateString(raw any, spec FieldSpec) (types.FieldValue, *types.ExtractionIssue) {
	s, ok := raw.(string)
	if !ok {
		return types.Absent(string(spec.Type)), invalid(spec, raw, "expected a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return types.Absent(string(spec.Type)), nil
	}
	return types.TextValue(string(spec.Type), s, s), nil
}

func validateNumber(raw any, spec FieldSpec) (types.FieldValue, *types.ExtractionIssue) {
	switch v := raw.(type) {
	case float64:
		return types.NumberValue(v, strconv.FormatFloat(v, 'f', -1, 64)), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return types.Absent(string(spec.Type)), nil
		}
		// Tolerate currency formatting like "$12,500.00".
		cleaned := strings.TrimPrefix(trimmed, "$")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return types.Absent(string(spec.Type)), invalid(spec, raw, "not a number")
		}
		return types.NumberValue(n, trimmed), nil
	default:
		return types.Absent(string(spec.Type)), invalid(spec, raw, "expected a number")
	}
}

func validateEnum(raw any, spec FieldSpec) (types.FieldValue, *types.ExtractionIssue) {
	s, ok := raw.(string)
	if !ok {
		return types.Absent(string(spec.Type)), invalid(spec, raw, "expected a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return types.Absent(string(spec.Type)), nil
	}
	canonical, ok := canonicalEnum(s, spec.Allowed)
	if !ok {
		detail := fmt.Sprintf("value %q not in allowed set [%s]", s, strings.Join(spec.Allowed, ", "))
		return types.Absent(string(spec.Type)), invalid(spec, raw, detail)
	}
	return types.TextValue(string(spec.Type), canonical, s), nil
}

func validateDate(raw any, spec FieldSpec) (types.FieldValue, *types.ExtractionIssue) {
	s, ok := raw.(string)
	if !ok {
		return types.Absent(string(spec.Type)), invalid(spec, raw, "expected a date string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return types.Absent(string(spec.Type)), nil
	}
	for _, layout := range dateLayouts {
		if len(s) != len(layout) {
			continue
		}
		if _, err := time.Parse(layout, s); err == nil {
			return types.TextValue(string(spec.Type), s, s), nil
		}
	}
	return types.Absent(string(spec.Type)), invalid(spec, raw, "not a YYYY, YYYY-MM or YYYY-MM-DD date")
}

func validateBoolean(raw any, spec FieldSpec) (types.FieldValue, *types.ExtractionIssue) {
	switch v := raw.(type) {
	case bool:
		return types.BoolValue(v, strconv.FormatBool(v)), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return types.Absent(string(spec.Type)), nil
		}
		if strings.EqualFold(trimmed, "true") {
			return types.BoolValue(true, trimmed), nil
		}
		if strings.EqualFold(trimmed, "false") {
			return types.BoolValue(false, trimmed), nil
		}
		return types.Absent(string(spec.Type)), invalid(spec, raw, "not a boolean")
	default:
		return types.Absent(string(spec.Type)), invalid(spec, raw, "expected a boolean")
	}
}

func invalid(spec FieldSpec, raw any, detail string) *types.ExtractionIssue {
	return &types.ExtractionIssue{
		Field:  spec.Name,
		Kind:   types.IssueInvalidValue,
		Detail: fmt.Sprintf("%s (got %v)", detail, raw),
	}
}
