package extractor

import (
	"fmt"
	"strings"

	"github.com/jonathan/claims-triage/internal/prompts"
	"github.com/jonathan/claims-triage/internal/schema"
)

// BuildPrompt renders the extraction prompt for a document and field schema.
func BuildPrompt(s *schema.Schema, documentText string) string {
	template := prompts.MustGet("extraction.json", "extract-claim-fields")
	return prompts.Format(template, map[string]string{
		"FieldContract": fieldContract(s),
		"Document":      documentText,
	})
}

// fieldContract renders one prompt line per schema field, e.g.
//
//	"policy_status": "active" | "lapsed" | "pending" | "cancelled" | null,  // Status of the policy
func fieldContract(s *schema.Schema) string {
	var sb strings.Builder
	for _, spec := range s.Fields() {
		sb.WriteString(fmt.Sprintf("  %q: %s | null,", spec.Name, typeHint(spec)))
		if spec.Description != "" {
			sb.WriteString("  // ")
			sb.WriteString(spec.Description)
			if spec.Required {
				sb.WriteString(" (required)")
			}
		} else if spec.Required {
			sb.WriteString("  // (required)")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func typeHint(spec schema.FieldSpec) string {
	switch spec.Type {
	case schema.TypeNumber:
		return "number"
	case schema.TypeBoolean:
		return "true | false"
	case schema.TypeDate:
		return `"YYYY-MM-DD"`
	case schema.TypeEnum:
		quoted := make([]string, len(spec.Allowed))
		for i, a := range spec.Allowed {
			quoted[i] = fmt.Sprintf("%q", a)
		}
		return strings.Join(quoted, " | ")
	default:
		return "string"
	}
}
