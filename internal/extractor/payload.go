package extractor

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// envelopeSchema is the structural contract for the extraction response.
// Field values stay loosely typed here; per-field coercion happens in the
// schema package. This check only rejects payloads that are not a flat
// object, so a junk response fails atomically instead of half-populating
// a record.
const envelopeSchema = `{
  "type": "object",
  "properties": {
    "summary_bullets": {
      "type": "array",
      "items": {"type": "string"}
    },
    "quality_flags": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "field": {"type": "string"},
          "note": {"type": "string"}
        },
        "required": ["note"]
      }
    }
  }
}`

// qualityFlag is a data-quality concern reported by the extraction model.
type qualityFlag struct {
	Field string `json:"field"`
	Note  string `json:"note"`
}

// payload is the decoded extraction response.
type payload struct {
	fields       map[string]any
	summary      []string
	qualityFlags []qualityFlag
}

// decodePayload parses and shape-checks the raw JSON response.
func decodePayload(raw string) (*payload, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(envelopeSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("response violates the extraction envelope: %s", firstError(result))
	}

	var envelope struct {
		SummaryBullets []string      `json:"summary_bullets"`
		QualityFlags   []qualityFlag `json:"quality_flags"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("failed to decode response fields: %w", err)
	}
	delete(fields, "summary_bullets")
	delete(fields, "quality_flags")

	return &payload{
		fields:       fields,
		summary:      envelope.SummaryBullets,
		qualityFlags: envelope.QualityFlags,
	}, nil
}

func firstError(result *gojsonschema.Result) string {
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		return fmt.Sprintf("%s: %s", field, desc.Description())
	}
	return "unknown validation error"
}
