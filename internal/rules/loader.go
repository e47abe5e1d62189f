package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed ruleset.schema.json
var rulesetSchema string

// Load reads a ruleset from a JSON file, validates it against the embedded
// JSON Schema, and runs the structural checks. Field references against the
// claim schema are checked later, at Bind time.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and decodes raw ruleset JSON.
func Parse(data []byte) (*Ruleset, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(rulesetSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("ruleset is not valid JSON: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("ruleset schema violation: %s", describeErrors(result))
	}

	var rs Ruleset
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to decode ruleset: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

func describeErrors(result *gojsonschema.Result) string {
	out := ""
	for i, desc := range result.Errors() {
		if i > 0 {
			out += "; "
		}
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		out += fmt.Sprintf("%s: %s", field, desc.Description())
	}
	return out
}
