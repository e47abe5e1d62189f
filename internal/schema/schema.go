// Package schema declares the canonical shape of extractable claim data and
// provides the validation pass that coerces untrusted extraction output into
// well-typed field values.
package schema

import (
	"fmt"
	"strings"
)

// FieldType is the semantic type of an extractable field.
type FieldType string

// Supported field types.
const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeEnum    FieldType = "enum"
	TypeDate    FieldType = "date"
	TypeBoolean FieldType = "boolean"
)

// FieldSpec declares one extractable field.
type FieldSpec struct {
	Name        string
	Type        FieldType
	Required    bool
	Allowed     []string // enum fields only
	Description string   // rendered into the extraction prompt
}

// Schema is an ordered, immutable set of field specs. Construct it once at
// process start; it is safe to share across concurrent runs.
type Schema struct {
	specs  []FieldSpec
	byName map[string]int
}

// New builds a Schema from ordered field specs.
func New(specs ...FieldSpec) (*Schema, error) {
	s := &Schema{
		specs:  make([]FieldSpec, len(specs)),
		byName: make(map[string]int, len(specs)),
	}
	copy(s.specs, specs)
	for i, spec := range s.specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("schema field %d has no name", i)
		}
		if _, dup := s.byName[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate schema field %q", spec.Name)
		}
		switch spec.Type {
		case TypeString, TypeNumber, TypeDate, TypeBoolean:
			if len(spec.Allowed) > 0 {
				return nil, fmt.Errorf("field %q: allowed values only apply to enum fields", spec.Name)
			}
		case TypeEnum:
			if len(spec.Allowed) == 0 {
				return nil, fmt.Errorf("enum field %q has no allowed values", spec.Name)
			}
		default:
			return nil, fmt.Errorf("field %q: unknown type %q", spec.Name, spec.Type)
		}
		s.byName[spec.Name] = i
	}
	return s, nil
}

// MustNew builds a Schema and panics on declaration errors. Use for the
// built-in schema, which is validated by tests.
func MustNew(specs ...FieldSpec) *Schema {
	s, err := New(specs...)
	if err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return s
}

// Fields returns the field specs in declaration order.
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.specs))
	copy(out, s.specs)
	return out
}

// Lookup returns the spec for a field name.
func (s *Schema) Lookup(name string) (FieldSpec, bool) {
	i, ok := s.byName[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.specs[i], true
}

// Has reports whether the schema declares a field.
func (s *Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	return len(s.specs)
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.specs))
	for i, spec := range s.specs {
		names[i] = spec.Name
	}
	return names
}

// ClaimSchema returns the built-in field schema for life insurance claim
// documents. Field order matches the extraction prompt contract.
func ClaimSchema() *Schema {
	return MustNew(
		FieldSpec{Name: "patient_name", Type: TypeString, Required: true,
			Description: "Patient full name"},
		FieldSpec{Name: "date_of_birth", Type: TypeDate, Required: true,
			Description: "Patient date of birth"},
		FieldSpec{Name: "report_date", Type: TypeDate, Required: true,
			Description: "Report or examination date"},
		FieldSpec{Name: "provider_name", Type: TypeString, Required: true,
			Description: "Treating provider or clinic name"},
		FieldSpec{Name: "policy_number", Type: TypeString, Required: false,
			Description: "Policy or claim reference number"},
		FieldSpec{Name: "policy_status", Type: TypeEnum, Required: true,
			Allowed:     []string{"active", "lapsed", "pending", "cancelled"},
			Description: "Status of the policy at the time of the claim"},
		FieldSpec{Name: "claim_amount", Type: TypeNumber, Required: false,
			Description: "Claimed amount in the policy currency"},
		FieldSpec{Name: "primary_diagnosis", Type: TypeString, Required: false,
			Description: "Primary diagnosis named in the document"},
		FieldSpec{Name: "diagnosis_summary", Type: TypeString, Required: false,
			Description: "All diagnoses mentioned, comma separated"},
		FieldSpec{Name: "medications", Type: TypeString, Required: false,
			Description: "All medications mentioned, comma separated"},
		FieldSpec{Name: "smoker", Type: TypeBoolean, Required: false,
			Description: "Whether the patient is recorded as a smoker"},
	)
}

// canonicalEnum returns the allowed value matching raw case-insensitively.
func canonicalEnum(raw string, allowed []string) (string, bool) {
	for _, a := range allowed {
		if strings.EqualFold(raw, a) {
			return a, true
		}
	}
	return "", false
}
