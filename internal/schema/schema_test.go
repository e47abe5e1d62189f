package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		specs   []FieldSpec
		wantErr string
	}{
		{
			name:    "Unnamed field",
			specs:   []FieldSpec{{Type: TypeString}},
			wantErr: "has no name",
		},
		{
			name: "Duplicate field name",
			specs: []FieldSpec{
				{Name: "policy_status", Type: TypeString},
				{Name: "policy_status", Type: TypeString},
			},
			wantErr: "duplicate schema field",
		},
		{
			name:    "Enum without allowed values",
			specs:   []FieldSpec{{Name: "policy_status", Type: TypeEnum}},
			wantErr: "no allowed values",
		},
		{
			name:    "Allowed values on non-enum field",
			specs:   []FieldSpec{{Name: "smoker", Type: TypeBoolean, Allowed: []string{"yes"}}},
			wantErr: "only apply to enum fields",
		},
		{
			name:    "Unknown type",
			specs:   []FieldSpec{{Name: "claim_amount", Type: FieldType("decimal")}},
			wantErr: "unknown type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.specs...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaLookupAndOrder(t *testing.T) {
	s, err := New(
		FieldSpec{Name: "patient_name", Type: TypeString, Required: true},
		FieldSpec{Name: "claim_amount", Type: TypeNumber},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"patient_name", "claim_amount"}, s.Names())
	assert.True(t, s.Has("claim_amount"))
	assert.False(t, s.Has("policy_status"))

	spec, ok := s.Lookup("patient_name")
	require.True(t, ok)
	assert.True(t, spec.Required)
	assert.Equal(t, TypeString, spec.Type)
}

func TestClaimSchemaDeclaration(t *testing.T) {
	s := ClaimSchema()

	for _, name := range []string{"patient_name", "date_of_birth", "report_date", "provider_name", "policy_status"} {
		spec, ok := s.Lookup(name)
		require.True(t, ok, "missing field %s", name)
		assert.True(t, spec.Required, "%s should be required", name)
	}

	status, ok := s.Lookup("policy_status")
	require.True(t, ok)
	assert.Equal(t, TypeEnum, status.Type)
	assert.ElementsMatch(t, []string{"active", "lapsed", "pending", "cancelled"}, status.Allowed)

	amount, ok := s.Lookup("claim_amount")
	require.True(t, ok)
	assert.Equal(t, TypeNumber, amount.Type)
	assert.False(t, amount.Required)
}
