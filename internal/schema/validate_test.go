package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/claims-triage/internal/types"
)

func TestValidateString(t *testing.T) {
	spec := FieldSpec{Name: "patient_name", Type: TypeString, Required: true}

	tests := []struct {
		name      string
		raw       any
		wantText  string
		wantIssue bool
		absent    bool
	}{
		{name: "Valid string", raw: "Jane Doe", wantText: "Jane Doe"},
		{name: "Whitespace trimmed", raw: "  Jane Doe  ", wantText: "Jane Doe"},
		{name: "Empty string is absent without issue", raw: "", absent: true},
		{name: "Nil is absent without issue", raw: nil, absent: true},
		{name: "Non-string is invalid", raw: 42.0, absent: true, wantIssue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, issue := Validate(tt.raw, spec)
			if tt.absent {
				assert.False(t, value.Present)
			} else {
				require.True(t, value.Present)
				assert.Equal(t, tt.wantText, value.Text)
			}
			if tt.wantIssue {
				require.NotNil(t, issue)
				assert.Equal(t, types.IssueInvalidValue, issue.Kind)
				assert.Equal(t, "patient_name", issue.Field)
			} else {
				assert.Nil(t, issue)
			}
		})
	}
}

func TestValidateEnum(t *testing.T) {
	spec := FieldSpec{
		Name: "policy_status", Type: TypeEnum, Required: true,
		Allowed: []string{"active", "lapsed", "pending", "cancelled"},
	}

	tests := []struct {
		name      string
		raw       any
		wantText  string
		wantIssue bool
	}{
		{name: "Allowed value", raw: "lapsed", wantText: "lapsed"},
		{name: "Case-insensitive match is canonicalized", raw: "Lapsed", wantText: "lapsed"},
		{name: "Out-of-set value is rejected, never coerced", raw: "expired", wantIssue: true},
		{name: "Non-string is rejected", raw: true, wantIssue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, issue := Validate(tt.raw, spec)
			if tt.wantIssue {
				assert.False(t, value.Present, "invalid enum must become absent")
				require.NotNil(t, issue)
				assert.Equal(t, types.IssueInvalidValue, issue.Kind)
			} else {
				require.True(t, value.Present)
				assert.Equal(t, tt.wantText, value.Text)
				assert.Nil(t, issue)
			}
		})
	}
}

func TestValidateNumber(t *testing.T) {
	spec := FieldSpec{Name: "claim_amount", Type: TypeNumber}

	tests := []struct {
		name       string
		raw        any
		wantNumber float64
		wantIssue  bool
		absent     bool
	}{
		{name: "JSON number", raw: 125000.0, wantNumber: 125000},
		{name: "Numeric string", raw: "125000", wantNumber: 125000},
		{name: "Currency formatting tolerated", raw: "$12,500.50", wantNumber: 12500.50},
		{name: "Empty string is absent", raw: "", absent: true},
		{name: "Non-numeric string is invalid", raw: "twelve", absent: true, wantIssue: true},
		{name: "Boolean is invalid", raw: true, absent: true, wantIssue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, issue := Validate(tt.raw, spec)
			if tt.absent {
				assert.False(t, value.Present)
			} else {
				require.True(t, value.Present)
				assert.Equal(t, tt.wantNumber, value.Number)
			}
			assert.Equal(t, tt.wantIssue, issue != nil)
		})
	}
}

func TestValidateDate(t *testing.T) {
	spec := FieldSpec{Name: "report_date", Type: TypeDate, Required: true}

	tests := []struct {
		name      string
		raw       any
		wantText  string
		wantIssue bool
	}{
		{name: "Full date", raw: "2024-11-02", wantText: "2024-11-02"},
		{name: "Year and month", raw: "2024-11", wantText: "2024-11"},
		{name: "Year only", raw: "2024", wantText: "2024"},
		{name: "Malformed date", raw: "02/11/2024", wantIssue: true},
		{name: "Impossible date", raw: "2024-13-45", wantIssue: true},
		{name: "Relative date text", raw: "two weeks ago", wantIssue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, issue := Validate(tt.raw, spec)
			if tt.wantIssue {
				assert.False(t, value.Present)
				require.NotNil(t, issue)
				assert.Equal(t, types.IssueInvalidValue, issue.Kind)
			} else {
				require.True(t, value.Present)
				assert.Equal(t, tt.wantText, value.Text)
				assert.Nil(t, issue)
			}
		})
	}
}

func TestValidateBoolean(t *testing.T) {
	spec := FieldSpec{Name: "smoker", Type: TypeBoolean}

	value, issue := Validate(true, spec)
	require.Nil(t, issue)
	require.True(t, value.Present)
	assert.True(t, value.Flag)

	value, issue = Validate("false", spec)
	require.Nil(t, issue)
	require.True(t, value.Present)
	assert.False(t, value.Flag)

	value, issue = Validate("maybe", spec)
	assert.False(t, value.Present)
	require.NotNil(t, issue)
	assert.Equal(t, types.IssueInvalidValue, issue.Kind)
}

func TestValidateDistinguishesAbsentFromZero(t *testing.T) {
	// A present zero amount must not read as absent.
	value, issue := Validate(0.0, FieldSpec{Name: "claim_amount", Type: TypeNumber})
	require.Nil(t, issue)
	assert.True(t, value.Present)
	assert.Equal(t, 0.0, value.Number)

	// A present false flag must not read as absent.
	value, issue = Validate(false, FieldSpec{Name: "smoker", Type: TypeBoolean})
	require.Nil(t, issue)
	assert.True(t, value.Present)
	assert.False(t, value.Flag)
}
