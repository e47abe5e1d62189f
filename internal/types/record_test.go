package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldValueConstructors(t *testing.T) {
	absent := Absent("string")
	assert.False(t, absent.Present)
	assert.Equal(t, "string", absent.Kind)

	text := TextValue("enum", "active", "Active")
	assert.True(t, text.Present)
	assert.Equal(t, "active", text.Text)
	assert.Equal(t, "Active", text.Raw)

	number := NumberValue(0, "0")
	assert.True(t, number.Present, "zero is a present value")

	flag := BoolValue(false, "false")
	assert.True(t, flag.Present, "false is a present value")
}

func TestRecordFieldLookup(t *testing.T) {
	record := &ExtractedRecord{
		FieldNames: []string{"patient_name"},
		Fields: map[string]FieldValue{
			"patient_name": TextValue("string", "Jane Doe", "Jane Doe"),
		},
	}

	assert.True(t, record.Field("patient_name").Present)
	assert.False(t, record.Field("unknown").Present, "unknown names read as absent")
	assert.True(t, record.FieldAbsent("unknown"))

	var nilRecord *ExtractedRecord
	assert.False(t, nilRecord.Field("patient_name").Present)
}

func TestIssuesOn(t *testing.T) {
	record := &ExtractedRecord{
		Issues: []ExtractionIssue{
			{Field: "policy_status", Kind: IssueInvalidValue, Detail: "bad enum"},
			{Field: "claim_amount", Kind: IssueInvalidValue, Detail: "not a number"},
			{Kind: IssueExtractionFailed, Detail: "call failed"},
		},
	}

	consulted := map[string]bool{"policy_status": true}
	relevant := record.IssuesOn(consulted)

	// The consulted-field issue and the unattributed extraction failure
	// match; the unrelated field issue does not.
	assert.Len(t, relevant, 2)
	assert.Equal(t, "policy_status", relevant[0].Field)
	assert.Equal(t, IssueExtractionFailed, relevant[1].Kind)
}

func TestOutcomeValid(t *testing.T) {
	assert.True(t, OutcomeApprove.Valid())
	assert.True(t, OutcomeDeny.Valid())
	assert.True(t, OutcomeRefer.Valid())
	assert.False(t, Outcome("escalate").Valid())
	assert.False(t, Outcome("").Valid())
}
