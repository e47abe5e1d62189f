package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "CRLF normalized",
			input:    "Patient: Jane Doe\r\nStatus: Active\r\n",
			expected: "Patient: Jane Doe\nStatus: Active",
		},
		{
			name:     "Internal space runs collapsed",
			input:    "Policy Number:      LP-2024-884-J",
			expected: "Policy Number: LP-2024-884-J",
		},
		{
			name:     "Leading indentation preserved",
			input:    "Medications:\n  - Loratadine   10mg",
			expected: "Medications:\n  - Loratadine 10mg",
		},
		{
			name:     "Blank-line runs reduced",
			input:    "Section A\n\n\n\n\nSection B",
			expected: "Section A\n\nSection B",
		},
		{
			name:     "Whitespace-only lines emptied",
			input:    "a\n   \t\nb",
			expected: "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}
