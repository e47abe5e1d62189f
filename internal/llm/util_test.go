package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Bare JSON unchanged",
			input:    `{"policy_status": "active"}`,
			expected: `{"policy_status": "active"}`,
		},
		{
			name:     "JSON fence stripped",
			input:    "```json\n{\"policy_status\": \"active\"}\n```",
			expected: `{"policy_status": "active"}`,
		},
		{
			name:     "Anonymous fence stripped",
			input:    "```\n{\"policy_status\": \"active\"}\n```",
			expected: `{"policy_status": "active"}`,
		},
		{
			name:     "Surrounding whitespace trimmed",
			input:    "  \n{\"a\": 1}\n  ",
			expected: `{"a": 1}`,
		},
		{
			name:     "Fence with language identifier line",
			input:    "```javascript\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
