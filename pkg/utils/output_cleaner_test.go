package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips bold",
			input:    "The business is **Heritage Gold & Jewels**",
			expected: "The business is Heritage Gold & Jewels",
		},
		{
			name:     "strips html tags",
			input:    "<p>2 proposals match</p>",
			expected: "2 proposals match",
		},
		{
			name:     "strips bullet markers",
			input:    "- Mehta Pawn Services\n- City FX Exchange",
			expected: "Mehta Pawn Services\nCity FX Exchange",
		},
		{
			name:     "strips headers and inline code",
			input:    "## Summary\nValue is `001`",
			expected: "Summary\nValue is 001",
		},
		{
			name:     "preserves field name underscores",
			input:    "shop_lifting_label is set",
			expected: "shop_lifting_label is set",
		},
		{
			name:     "collapses newlines",
			input:    "line one\n\n\n\nline two",
			expected: "line one\n\nline two",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanOutput(tt.input))
		})
	}
}

func TestRemoveThinkingTags(t *testing.T) {
	input := "<thinking>let me work this out</thinking>The answer is 3."
	assert.Equal(t, "The answer is 3.", RemoveThinkingTags(input))
}

func TestExtractAnswerOnly(t *testing.T) {
	assert.Equal(t, "3 proposals match.", ExtractAnswerOnly("Answer: 3 proposals match."))
	assert.Equal(t, "no prefix here", ExtractAnswerOnly("no prefix here"))
}

func TestFullClean(t *testing.T) {
	input := "<thinking>hmm</thinking>Answer: **2 proposal(s)** match the criteria."
	assert.Equal(t, "2 proposal(s) match the criteria.", FullClean(input))
}
