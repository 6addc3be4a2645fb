package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItineraryMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced", "```markdown\n# Test\n```", "# Test"},
		{"plain", "# Day 1\n- Arrive", "# Day 1\n- Arrive"},
		{"empty", "", ""},
		{"whitespace around fence", "  ```markdown\n# Tokyo\n```\n", "# Tokyo"},
		{"stacked closers", "# Plan``````", "# Plan"},
		{"only opener", "```markdown # Kyoto", "# Kyoto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ItineraryMarkdown(tt.in))
		})
	}
}

func TestItineraryMarkdownIdempotent(t *testing.T) {
	inputs := []string{
		"```markdown\n# Test\n```",
		"x```\n",
		"```markdown\n```markdown\n# Nested\n```\n```",
		"no fences at all",
		"  ```markdown   ",
	}

	for _, in := range inputs {
		once := ItineraryMarkdown(in)
		assert.Equal(t, once, ItineraryMarkdown(once), "input %q", in)
	}
}
