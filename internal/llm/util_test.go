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
		{"json code block", "```json\n{\"email\": \"jane@x.com\"}\n```", `{"email": "jane@x.com"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"code block with language", "```javascript\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble", "Here is the parsed resume:\n{\"firstName\": \"Jane\"}", `{"firstName": "Jane"}`},
		{"trailing text", "{\"skills\": [\"Go\"]}\n\nLet me know if you need more.", `{"skills": ["Go"]}`},
		{"array", "Items:\n[\"a\", \"b\"]", `["a", "b"]`},
		{"escaped quotes", `Result: {"summary": "He said \"hi\" {ok}"}`, `{"summary": "He said \"hi\" {ok}"}`},
		{"no JSON", "sorry, I cannot help", "sorry, I cannot help"},
		{"unbalanced", `{"a": 1`, `{"a": 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractBalanced(t *testing.T) {
	assert.Equal(t, `{"outer": {"inner": 1}}`, extractJSONObject(`{"outer": {"inner": 1}} tail`))
	assert.Equal(t, `[[1, 2], [3]]`, extractJSONArray(`[[1, 2], [3]] tail`))
	assert.Equal(t, "", extractJSONObject("not json"))
	assert.Equal(t, "", extractJSONArray(""))
}
