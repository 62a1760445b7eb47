package llm

import (
	"encoding/json"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced json tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no tag", "```\n[1,2,3]\n```", `[1,2,3]`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
		{"missing closing fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"lone fence", "```", ""},
		{"empty", "", ""},
		{"multiline body", "```json\n[\n {\"q\": \"x\"}\n]\n```", "[\n {\"q\": \"x\"}\n]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripFences(json.RawMessage(tt.in))
			if string(got) != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
