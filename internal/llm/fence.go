package llm

import (
	"encoding/json"
	"strings"
)

// StripFences removes a Markdown code fence wrapping raw, if present.
// Models asked for JSON frequently reply with
//
//	```json
//	{...}
//	```
//
// even when told not to. The fence lines (with an optional language tag on
// the opening one) are dropped; content that is not fenced comes back
// unchanged apart from whitespace trimming.
func StripFences(raw json.RawMessage) json.RawMessage {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return json.RawMessage(s)
	}

	// Drop the opening fence line, including any language tag.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		// A lone fence with no newline: nothing inside.
		return json.RawMessage("")
	}

	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return json.RawMessage(s)
}
