package logging

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FormatHTTPPayload normalizes HTTP payloads for log output. JSON bodies are
// pretty-printed without HTML escaping so debug logs stay readable.
func FormatHTTPPayload(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "<empty>"
	}

	// JSON string body: unwrap so the inner payload is rendered cleanly.
	var quoted string
	if err := json.Unmarshal([]byte(trimmed), &quoted); err == nil {
		trimmed = strings.TrimSpace(quoted)
	}

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err == nil {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(value); encErr == nil {
			return strings.TrimSpace(buf.String())
		}
	}

	return trimmed
}
