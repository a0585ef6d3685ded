package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"termfeed/domain"
)

// statusError converts a non-2xx response into an error carrying the most
// specific message the body offers: `error`, then `detail`, then the first
// field-specific message array, then a generic fallback.
func statusError(method, path string, status int, body []byte) error {
	if status == http.StatusUnauthorized {
		return domain.ErrNotLoggedIn
	}
	return fmt.Errorf("API %s %s returned %d: %s", method, path, status, extractMessage(status, body))
}

func extractMessage(status int, body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"error", "detail"} {
			var msg string
			if raw, ok := payload[key]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
				return msg
			}
		}
		// Field-specific validation arrays, e.g. {"content": ["required"]}.
		for _, raw := range payload {
			var msgs []string
			if json.Unmarshal(raw, &msgs) == nil && len(msgs) > 0 && msgs[0] != "" {
				return msgs[0]
			}
		}
	}
	return fmt.Sprintf("request failed (%d)", status)
}
