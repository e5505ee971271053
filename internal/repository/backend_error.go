package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrBackendUnreachable wraps transport failures talking to the generation backend.
var ErrBackendUnreachable = errors.New("exam generation backend is unreachable")

// BackendError is a non-2xx answer from the backend. Detail is the backend's
// own "detail" message, kept verbatim so it can be shown to the user.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
}

func newBackendError(status int, body []byte) *BackendError {
	return &BackendError{StatusCode: status, Detail: extractDetail(status, body)}
}

// extractDetail reads {"detail": ...}. A string detail is returned as is, any
// other JSON value as its raw text; a body that is not JSON is returned
// trimmed, and an empty body falls back to the HTTP status text.
func extractDetail(status int, body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 && string(payload.Detail) != "null" {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			return s
		}
		return string(payload.Detail)
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(status)
}
