package vikunja

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the Vikunja API.
type APIError struct {
	Method     string
	Path       string
	RequestID  string
	StatusCode int
	Message    string // Vikunja's "message" field, or the raw body
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("vikunja API error: %s %s returned %d: %s (request %s)",
		e.Method, e.Path, e.StatusCode, msg, e.RequestID)
}

// parseAPIError converts an error response body into an *APIError. Vikunja
// error bodies are {"code": ..., "message": ...}; anything else is kept raw.
func parseAPIError(method, path, requestID string, statusCode int, body []byte) error {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		RequestID:  requestID,
		StatusCode: statusCode,
	}

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		apiErr.Message = parsed.Message
	} else {
		apiErr.Message = string(body)
	}

	return apiErr
}

// NotFoundError reports that a named entity could not be resolved by title.
type NotFoundError struct {
	Kind string // "project", "view", "bucket", "label"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
