package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a directory response with status >= 400. Message is the
// server-provided message field when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("directory: %s (status=%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("directory: request failed (status=%d)", e.StatusCode)
}

func apiErrorFrom(status int, body []byte) *APIError {
	var r struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &r)
	return &APIError{StatusCode: status, Message: r.Message}
}

// ServerMessage extracts the server-provided message from err, if err is an
// APIError that carried one.
func ServerMessage(err error) (string, bool) {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message, true
	}
	return "", false
}

// IsNotFound reports whether err is a 404 from the directory.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}
