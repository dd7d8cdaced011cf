package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured non-2xx response from the backend. Callers can use
// errors.As to extract it:
//
//	var apiErr *api.Error
//	if errors.As(err, &apiErr) {
//	    if apiErr.StatusCode == http.StatusNotFound { ... }
//	}
type Error struct {
	// Detail is the human-readable message from the backend's `detail` field.
	Detail string `json:"detail"`
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"-"`
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: %s (%d)", e.Detail, e.StatusCode)
}

// UserMessage is the text shown to the user for any failed action: the
// backend's detail verbatim when present, a generic transport message otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Backend not reachable"
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
