package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired is returned when the server answers 401 or 403.
	// By the time a caller sees it the session has already been torn down,
	// so it must be reported, never retried.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
)

// APIError is a non-2xx response from the server, carrying the
// server-supplied message body when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// Is maps status codes onto the package sentinels so callers can use
// errors.Is without inspecting statuses themselves.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrSessionExpired:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// Message extracts the server-supplied message from err, falling back to
// the given generic message. Used for user-facing notifications.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
