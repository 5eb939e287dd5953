package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a failed API call.
type Error struct {
	URL        string
	StatusCode int // zero when no response was received
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsUnauthorized reports whether err is an API error caused by a missing or
// rejected token.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
