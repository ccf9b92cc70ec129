package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError reports a non-2xx response. The body is not interpreted beyond
// its first line.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP error! status: %d (%s)", e.StatusCode, e.Message)
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// IsNotFound is shorthand for IsStatus(err, http.StatusNotFound).
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}
