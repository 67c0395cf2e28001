package apiclient

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrSessionExpired = errors.New("session expired")
	ErrValidation     = errors.New("validation failed")
	ErrServer         = errors.New("backend error")
	ErrUnexpected     = errors.New("unexpected status")
)

// StatusError is a non-2xx backend answer.
type StatusError struct {
	Status  int
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend status %d", e.Status)
}

func (e *StatusError) Unwrap() error {
	return sentinelFor(e.Status)
}

// FieldError returns the first validation message for field.
func (e *StatusError) FieldError(field string) string {
	if e == nil {
		return ""
	}
	if msgs := e.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func sentinelFor(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == 419:
		return ErrSessionExpired
	case status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status >= 500:
		return ErrServer
	default:
		return ErrUnexpected
	}
}

// AsStatus extracts the StatusError from err.
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsAuthError reports whether the session must re-authenticate.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrSessionExpired)
}
