// Package httpapi writes the JSON envelopes of the API namespaces.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
	CodeBadRequest       = "BAD_REQUEST"
	CodeValidation       = "VALIDATION_FAILED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeUpstream         = "UPSTREAM_UNAVAILABLE"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteBackendError maps a failed backend call onto the envelope. Backend
// messages are passed through only for validation failures.
func WriteBackendError(w http.ResponseWriter, err error, meta map[string]string) error {
	status, code, message := http.StatusBadGateway, CodeUpstream, "backend unavailable"
	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		status, code, message = http.StatusNotFound, CodeNotFound, "not found"
	case errors.Is(err, apiclient.ErrUnauthorized), errors.Is(err, apiclient.ErrSessionExpired):
		status, code, message = http.StatusUnauthorized, CodeUnauthorized, "unauthorized"
	case errors.Is(err, apiclient.ErrForbidden):
		status, code, message = http.StatusForbidden, CodeForbidden, "forbidden"
	case errors.Is(err, apiclient.ErrValidation):
		status, code, message = http.StatusUnprocessableEntity, CodeValidation, "validation failed"
		if se, ok := apiclient.AsStatus(err); ok {
			if se.Message != "" {
				message = se.Message
			}
			if len(se.Errors) > 0 {
				if meta == nil {
					meta = map[string]string{}
				}
				for field := range se.Errors {
					meta["field."+field] = se.FieldError(field)
				}
			}
		}
	}
	return WriteError(w, status, code, message, meta)
}
