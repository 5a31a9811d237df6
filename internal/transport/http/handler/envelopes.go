package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-account-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// UserEnvelope wraps profile responses.
type UserEnvelope struct {
	Success bool                `json:"success"`
	User    *domain.UserProfile `json:"user,omitempty"`
	Error   string              `json:"error,omitempty"`
	Details string              `json:"details,omitempty"`
}

// AuthEnvelope wraps federated sign-in responses.
type AuthEnvelope struct {
	Success bool            `json:"success"`
	Bearer  string          `json:"bearer,omitempty"`
	Account *domain.Account `json:"account,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeErrorDetails keeps the product-facing message stable and passes the
// collaborator's error detail through in the details field.
func writeErrorDetails(w http.ResponseWriter, status int, msg string, err error) {
	writeJSON(w, status, MessageEnvelope{Error: msg, Details: err.Error()})
}

// statusFor maps domain sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrAlreadyLinked):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		// ErrUnavailable and pass-through collaborator failures.
		return http.StatusInternalServerError
	}
}

// httpError converts a service error into the uniform failure envelope.
func httpError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}
