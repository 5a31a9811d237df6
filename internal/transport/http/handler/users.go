package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-account-api/internal/application/profile"
	"github.com/go-account-api/internal/domain"
	"github.com/go-account-api/internal/transport/http/middleware"
)

// UserHandler handles the authenticated profile endpoints. The profile key is
// always the verified principal's account id — body-supplied ids are ignored.
type UserHandler struct {
	svc profile.Service
}

func NewUserHandler(svc profile.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Upsert(r.Context(), principal.AccountID, body)
	if err != nil {
		writeErrorDetails(w, statusFor(err), "Failed to save user", err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{Success: true, User: u})
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.svc.Get(r.Context(), principal.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeErrorDetails(w, statusFor(err), "Failed to fetch user", err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{Success: true, User: u})
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Update(r.Context(), principal.AccountID, body)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeErrorDetails(w, statusFor(err), "Failed to update user", err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{Success: true, User: u})
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return body, true
}
