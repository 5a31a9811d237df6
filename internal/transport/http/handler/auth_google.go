package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-account-api/internal/application/identity"
)

// GoogleAuthHandler handles federated sign-in.
type GoogleAuthHandler struct {
	svc identity.Service
}

func NewGoogleAuthHandler(svc identity.Service) *GoogleAuthHandler {
	return &GoogleAuthHandler{svc: svc}
}

// SignIn verifies a Google ID token, finds or creates the account, and
// returns a bearer token for the profile endpoints.
func (h *GoogleAuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IDToken == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: id_token")
		return
	}
	bearer, acct, err := h.svc.SignInWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Success: true, Bearer: bearer, Account: acct})
}
