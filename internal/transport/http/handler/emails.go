package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-account-api/internal/application/notify"
	"github.com/go-account-api/internal/domain"
)

// EmailHandler handles the public transactional-email endpoints.
type EmailHandler struct {
	svc notify.Service
}

func NewEmailHandler(svc notify.Service) *EmailHandler { return &EmailHandler{svc: svc} }

func (h *EmailHandler) SendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: email, code")
		return
	}
	if err := h.svc.SendVerificationCode(r.Context(), req.Email, req.Code); err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			writeError(w, http.StatusInternalServerError, "Email delivery not configured")
			return
		}
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to send verification email", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "Verification email sent successfully"})
}

func (h *EmailHandler) SendPasswordSetupEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Token    string `json:"token"`
		SetupURL string `json:"setupUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Token == "" || req.SetupURL == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: email, token, setupUrl")
		return
	}
	if err := h.svc.SendPasswordSetupEmail(r.Context(), req.Email, req.Token, req.SetupURL); err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			writeError(w, http.StatusInternalServerError, "Email delivery not configured")
			return
		}
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to send password setup email", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "Password setup email sent successfully"})
}
