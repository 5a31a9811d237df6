package handler

import (
	"net/http"
	"time"
)

// CollaboratorStatus reports which external collaborators were configured
// and connected at startup.
type CollaboratorStatus struct {
	Identity bool
	Database bool
	Email    bool
}

// HealthHandler reports process liveness plus per-collaborator state.
type HealthHandler struct {
	status CollaboratorStatus
}

func NewHealthHandler(status CollaboratorStatus) *HealthHandler {
	return &HealthHandler{status: status}
}

type healthEnvelope struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Identity  bool   `json:"identity"`
	Database  bool   `json:"database"`
	Email     bool   `json:"email"`
}

// Check always returns 200: a degraded collaborator is reported, not fatal.
func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthEnvelope{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Identity:  h.status.Identity,
		Database:  h.status.Database,
		Email:     h.status.Email,
	})
}
