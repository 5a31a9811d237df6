package handler

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-account-api/internal/application/linking"
	"github.com/go-account-api/internal/domain"
	"github.com/go-account-api/internal/pkg/validate"
)

// SetupPasswordHandler serves the password-setup form and runs the
// account-linking workflow on submission.
type SetupPasswordHandler struct {
	svc linking.Service
}

func NewSetupPasswordHandler(svc linking.Service) *SetupPasswordHandler {
	return &SetupPasswordHandler{svc: svc}
}

// Form renders the HTML password-setup page. It only checks that the link
// carries both query parameters; the token itself is validated by the client
// that requested it.
func (h *SetupPasswordHandler) Form(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	email := r.URL.Query().Get("email")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if token == "" || email == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = formErrorTmpl.Execute(w, nil)
		return
	}
	_ = formTmpl.Execute(w, map[string]string{"Token": token, "Email": email})
}

// Submit runs the linking workflow. Errors map to the product copy the
// form and mobile clients display verbatim.
func (h *SetupPasswordHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req linking.SetupPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Token == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: email, password, token")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.svc.SetupPassword(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, MessageEnvelope{
			Success: true,
			Message: "Password set successfully. You can now sign in with email and password.",
		})
	case errors.Is(err, domain.ErrAlreadyLinked):
		writeError(w, http.StatusBadRequest, "This account already has a password set")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "No account found with this email")
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusInternalServerError, "Identity provider not initialized")
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "Missing required fields: email, password, token")
	default:
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to set password", err)
	}
}

var formTmpl = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
<head>
	<title>Set Up Your Password</title>
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<style>
		body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; }
		.card { max-width: 400px; margin: 60px auto; background: #fff; padding: 30px; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,.1); }
		input { width: 100%; padding: 10px; margin: 8px 0 16px; border: 1px solid #ccc; border-radius: 4px; box-sizing: border-box; }
		button { width: 100%; padding: 12px; background: #4CAF50; color: #fff; border: none; border-radius: 4px; font-size: 16px; cursor: pointer; }
		.msg { margin-top: 16px; }
	</style>
</head>
<body>
	<div class="card">
		<h2>Set Up Your Password</h2>
		<p>Setting a password for <strong>{{.Email}}</strong></p>
		<form id="setup-form">
			<label for="password">New password</label>
			<input type="password" id="password" minlength="6" required>
			<button type="submit">Set Password</button>
		</form>
		<div class="msg" id="msg"></div>
	</div>
	<script>
		document.getElementById('setup-form').addEventListener('submit', async function (e) {
			e.preventDefault();
			const msg = document.getElementById('msg');
			const res = await fetch('/api/setup-password', {
				method: 'POST',
				headers: { 'Content-Type': 'application/json' },
				body: JSON.stringify({
					email: {{.Email}},
					token: {{.Token}},
					password: document.getElementById('password').value
				})
			});
			const body = await res.json();
			msg.textContent = body.message || body.error;
			msg.style.color = body.success ? 'green' : 'red';
		});
	</script>
</body>
</html>`))

var formErrorTmpl = template.Must(template.New("formError").Parse(`<!DOCTYPE html>
<html>
<head><title>Invalid Link</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding: 60px;">
	<h2>Invalid or incomplete link</h2>
	<p>This password setup link is missing required information. Please request a new one from the app.</p>
</body>
</html>`))
