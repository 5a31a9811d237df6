package http

import (
	"net/http"

	"github.com/go-account-api/internal/application/identity"
	"github.com/go-account-api/internal/application/linking"
	"github.com/go-account-api/internal/application/notify"
	"github.com/go-account-api/internal/application/profile"
	"github.com/go-account-api/internal/config"
	"github.com/go-account-api/internal/transport/http/handler"
	appmiddleware "github.com/go-account-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Assemble ServiceDeps field by field: a nil *Repo assigned straight into
	// an interface field would not compare equal to nil inside the service.
	identityDeps := identity.ServiceDeps{}
	if deps.AccountRepo != nil {
		identityDeps.Accounts = deps.AccountRepo
	}
	if deps.JWTProvider != nil {
		identityDeps.Tokens = deps.JWTProvider
	}
	if deps.GoogleVerifier != nil {
		identityDeps.Google = deps.GoogleVerifier
	}
	identitySvc := identity.NewService(identityDeps)

	var profileStore profile.Store
	if deps.ProfileRepo != nil {
		profileStore = deps.ProfileRepo
	}
	profileSvc := profile.NewService(profileStore)

	var tokenStore notify.SetupTokenStore
	if deps.SetupTokenRepo != nil {
		tokenStore = deps.SetupTokenRepo
	}
	notifySvc := notify.NewService(deps.Mailer, tokenStore)

	linkingSvc := linking.NewService(identitySvc)

	healthH := handler.NewHealthHandler(handler.CollaboratorStatus{
		Identity: identitySvc.Ready(),
		Database: deps.ProfileRepo != nil,
		Email:    deps.Mailer != nil && deps.Mailer.Configured(),
	})
	emailH := handler.NewEmailHandler(notifySvc)
	setupH := handler.NewSetupPasswordHandler(linkingSvc)
	userH := handler.NewUserHandler(profileSvc)
	googleH := handler.NewGoogleAuthHandler(identitySvc)

	authMw := appmiddleware.Auth(identitySvc)

	// 5 requests/second, burst of 10 — the email endpoints send real mail.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	r.Get("/health", healthH.Check)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Post("/auth/google", googleH.SignIn)
		r.With(sensitiveRL.Limit).Post("/send-verification-email", emailH.SendVerificationEmail)
		r.With(sensitiveRL.Limit).Post("/send-password-setup-email", emailH.SendPasswordSetupEmail)
		r.Get("/setup-password", setupH.Form)
		r.Post("/setup-password", setupH.Submit)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/users", userH.Upsert)
			r.Get("/users/me", userH.GetMe)
			r.Put("/users/me", userH.UpdateMe)
		})
	})

	return r
}
