package http

import (
	"github.com/go-account-api/internal/infrastructure/dynamo"
	"github.com/go-account-api/internal/infrastructure/email"
	googleinfra "github.com/go-account-api/internal/infrastructure/google"
	jwtinfra "github.com/go-account-api/internal/infrastructure/jwt"
)

// Deps holds all infrastructure dependencies for the router. Everything is
// constructed once in main and passed in explicitly — nothing here is reached
// through package-level state.
//
// Nil fields mean the collaborator was not configured; the router wires the
// degraded path and /health reports the state.
type Deps struct {
	AccountRepo    *dynamo.AccountRepo
	ProfileRepo    *dynamo.ProfileRepo
	SetupTokenRepo *dynamo.SetupTokenRepo
	Mailer         email.Mailer
	JWTProvider    *jwtinfra.Provider
	GoogleVerifier *googleinfra.Verifier
}
