package linking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-account-api/internal/domain"
)

// Gateway is the slice of the identity gateway the workflow needs.
type Gateway interface {
	Ready() bool
	AccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	LinkPassword(ctx context.Context, accountID, password string) error
}

// SetupPasswordRequest carries the inputs of the password-setup transition.
//
// Token is accepted but not validated here: the client that requested the
// setup email holds the token and checks it before calling. Callers of this
// service are bound by that contract.
type SetupPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Token    string `json:"token" validate:"required"`
}

// Service runs the one-way account-linking transition: an account that only
// has a federated credential gains a password credential, exactly once.
type Service interface {
	SetupPassword(ctx context.Context, req SetupPasswordRequest) error
}

type service struct {
	gateway Gateway
}

func NewService(gateway Gateway) Service {
	return &service{gateway: gateway}
}

// SetupPassword evaluates its gates in order, cheapest first, so each
// failure short-circuits before the next identity-provider call:
//
//	fields present -> gateway initialized -> account exists -> not yet linked -> link
//
// The email lookup is lowercased because the identity store's index is
// case-sensitive while the product treats addresses as case-insensitive.
// The final link call is conditionally atomic at the store, so a racing
// duplicate request fails with domain.ErrAlreadyLinked instead of
// double-linking; a second call after success always fails the same way.
func (s *service) SetupPassword(ctx context.Context, req SetupPasswordRequest) error {
	if req.Email == "" || req.Password == "" || req.Token == "" {
		return fmt.Errorf("email, password and token are required: %w", domain.ErrBadRequest)
	}
	if s.gateway == nil || !s.gateway.Ready() {
		return fmt.Errorf("identity gateway not initialized: %w", domain.ErrUnavailable)
	}

	acct, err := s.gateway.AccountByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no account found with this email: %w", domain.ErrNotFound)
		}
		// Transient provider failures are not "no such account".
		return fmt.Errorf("look up account for %s: %w", req.Email, err)
	}

	if acct.HasProvider(domain.ProviderPassword) {
		return fmt.Errorf("account %s: %w", acct.AccountID, domain.ErrAlreadyLinked)
	}

	if err := s.gateway.LinkPassword(ctx, acct.AccountID, req.Password); err != nil {
		return fmt.Errorf("set password for account %s: %w", acct.AccountID, err)
	}
	return nil
}
