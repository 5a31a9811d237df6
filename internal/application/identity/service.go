package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-account-api/internal/domain"
	googleinfra "github.com/go-account-api/internal/infrastructure/google"
	jwtinfra "github.com/go-account-api/internal/infrastructure/jwt"
	"github.com/go-account-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// AccountStore is the account persistence the gateway requires.
type AccountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByGoogleSub(ctx context.Context, sub string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
	LinkPassword(ctx context.Context, accountID, passwordHash string) error
}

// TokenProvider signs and verifies bearer tokens.
type TokenProvider interface {
	Sign(accountID, email string) (string, error)
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}

// GoogleVerifier validates federated (Google) ID tokens.
type GoogleVerifier interface {
	Configured() bool
	Verify(ctx context.Context, token string) (*googleinfra.Payload, error)
}

// Service is the identity gateway: bearer-token verification, account lookup
// by email, the one-way password-linking mutation, and federated sign-in.
//
// AccountByEmail queries the store as given — the index is case-sensitive by
// storage, so callers that treat email as case-insensitive must lowercase
// first.
type Service interface {
	Ready() bool
	VerifyToken(ctx context.Context, raw string) (*domain.Principal, error)
	AccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	LinkPassword(ctx context.Context, accountID, password string) error
	SignInWithGoogle(ctx context.Context, idToken string) (bearer string, acct *domain.Account, err error)
}

// ServiceDeps are the collaborators for NewService. Any of them may be nil
// when the corresponding configuration is absent; Ready and the individual
// operations degrade accordingly.
type ServiceDeps struct {
	Accounts AccountStore
	Tokens   TokenProvider
	Google   GoogleVerifier
}

type service struct {
	accounts AccountStore
	tokens   TokenProvider
	google   GoogleVerifier
}

func NewService(deps ServiceDeps) Service {
	return &service{accounts: deps.Accounts, tokens: deps.Tokens, google: deps.Google}
}

func (s *service) Ready() bool {
	return s.accounts != nil && s.tokens != nil
}

func (s *service) VerifyToken(ctx context.Context, raw string) (*domain.Principal, error) {
	if s.tokens == nil {
		return nil, fmt.Errorf("token provider not initialized: %w", domain.ErrUnauthorized)
	}
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", domain.ErrUnauthorized)
	}
	return &domain.Principal{AccountID: claims.AccountID, Email: claims.Email}, nil
}

func (s *service) AccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if s.accounts == nil {
		return nil, fmt.Errorf("account store not initialized: %w", domain.ErrUnavailable)
	}
	return s.accounts.GetByEmail(ctx, email)
}

func (s *service) LinkPassword(ctx context.Context, accountID, password string) error {
	if s.accounts == nil {
		return fmt.Errorf("account store not initialized: %w", domain.ErrUnavailable)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.accounts.LinkPassword(ctx, accountID, string(hash))
}

// SignInWithGoogle verifies the ID token and finds or creates the account for
// its subject. New accounts start with the federated provider only.
func (s *service) SignInWithGoogle(ctx context.Context, idToken string) (string, *domain.Account, error) {
	if s.google == nil || !s.google.Configured() {
		return "", nil, fmt.Errorf("google sign-in not configured: %w", domain.ErrUnavailable)
	}
	if !s.Ready() {
		return "", nil, fmt.Errorf("identity gateway not initialized: %w", domain.ErrUnavailable)
	}
	payload, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, err
	}

	acct, err := s.accounts.GetByGoogleSub(ctx, payload.Sub)
	if err != nil {
		// Only a definitive miss creates an account; a transient store error
		// must not mint a duplicate for the same subject.
		if !errors.Is(err, domain.ErrNotFound) {
			return "", nil, err
		}
		now := time.Now().UTC()
		acct = &domain.Account{
			AccountID:   id.New(),
			Email:       strings.ToLower(payload.Email),
			Providers:   []string{domain.ProviderGoogle},
			GoogleSub:   payload.Sub,
			DisplayName: strings.TrimSpace(payload.FirstName + " " + payload.LastName),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.accounts.Put(ctx, acct); err != nil {
			return "", nil, err
		}
	}

	bearer, err := s.tokens.Sign(acct.AccountID, acct.Email)
	if err != nil {
		return "", nil, err
	}
	return bearer, acct, nil
}
