package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-account-api/internal/domain"
	"github.com/go-account-api/internal/infrastructure/email"
)

// Validity windows communicated in the email copy. The setup-token window is
// also enforced server-side via the token table's TTL.
const (
	codeValidity       = 10 * time.Minute
	setupTokenValidity = 24 * time.Hour
)

// SetupTokenStore records issued password-setup tokens.
type SetupTokenStore interface {
	Put(ctx context.Context, t *domain.SetupToken) error
}

// Service renders and dispatches transactional emails. Every send is a single
// delivery attempt with no retry; calling twice sends two emails, so callers
// are responsible for debouncing (the HTTP layer rate-limits these endpoints).
type Service interface {
	// SendVerificationCode emails the caller-supplied numeric code. Code
	// generation and later matching happen outside this service.
	SendVerificationCode(ctx context.Context, to, code string) error
	// SendPasswordSetupEmail records the token with its expiry and emails
	// the setup link.
	SendPasswordSetupEmail(ctx context.Context, to, token, setupURL string) error
}

type service struct {
	mailer email.Mailer
	tokens SetupTokenStore
}

func NewService(mailer email.Mailer, tokens SetupTokenStore) Service {
	return &service{mailer: mailer, tokens: tokens}
}

func (s *service) SendVerificationCode(ctx context.Context, to, code string) error {
	if s.mailer == nil || !s.mailer.Configured() {
		return fmt.Errorf("email delivery not configured: %w", domain.ErrUnavailable)
	}
	text, html := renderVerificationEmail(code, codeValidity)
	if err := s.mailer.Send(to, "Your Verification Code", text, html); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func (s *service) SendPasswordSetupEmail(ctx context.Context, to, token, setupURL string) error {
	if s.mailer == nil || !s.mailer.Configured() {
		return fmt.Errorf("email delivery not configured: %w", domain.ErrUnavailable)
	}

	if s.tokens != nil {
		now := time.Now().UTC()
		rec := &domain.SetupToken{
			Email:     to,
			Token:     token,
			CreatedAt: now.Unix(),
			ExpiresAt: now.Add(setupTokenValidity).Unix(),
		}
		if err := s.tokens.Put(ctx, rec); err != nil {
			return fmt.Errorf("record setup token: %w", err)
		}
	}

	text, html := renderPasswordSetupEmail(setupURL, setupTokenValidity)
	if err := s.mailer.Send(to, "Set Up Your Password", text, html); err != nil {
		return fmt.Errorf("send password setup email: %w", err)
	}
	return nil
}
