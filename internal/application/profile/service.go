package profile

import (
	"context"
	"fmt"

	"github.com/go-account-api/internal/domain"
)

// Store is the document persistence the service requires.
type Store interface {
	Upsert(ctx context.Context, accountID string, fields map[string]interface{}) (*domain.UserProfile, error)
	Get(ctx context.Context, accountID string) (*domain.UserProfile, error)
	Update(ctx context.Context, accountID string, fields map[string]interface{}) (*domain.UserProfile, error)
}

// Service implements profile CRUD for the authenticated account. Ownership is
// enforced upstream: the account id always comes from the verified principal,
// never from the request body.
type Service interface {
	// Upsert merges the body into the profile, creating it if absent.
	Upsert(ctx context.Context, accountID string, body map[string]interface{}) (*domain.UserProfile, error)
	Get(ctx context.Context, accountID string) (*domain.UserProfile, error)
	// Update merges the body but fails with domain.ErrNotFound when no
	// profile exists — no implicit creation.
	Update(ctx context.Context, accountID string, body map[string]interface{}) (*domain.UserProfile, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Upsert(ctx context.Context, accountID string, body map[string]interface{}) (*domain.UserProfile, error) {
	if s.store == nil {
		return nil, fmt.Errorf("profile store not initialized: %w", domain.ErrUnavailable)
	}
	return s.store.Upsert(ctx, accountID, toFields(body))
}

func (s *service) Get(ctx context.Context, accountID string) (*domain.UserProfile, error) {
	if s.store == nil {
		return nil, fmt.Errorf("profile store not initialized: %w", domain.ErrUnavailable)
	}
	return s.store.Get(ctx, accountID)
}

func (s *service) Update(ctx context.Context, accountID string, body map[string]interface{}) (*domain.UserProfile, error) {
	if s.store == nil {
		return nil, fmt.Errorf("profile store not initialized: %w", domain.ErrUnavailable)
	}
	return s.store.Update(ctx, accountID, toFields(body))
}

// toFields partitions the raw body into the stored attribute map: allow-listed
// fields at the top level, everything else under the typed extension map.
func toFields(body map[string]interface{}) map[string]interface{} {
	known, extra := domain.SplitProfileFields(body)
	if len(extra) > 0 {
		known["extra"] = extra
	}
	return known
}
