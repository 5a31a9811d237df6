package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/go-account-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Upsert(ctx context.Context, accountID string, fields map[string]interface{}) (*domain.UserProfile, error) {
	args := m.Called(ctx, accountID, fields)
	if p, _ := args.Get(0).(*domain.UserProfile); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Get(ctx context.Context, accountID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, accountID)
	if p, _ := args.Get(0).(*domain.UserProfile); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Update(ctx context.Context, accountID string, fields map[string]interface{}) (*domain.UserProfile, error) {
	args := m.Called(ctx, accountID, fields)
	if p, _ := args.Get(0).(*domain.UserProfile); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpsert_SplitsAllowListedAndExtraFields(t *testing.T) {
	st := &mockStore{}
	var gotFields map[string]interface{}
	st.On("Upsert", mock.Anything, "acct1", mock.Anything).Run(func(args mock.Arguments) {
		gotFields = args.Get(2).(map[string]interface{})
	}).Return(&domain.UserProfile{ID: "acct1"}, nil)

	svc := NewService(st)
	_, err := svc.Upsert(context.Background(), "acct1", map[string]interface{}{
		"display_name":    "Ada",
		"university":      "Cambridge",
		"favourite_pizza": "margherita", // not allow-listed
		"id":              "evil", // reserved, must be dropped
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", gotFields["display_name"])
	assert.Equal(t, "Cambridge", gotFields["university"])
	assert.NotContains(t, gotFields, "id")
	assert.NotContains(t, gotFields, "favourite_pizza")
	extra, ok := gotFields["extra"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "margherita", extra["favourite_pizza"])
}

func TestUpsert_NoExtraKeyWhenAllFieldsKnown(t *testing.T) {
	st := &mockStore{}
	var gotFields map[string]interface{}
	st.On("Upsert", mock.Anything, "acct1", mock.Anything).Run(func(args mock.Arguments) {
		gotFields = args.Get(2).(map[string]interface{})
	}).Return(&domain.UserProfile{ID: "acct1"}, nil)

	svc := NewService(st)
	_, err := svc.Upsert(context.Background(), "acct1", map[string]interface{}{"bio": "hi"})
	require.NoError(t, err)
	assert.NotContains(t, gotFields, "extra")
}

func TestGet_NotFound(t *testing.T) {
	st := &mockStore{}
	st.On("Get", mock.Anything, "acct1").Return(nil, domain.ErrNotFound)

	svc := NewService(st)
	_, err := svc.Get(context.Background(), "acct1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_NotFound_NoImplicitCreation(t *testing.T) {
	st := &mockStore{}
	st.On("Update", mock.Anything, "acct1", mock.Anything).Return(nil, domain.ErrNotFound)

	svc := NewService(st)
	_, err := svc.Update(context.Background(), "acct1", map[string]interface{}{"bio": "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	st.AssertNotCalled(t, "Upsert")
}

func TestService_NilStore(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Get(context.Background(), "acct1")
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
	_, err = svc.Upsert(context.Background(), "acct1", map[string]interface{}{})
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
	_, err = svc.Update(context.Background(), "acct1", map[string]interface{}{})
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}
