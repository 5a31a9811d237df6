package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-account-api/internal/domain"
	"github.com/go-account-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) Upsert(ctx context.Context, accountID string, body map[string]interface{}) (*domain.UserProfile, error) {
	args := m.Called(ctx, accountID, body)
	if u, _ := args.Get(0).(*domain.UserProfile); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileService) Get(ctx context.Context, accountID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, accountID)
	if u, _ := args.Get(0).(*domain.UserProfile); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileService) Update(ctx context.Context, accountID string, body map[string]interface{}) (*domain.UserProfile, error) {
	args := m.Called(ctx, accountID, body)
	if u, _ := args.Get(0).(*domain.UserProfile); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func authedRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	principal := &domain.Principal{AccountID: "acct1", Email: "a@b.com"}
	return req.WithContext(context.WithValue(req.Context(), middleware.PrincipalKey, principal))
}

func TestUpsert_UsesPrincipalAccountID(t *testing.T) {
	svc := new(mockProfileService)
	stored := &domain.UserProfile{ID: "acct1", DisplayName: "Ana"}
	svc.On("Upsert", mock.Anything, "acct1", map[string]interface{}{"id": "attacker", "display_name": "Ana"}).Return(stored, nil)

	rr := httptest.NewRecorder()
	// Body-supplied id must not override the principal.
	NewUserHandler(svc).Upsert(rr, authedRequest(t, http.MethodPost, "/api/users", map[string]string{"id": "attacker", "display_name": "Ana"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	var env UserEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "acct1", env.User.ID)
	svc.AssertExpectations(t)
}

func TestUpsert_NoPrincipal(t *testing.T) {
	svc := new(mockProfileService)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(`{}`))
	NewUserHandler(svc).Upsert(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMe_NotFound(t *testing.T) {
	svc := new(mockProfileService)
	svc.On("Get", mock.Anything, "acct1").Return(nil, domain.ErrNotFound)

	rr := httptest.NewRecorder()
	NewUserHandler(svc).GetMe(rr, authedRequest(t, http.MethodGet, "/api/users/me", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var env UserEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "User not found", env.Error)
}

func TestUpdateMe_DoesNotCreate(t *testing.T) {
	svc := new(mockProfileService)
	svc.On("Update", mock.Anything, "acct1", mock.Anything).Return(nil, domain.ErrNotFound)

	rr := httptest.NewRecorder()
	NewUserHandler(svc).UpdateMe(rr, authedRequest(t, http.MethodPut, "/api/users/me", map[string]string{"display_name": "Ana"}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var env UserEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "User not found", env.Error)
	svc.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMe_InvalidBody(t *testing.T) {
	svc := new(mockProfileService)
	rr := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPut, "/api/users/me", nil)
	req.Body = http.NoBody
	NewUserHandler(svc).UpdateMe(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
