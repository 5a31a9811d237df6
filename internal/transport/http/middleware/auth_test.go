package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-account-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier lets each test decide how token verification behaves.
type stubVerifier struct {
	principal *domain.Principal
	err       error
	gotRaw    string
}

func (s *stubVerifier) VerifyToken(_ context.Context, raw string) (*domain.Principal, error) {
	s.gotRaw = raw
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestAuth_MissingHeader(t *testing.T) {
	v := &stubVerifier{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Auth(v)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	// The verifier must not even be consulted.
	assert.Empty(t, v.gotRaw)
}

func TestAuth_WrongScheme(t *testing.T) {
	v := &stubVerifier{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	Auth(v)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, v.gotRaw)
}

func TestAuth_VerificationFails(t *testing.T) {
	v := &stubVerifier{err: errors.New("expired")}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rr := httptest.NewRecorder()
	Auth(v)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "some-token", v.gotRaw)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestAuth_ValidToken_InjectsPrincipal(t *testing.T) {
	v := &stubVerifier{principal: &domain.Principal{AccountID: "acct1", Email: "a@b.com"}}

	var got *domain.Principal
	captureHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	Auth(v)(captureHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, "acct1", got.AccountID)
	assert.Equal(t, "a@b.com", got.Email)
}

func TestPrincipalFromContext_Absent(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)
}
