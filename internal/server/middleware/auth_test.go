package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubValidator accepts a fixed set of tokens.
type stubValidator map[string]uuid.UUID

func (v stubValidator) ValidateToken(token string) (UserIDGetter, error) {
	userID, ok := v[token]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return stubClaims(userID), nil
}

type stubClaims uuid.UUID

func (c stubClaims) GetUserID() uuid.UUID { return uuid.UUID(c) }

func authedRequest(header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	wrapped := AuthMiddleware(stubValidator{"good-token": userID})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, err := GetUserID(r)
			require.NoError(t, err)
			assert.Equal(t, userID, got)
			w.WriteHeader(http.StatusOK)
		}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, authedRequest("Bearer good-token"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_CaseInsensitiveScheme(t *testing.T) {
	userID := uuid.New()
	wrapped := AuthMiddleware(stubValidator{"good-token": userID})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	for _, header := range []string{"bearer good-token", "BEARER good-token"} {
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, authedRequest(header))
		assert.Equal(t, http.StatusOK, w.Code, "header %q", header)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "good-token"},
		{"scheme without token", "Bearer"},
		{"wrong scheme", "Basic good-token"},
		{"unknown token", "Bearer forged-token"},
		{"extra segments", "Bearer good token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			wrapped := AuthMiddleware(stubValidator{"good-token": uuid.New()})(
				http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) { called = true }))

			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, authedRequest(tt.header))

			assert.False(t, called, "handler must not run")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Unauthorized")
		})
	}
}

func TestGetUserID(t *testing.T) {
	userID := uuid.New()
	req := authedRequest("")
	req = req.WithContext(WithUserID(req.Context(), userID))

	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGetUserID_Missing(t *testing.T) {
	got, err := GetUserID(authedRequest(""))
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
}

func TestGetUserID_WrongType(t *testing.T) {
	req := authedRequest("")
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, "not-a-uuid"))

	got, err := GetUserID(req)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
}
