package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniela/resume-optimizer/internal/config"
	"github.com/daniela/resume-optimizer/internal/types"
)

func testAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	service, _ := testUserService(t)
	jwtService := NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-tests",
		ExpirationHours: 1,
	})
	return NewAuthHandler(service, jwtService)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	handler := testAuthHandler(t)

	rec := postJSON(t, handler.Register, "/auth/register", types.RegisterRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "dana@example.com", resp.User.Email)

	// The issued token must validate back to the new user.
	claims, err := handler.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	handler := testAuthHandler(t)

	tests := []struct {
		name string
		req  types.RegisterRequest
	}{
		{"missing email", types.RegisterRequest{FullName: "Dana", Password: "long enough pass"}},
		{"bad email", types.RegisterRequest{FullName: "Dana", Email: "not-an-email", Password: "long enough pass"}},
		{"short password", types.RegisterRequest{FullName: "Dana", Email: "dana@example.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, handler.Register, "/auth/register", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	handler := testAuthHandler(t)
	req := types.RegisterRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Password: "correct horse battery",
	}

	rec := postJSON(t, handler.Register, "/auth/register", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, handler.Register, "/auth/register", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	handler := testAuthHandler(t)

	rec := postJSON(t, handler.Register, "/auth/register", types.RegisterRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, handler.Login, "/auth/login", types.LoginRequest{
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_LoginBadPassword(t *testing.T) {
	handler := testAuthHandler(t)

	rec := postJSON(t, handler.Register, "/auth/register", types.RegisterRequest{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, handler.Login, "/auth/login", types.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_InvalidBody(t *testing.T) {
	handler := testAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
