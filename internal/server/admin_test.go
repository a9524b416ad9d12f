package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniela/resume-optimizer/internal/server/middleware"
)

func TestUserService_IsAdmin(t *testing.T) {
	service, store := testUserService(t)
	ctx := context.Background()

	userID, err := store.CreateProfile(ctx, "pat@example.com", "hash", "Pat")
	require.NoError(t, err)

	admin, err := service.IsAdmin(ctx, userID)
	require.NoError(t, err)
	assert.False(t, admin, "new accounts must not be admins")

	store.profiles[userID].IsAdmin = true
	admin, err = service.IsAdmin(ctx, userID)
	require.NoError(t, err)
	assert.True(t, admin)

	// Unknown users are not admins.
	admin, err = service.IsAdmin(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, admin)
}

// promptAdminRequest builds an authenticated request against a prompt admin
// handler, with a path id that fails parsing so admin checks are exercised
// without a database.
func promptAdminRequest(userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/prompts/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestPromptWritesRequireAdmin(t *testing.T) {
	service, store := testUserService(t)
	s := &Server{userService: service}
	ctx := context.Background()

	userID, err := store.CreateProfile(ctx, "reg@example.com", "hash", "Reg")
	require.NoError(t, err)

	handlers := map[string]http.HandlerFunc{
		"update prompt": s.handleUpdatePrompt,
		"set status":    s.handleSetPromptStatus,
		"promote":       s.handlePromoteCandidate,
	}

	for name, handler := range handlers {
		t.Run(name+" forbidden for regular user", func(t *testing.T) {
			w := httptest.NewRecorder()
			handler(w, promptAdminRequest(userID))
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "admin access required")
		})
	}

	// An admin clears the role check and reaches request parsing.
	store.profiles[userID].IsAdmin = true
	for name, handler := range handlers {
		t.Run(name+" allowed for admin", func(t *testing.T) {
			w := httptest.NewRecorder()
			handler(w, promptAdminRequest(userID))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPromptWritesRequireAuthentication(t *testing.T) {
	service, _ := testUserService(t)
	s := &Server{userService: service}

	req := httptest.NewRequest(http.MethodPut, "/prompts/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")

	w := httptest.NewRecorder()
	s.handleUpdatePrompt(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
