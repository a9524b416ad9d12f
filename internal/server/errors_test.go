package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/daniela/resume-optimizer/internal/db"
	"github.com/daniela/resume-optimizer/internal/storage"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "email", Message: "required"}, http.StatusBadRequest},
		{"row not found", db.ErrNotFound, http.StatusNotFound},
		{"wrapped row not found", fmt.Errorf("get resume: %w", db.ErrNotFound), http.StatusNotFound},
		{"object not found", storage.ErrObjectNotFound, http.StatusNotFound},
		{"frozen prompt", db.ErrPromptFrozen, http.StatusConflict},
		{"forbidden object", storage.ErrForbidden, http.StatusForbidden},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
