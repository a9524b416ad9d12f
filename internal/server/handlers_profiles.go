package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/daniela/resume-optimizer/internal/db"
	"github.com/daniela/resume-optimizer/internal/server/middleware"
	"github.com/daniela/resume-optimizer/internal/types"
)

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}

// authedUser extracts the authenticated user ID, writing a 401 on failure.
func (s *Server) authedUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// adminUser extracts the authenticated user ID and requires the admin role.
// Writes a 403 for non-admins. Prompt registry writes go through here:
// prompts are shared across all tenants, so regular users only get reads.
func (s *Server) adminUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return uuid.Nil, false
	}
	admin, err := s.userService.IsAdmin(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return uuid.Nil, false
	}
	if !admin {
		s.errorResponse(w, http.StatusForbidden, "admin access required")
		return uuid.Nil, false
	}
	return userID, true
}

// handleGetMe returns the authenticated user's profile.
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profileToUser(profile))
}

// handleUpdateMe updates the authenticated user's profile.
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	err := s.db.UpdateProfile(r.Context(), userID, db.ProfileUpdate{
		FullName:            req.FullName,
		TargetRole:          req.TargetRole,
		ExperienceLevel:     req.ExperienceLevel,
		Country:             req.Country,
		OnboardingCompleted: req.OnboardingCompleted,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil || profile == nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to reload profile")
		return
	}
	s.jsonResponse(w, http.StatusOK, profileToUser(profile))
}

// handleDeleteMe soft deletes the authenticated user's profile.
func (s *Server) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	if err := s.db.SoftDeleteProfile(r.Context(), userID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdatePassword changes the authenticated user's password.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}
	s.authHandler.UpdatePassword(w, r, userID)
}

// provisionRequest mirrors the payload an identity provider webhook sends
// when a new identity is created.
type provisionRequest struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

// handleProvisionProfile ensures a profile row exists for an externally
// created identity. Provisioning is best-effort and idempotent, so this
// always answers 202 for a well-formed request.
func (s *Server) handleProvisionProfile(w http.ResponseWriter, r *http.Request) {
	var req provisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.provisioner.EnsureProfile(r.Context(), req.ID, req.Email, req.FullName)
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
