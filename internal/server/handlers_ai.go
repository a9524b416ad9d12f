package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/daniela/resume-optimizer/internal/types"
)

// handleImproveBullet runs the bullet improvement skill on a stored bullet
// and saves the improved text back onto the bullet row.
func (s *Server) handleImproveBullet(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}
	if s.runner == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "AI skills are not configured")
		return
	}

	var req types.ImproveBulletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	bulletID, err := uuid.Parse(req.BulletID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid bullet id")
		return
	}

	bullet, err := s.db.GetBullet(r.Context(), userID, bulletID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if bullet == nil {
		s.errorResponse(w, http.StatusNotFound, "bullet not found")
		return
	}

	jobContext := ""
	if req.JobID != "" {
		jobID, err := uuid.Parse(req.JobID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid job id")
			return
		}
		job, err := s.db.GetJobDescription(r.Context(), userID, jobID)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		if job != nil {
			jobContext = "Target role: " + job.Title
			if job.Company != "" {
				jobContext += " at " + job.Company
			}
		}
	}

	result, err := s.runner.ImproveBullet(r.Context(), userID, bullet.OriginalText, jobContext)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := s.db.SetBulletImprovement(r.Context(), userID, bulletID, result.Output, nil); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"improved_text": result.Output,
		"request_id":    result.RequestID,
		"response_id":   result.ResponseID,
	})
}

// handleGenerateSummary runs the summary generation skill for a version.
func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}
	if s.runner == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "AI skills are not configured")
		return
	}

	var req types.GenerateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	versionID, err := uuid.Parse(req.VersionID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid version id")
		return
	}

	version, err := s.db.GetVersion(r.Context(), userID, versionID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if version == nil {
		s.errorResponse(w, http.StatusNotFound, "version not found")
		return
	}

	skills, err := s.db.ListResumeSkills(r.Context(), userID, versionID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	skillNames := make([]string, 0, len(skills))
	for _, sk := range skills {
		skillNames = append(skillNames, sk.SkillName)
	}

	targetRole := req.TargetRole
	if targetRole == "" {
		if profile, err := s.db.GetProfile(r.Context(), userID); err == nil && profile != nil {
			targetRole = profile.TargetRole
		}
	}

	result, err := s.runner.GenerateSummary(r.Context(), userID, version.ContentRaw, strings.Join(skillNames, ", "), targetRole)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"summary":     result.Output,
		"request_id":  result.RequestID,
		"response_id": result.ResponseID,
	})
}

// handleListAIRequests returns the caller's recent entries in the AI audit
// trail. ?limit= caps the page size (default 50).
func (s *Server) handleListAIRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			s.errorResponse(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	requests, err := s.db.ListAIRequests(r.Context(), userID, limit)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, requests)
}
