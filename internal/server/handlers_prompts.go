package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/daniela/resume-optimizer/internal/db"
	"github.com/daniela/resume-optimizer/internal/types"
)

// handleCreatePromptDraft registers a new draft prompt version. Admin only.
func (s *Server) handleCreatePromptDraft(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.adminUser(w, r); !ok {
		return
	}

	var req types.CreatePromptDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	prompt, err := s.registry.CreateDraft(r.Context(), db.PromptInput{
		SkillName:    req.SkillName,
		SystemPrompt: req.SystemPrompt,
		PromptText:   req.PromptText,
		OutputSchema: db.JSONMap(req.OutputSchema),
		ChangeNotes:  req.ChangeNotes,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, prompt)
}

// handleListPrompts lists prompts, optionally filtered by ?skill= and ?status=.
func (s *Server) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authedUser(w, r); !ok {
		return
	}

	prompts, err := s.db.ListPrompts(r.Context(), r.URL.Query().Get("skill"), r.URL.Query().Get("status"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, prompts)
}

// handleGetPrompt returns one prompt version.
func (s *Server) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authedUser(w, r); !ok {
		return
	}
	promptID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid prompt id")
		return
	}

	prompt, err := s.db.GetPrompt(r.Context(), promptID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if prompt == nil {
		s.errorResponse(w, http.StatusNotFound, "prompt not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, prompt)
}

// handleUpdatePrompt edits a prompt's text. Admin only. Production prompts
// are frozen and answer 409.
func (s *Server) handleUpdatePrompt(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.adminUser(w, r); !ok {
		return
	}
	promptID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid prompt id")
		return
	}

	var req types.UpdatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.db.UpdatePromptText(r.Context(), promptID, req.SystemPrompt, req.PromptText); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetPromptStatus moves a prompt through its lifecycle. Admin only.
func (s *Server) handleSetPromptStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.adminUser(w, r); !ok {
		return
	}
	promptID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid prompt id")
		return
	}

	var req types.SetPromptStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.db.SetPromptStatus(r.Context(), promptID, req.Status); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleProposeCandidate records replacement prompt text for a skill.
// Admin only.
func (s *Server) handleProposeCandidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.adminUser(w, r); !ok {
		return
	}

	var req types.ProposeCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	id, err := s.registry.ProposeCandidate(r.Context(), req.SkillName, req.NewPromptText, req.Rationale)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleListPromotable lists validated candidates that beat the current
// production prompt.
func (s *Server) handleListPromotable(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authedUser(w, r); !ok {
		return
	}

	candidates, err := s.db.ListPromotableCandidates(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, candidates)
}

// handlePromoteCandidate promotes a validated candidate to production.
// Admin only.
func (s *Server) handlePromoteCandidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.adminUser(w, r); !ok {
		return
	}
	candidateID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	prompt, err := s.registry.Promote(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, prompt)
}

// handleEvaluateResponse records quality scores for an AI response. The
// response must belong to the caller's own audit trail.
func (s *Server) handleEvaluateResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	var req types.EvaluateResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	responseID, err := uuid.Parse(req.ResponseID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid response id")
		return
	}

	id, err := s.registry.Evaluate(r.Context(), userID, db.AIEvaluationInput{
		ResponseID:       responseID,
		EvaluatorType:    req.EvaluatorType,
		HelpfulnessScore: req.HelpfulnessScore,
		SafetyScore:      req.SafetyScore,
		ConsistencyScore: req.ConsistencyScore,
		Notes:            req.Notes,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}
