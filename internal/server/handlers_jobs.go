package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/daniela/resume-optimizer/internal/db"
	"github.com/daniela/resume-optimizer/internal/ingest"
	"github.com/daniela/resume-optimizer/internal/scoring"
	"github.com/daniela/resume-optimizer/internal/types"
)

// handleCreateJob stores a client-supplied job description.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	id, err := s.db.CreateJobDescription(r.Context(), userID, db.JobDescriptionInput{
		Title:           req.Title,
		Company:         req.Company,
		Location:        req.Location,
		SourceURL:       req.SourceURL,
		ContentRaw:      req.ContentRaw,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleIngestJob fetches a job posting from a URL, extracts its content and
// stores it as a job description.
func (s *Server) handleIngestJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	var req types.IngestJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	posting, err := ingest.FromURL(r.Context(), req.URL, s.cfg.UseBrowser, s.cfg.Verbose)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	id, err := s.db.CreateJobDescription(r.Context(), userID, posting.Input())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":       id.String(),
		"title":    posting.Title,
		"company":  posting.Company,
		"rendered": posting.RenderedInBrowser,
	})
}

// handleListJobs lists the caller's job descriptions.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	jobs, err := s.db.ListJobDescriptions(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleGetJob returns one job description.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}
	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := s.db.GetJobDescription(r.Context(), userID, jobID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleDeleteJob soft deletes a job description.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}
	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	if err := s.db.SoftDeleteJobDescription(r.Context(), userID, jobID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddJobSkill attaches a skill requirement to a job description.
func (s *Server) handleAddJobSkill(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}
	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var req types.AddJobSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	skill, err := s.db.FindOrCreateSkill(r.Context(), req.SkillName, req.Category)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	importance := req.Importance
	if importance == "" {
		importance = db.ImportanceMedium
	}

	id, err := s.db.AddJobSkillRequirement(r.Context(), userID, jobID, skill.ID, importance, req.Required)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleListJobSkills lists a job's skill requirements.
func (s *Server) handleListJobSkills(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}
	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	reqs, err := s.db.ListJobSkillRequirements(r.Context(), userID, jobID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, reqs)
}

// handleAnalyzeJob scores a resume version against a job: the ATS score is
// stored on the version and the job's skill gaps are recomputed.
func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}
	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var req types.AnalyzeRequest
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

	requirements, err := s.db.ListJobSkillRequirements(r.Context(), userID, jobID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	resumeSkills, err := s.db.ListResumeSkills(r.Context(), userID, versionID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	report := scoring.MatchSkills(resumeSkills, requirements, version.ContentRaw)

	if err := s.db.SetVersionScores(r.Context(), userID, versionID, nil, &report.ATSScore); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	gaps := scoring.Gaps(report)
	if err := s.db.ReplaceSkillGaps(r.Context(), userID, jobID, gaps); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"ats_score": report.ATSScore,
		"matched":   report.Matched,
		"missing":   report.Missing,
		"gaps":      gaps,
	})
}

// handleListGaps lists the stored skill gaps for a job.
func (s *Server) handleListGaps(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}
	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	gaps, err := s.db.ListSkillGaps(r.Context(), userID, jobID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, gaps)
}
