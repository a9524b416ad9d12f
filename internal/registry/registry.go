// Package registry manages the versioned prompt registry and the AI
// request/response audit trail.
//
// Prompts move draft → testing → production → retired. Once a prompt is in
// production its text is frozen; improvements are proposed as candidates and
// promoted into a new version row, never edited in place.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daniela/resume-optimizer/internal/db"
)

// Registry wraps the prompt and audit-trail tables.
type Registry struct {
	db *db.DB
}

// New creates a Registry backed by the given database
func New(database *db.DB) *Registry {
	return &Registry{db: database}
}

// ProductionPrompt returns the current production prompt for a skill, or an
// error if the skill has none.
func (r *Registry) ProductionPrompt(ctx context.Context, skillName string) (*db.Prompt, error) {
	p, err := r.db.GetProductionPrompt(ctx, skillName)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("no production prompt for skill %q", skillName)
	}
	return p, nil
}

// CreateDraft registers a new draft version of a skill's prompt
func (r *Registry) CreateDraft(ctx context.Context, input db.PromptInput) (*db.Prompt, error) {
	input.Status = db.PromptDraft
	return r.db.CreatePrompt(ctx, input)
}

// Invocation describes one model call to be recorded in the audit trail.
type Invocation struct {
	UserID      *uuid.UUID
	Prompt      *db.Prompt
	Model       string
	Temperature float32
	InputData   db.JSONMap
	Latency     time.Duration
	TraceID     string

	RawOutput        string
	StructuredOutput json.RawMessage
	ConfidenceScore  *float32
}

// RecordInvocation writes the request and response rows for one model call.
// The structured output is validated against the prompt's output schema; a
// validation failure is recorded on the response row rather than returned as
// an error, since the invocation itself already happened.
func (r *Registry) RecordInvocation(ctx context.Context, inv Invocation) (requestID, responseID uuid.UUID, err error) {
	req := db.AIRequestInput{
		UserID:      inv.UserID,
		Model:       inv.Model,
		Temperature: inv.Temperature,
		InputData:   inv.InputData,
		TraceID:     inv.TraceID,
	}
	if inv.Prompt != nil {
		req.PromptID = &inv.Prompt.ID
		req.SkillName = inv.Prompt.SkillName
		req.PromptVersion = inv.Prompt.Version
	}
	if inv.Latency > 0 {
		ms := int(inv.Latency.Milliseconds())
		req.LatencyMs = &ms
	}

	requestID, err = r.db.RecordAIRequest(ctx, req)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	resp := db.AIResponseInput{
		RequestID:        requestID,
		RawOutput:        inv.RawOutput,
		ValidationPassed: true,
		ConfidenceScore:  inv.ConfidenceScore,
	}

	if len(inv.StructuredOutput) > 0 {
		var structured db.JSONMap
		if jsonErr := json.Unmarshal(inv.StructuredOutput, &structured); jsonErr != nil {
			resp.ValidationPassed = false
			resp.ValidationErrors = db.JSONMap{"parse": jsonErr.Error()}
		} else {
			resp.StructuredOutput = structured
			if inv.Prompt != nil && inv.Prompt.OutputSchema != nil {
				valid, verrs, verr := ValidateOutput(inv.Prompt.OutputSchema, inv.StructuredOutput)
				if verr != nil {
					return uuid.Nil, uuid.Nil, fmt.Errorf("output schema is unusable: %w", verr)
				}
				resp.ValidationPassed = valid
				if !valid {
					resp.ValidationErrors = verrs
				}
			}
		}
	}

	responseID, err = r.db.RecordAIResponse(ctx, resp)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return requestID, responseID, nil
}

// Evaluate records quality scores for a response. Callers may only evaluate
// responses produced for their own requests.
func (r *Registry) Evaluate(ctx context.Context, userID uuid.UUID, input db.AIEvaluationInput) (uuid.UUID, error) {
	if input.EvaluatorType != "human" && input.EvaluatorType != "ai" {
		return uuid.Nil, fmt.Errorf("invalid evaluator type %q", input.EvaluatorType)
	}
	return r.db.CreateAIEvaluation(ctx, userID, input)
}

// ProposeCandidate records a replacement prompt for testing
func (r *Registry) ProposeCandidate(ctx context.Context, skillName, newPromptText, rationale string) (uuid.UUID, error) {
	current, err := r.db.GetProductionPrompt(ctx, skillName)
	if err != nil {
		return uuid.Nil, err
	}
	var currentID *uuid.UUID
	if current != nil {
		currentID = &current.ID
	}
	return r.db.CreatePromptCandidate(ctx, skillName, currentID, newPromptText, rationale)
}

// Promote promotes a validated candidate: the current production prompt is
// retired, the candidate text becomes the next production version and the
// candidate is marked deployed, all in one transaction.
func (r *Registry) Promote(ctx context.Context, candidateID uuid.UUID) (*db.Prompt, error) {
	return r.db.PromoteCandidate(ctx, candidateID)
}
