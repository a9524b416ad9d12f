package db

import (
	"time"

	"github.com/google/uuid"
)

// Prompt statuses. A production prompt's text is frozen; changes require a
// new version row and an explicit promotion.
const (
	PromptDraft      = "draft"
	PromptTesting    = "testing"
	PromptProduction = "production"
	PromptRetired    = "retired"
)

// Candidate statuses.
const (
	CandidateTesting   = "testing"
	CandidateValidated = "validated"
	CandidateDeployed  = "deployed"
	CandidateRejected  = "rejected"
)

// Prompt is a versioned prompt template for one AI skill.
type Prompt struct {
	ID           uuid.UUID `json:"id"`
	SkillName    string    `json:"skill_name"`
	Version      int       `json:"version"`
	SystemPrompt string    `json:"system_prompt"`
	PromptText   string    `json:"prompt_text"`
	OutputSchema JSONMap   `json:"output_schema,omitempty"`
	Status       string    `json:"status"`
	ChangeNotes  string    `json:"change_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AIRequest records one model invocation's inputs and parameters.
type AIRequest struct {
	ID            uuid.UUID  `json:"id"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	PromptID      *uuid.UUID `json:"prompt_id,omitempty"`
	SkillName     string     `json:"skill_name"`
	PromptVersion int        `json:"prompt_version"`
	Model         string     `json:"model"`
	Temperature   float32    `json:"temperature"`
	InputData     JSONMap    `json:"input_data,omitempty"`
	LatencyMs     *int       `json:"latency_ms,omitempty"`
	InputTokens   *int       `json:"input_tokens,omitempty"`
	OutputTokens  *int       `json:"output_tokens,omitempty"`
	TraceID       string     `json:"trace_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AIResponse records the raw and structured output of a request plus the
// validation outcome.
type AIResponse struct {
	ID               uuid.UUID `json:"id"`
	RequestID        uuid.UUID `json:"request_id"`
	RawOutput        string    `json:"raw_output"`
	StructuredOutput JSONMap   `json:"structured_output,omitempty"`
	ValidationPassed bool      `json:"validation_passed"`
	ValidationErrors JSONMap   `json:"validation_errors,omitempty"`
	ConfidenceScore  *float32  `json:"confidence_score,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// AIEvaluation records human or automated quality scores for a response.
type AIEvaluation struct {
	ID               uuid.UUID `json:"id"`
	ResponseID       uuid.UUID `json:"response_id"`
	EvaluatorType    string    `json:"evaluator_type"`
	HelpfulnessScore *float32  `json:"helpfulness_score,omitempty"`
	SafetyScore      *float32  `json:"safety_score,omitempty"`
	ConsistencyScore *float32  `json:"consistency_score,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// PromptCandidate is a proposed replacement prompt awaiting promotion.
type PromptCandidate struct {
	ID              uuid.UUID  `json:"id"`
	SkillName       string     `json:"skill_name"`
	CurrentPromptID *uuid.UUID `json:"current_prompt_id,omitempty"`
	NewPromptText   string     `json:"new_prompt_text"`
	ChangeRationale string     `json:"change_rationale,omitempty"`
	Status          string     `json:"status"`
	TestRunCount    int        `json:"test_run_count"`
	AvgScore        *float32   `json:"avg_score,omitempty"`
	VsCurrentDelta  *float32   `json:"vs_current_delta,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
