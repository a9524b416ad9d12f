package types

import "github.com/go-playground/validator/v10"

// CreatePromptDraftRequest registers a new draft prompt version for a skill.
type CreatePromptDraftRequest struct {
	SkillName    string                 `json:"skill_name" validate:"required,min=1,max=100"`
	SystemPrompt string                 `json:"system_prompt" validate:"required"`
	PromptText   string                 `json:"prompt_text" validate:"required"`
	OutputSchema map[string]interface{} `json:"output_schema,omitempty"`
	ChangeNotes  string                 `json:"change_notes,omitempty"`
}

// UpdatePromptRequest edits a non-production prompt's text.
type UpdatePromptRequest struct {
	SystemPrompt string `json:"system_prompt" validate:"required"`
	PromptText   string `json:"prompt_text" validate:"required"`
}

// SetPromptStatusRequest moves a prompt through its lifecycle.
type SetPromptStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft testing production retired"`
}

// ProposeCandidateRequest proposes replacement prompt text for a skill.
type ProposeCandidateRequest struct {
	SkillName     string `json:"skill_name" validate:"required,min=1,max=100"`
	NewPromptText string `json:"new_prompt_text" validate:"required"`
	Rationale     string `json:"rationale,omitempty"`
}

// EvaluateResponseRequest records quality scores for an AI response.
type EvaluateResponseRequest struct {
	ResponseID       string   `json:"response_id" validate:"required,uuid"`
	EvaluatorType    string   `json:"evaluator_type" validate:"required,oneof=human ai"`
	HelpfulnessScore *float32 `json:"helpfulness_score,omitempty" validate:"omitempty,min=0,max=1"`
	SafetyScore      *float32 `json:"safety_score,omitempty" validate:"omitempty,min=0,max=1"`
	ConsistencyScore *float32 `json:"consistency_score,omitempty" validate:"omitempty,min=0,max=1"`
	Notes            string   `json:"notes,omitempty"`
}

// ImproveBulletRequest runs the bullet improvement skill on a stored bullet.
type ImproveBulletRequest struct {
	BulletID string `json:"bullet_id" validate:"required,uuid"`
	JobID    string `json:"job_id,omitempty" validate:"omitempty,uuid"`
}

// GenerateSummaryRequest runs the summary generation skill for a version.
type GenerateSummaryRequest struct {
	VersionID  string `json:"version_id" validate:"required,uuid"`
	TargetRole string `json:"target_role,omitempty" validate:"max=200"`
}

// Validate validates the CreatePromptDraftRequest using the validator.
func (r *CreatePromptDraftRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdatePromptRequest using the validator.
func (r *UpdatePromptRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetPromptStatusRequest using the validator.
func (r *SetPromptStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ProposeCandidateRequest using the validator.
func (r *ProposeCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the EvaluateResponseRequest using the validator.
func (r *EvaluateResponseRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ImproveBulletRequest using the validator.
func (r *ImproveBulletRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GenerateSummaryRequest using the validator.
func (r *GenerateSummaryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
