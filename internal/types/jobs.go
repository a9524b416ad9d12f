package types

import "github.com/go-playground/validator/v10"

// CreateJobRequest stores a job description supplied directly by the client.
type CreateJobRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=300"`
	Company         string   `json:"company,omitempty" validate:"max=200"`
	Location        string   `json:"location,omitempty" validate:"max=200"`
	SourceURL       string   `json:"source_url,omitempty" validate:"omitempty,url"`
	ContentRaw      string   `json:"content_raw" validate:"required"`
	RequiredSkills  []string `json:"required_skills,omitempty"`
	PreferredSkills []string `json:"preferred_skills,omitempty"`
}

// IngestJobRequest fetches a job posting from a URL and stores it.
type IngestJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// AddJobSkillRequest attaches a skill requirement to a job description.
type AddJobSkillRequest struct {
	SkillName  string `json:"skill_name" validate:"required,min=1,max=100"`
	Category   string `json:"category,omitempty" validate:"max=100"`
	Importance string `json:"importance,omitempty" validate:"omitempty,oneof=critical high medium low"`
	Required   bool   `json:"required"`
}

// AnalyzeRequest scores a resume version against a job description.
type AnalyzeRequest struct {
	VersionID string `json:"version_id" validate:"required,uuid"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the IngestJobRequest using the validator.
func (r *IngestJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddJobSkillRequest using the validator.
func (r *AddJobSkillRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
