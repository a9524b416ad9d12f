package types

import "github.com/go-playground/validator/v10"

// CreateResumeRequest creates a named resume container.
type CreateResumeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// RenameResumeRequest renames a resume.
type RenameResumeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CreateVersionRequest appends a new immutable version to a resume.
type CreateVersionRequest struct {
	ContentRaw        string                 `json:"content_raw" validate:"required"`
	ContentStructured map[string]interface{} `json:"content_structured,omitempty"`
	ParsingConfidence string                 `json:"parsing_confidence,omitempty" validate:"omitempty,oneof=high medium low"`
}

// CreateSectionRequest adds a section to a resume version.
type CreateSectionRequest struct {
	SectionType  string `json:"section_type" validate:"required,oneof=summary experience education skills projects certifications other"`
	Title        string `json:"title,omitempty" validate:"max=200"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

// CreateBulletRequest adds a bullet to a section.
type CreateBulletRequest struct {
	OriginalText string `json:"original_text" validate:"required"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

// AddResumeSkillRequest tags a resume version with a skill.
type AddResumeSkillRequest struct {
	SkillName   string `json:"skill_name" validate:"required,min=1,max=100"`
	Category    string `json:"category,omitempty" validate:"max=100"`
	Proficiency string `json:"proficiency,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
}

// Validate validates the CreateResumeRequest using the validator.
func (r *CreateResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RenameResumeRequest using the validator.
func (r *RenameResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateVersionRequest using the validator.
func (r *CreateVersionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateSectionRequest using the validator.
func (r *CreateSectionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateBulletRequest using the validator.
func (r *CreateBulletRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddResumeSkillRequest using the validator.
func (r *AddResumeSkillRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
