package types

import "github.com/go-playground/validator/v10"

// CreateApplicationRequest tracks an application to a job. The resume and
// job references are optional; either may be cleared later without losing
// the application record.
type CreateApplicationRequest struct {
	ResumeID string `json:"resume_id,omitempty" validate:"omitempty,uuid"`
	JobID    string `json:"job_id,omitempty" validate:"omitempty,uuid"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=wishlist applied screening interview offer rejected accepted declined withdrawn"`
	Notes    string `json:"notes,omitempty"`
}

// UpdateApplicationStatusRequest moves an application through the pipeline.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=wishlist applied screening interview offer rejected accepted declined withdrawn"`
}

// UpdateApplicationNotesRequest replaces the application notes.
type UpdateApplicationNotesRequest struct {
	Notes string `json:"notes"`
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateApplicationStatusRequest using the validator.
func (r *UpdateApplicationStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
