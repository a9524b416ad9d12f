package types

import "github.com/go-playground/validator/v10"

// UpdateProfileRequest represents a profile update. All fields replace the
// stored values; clients send the full profile.
type UpdateProfileRequest struct {
	FullName            string `json:"full_name" validate:"required,min=1"`
	TargetRole          string `json:"target_role,omitempty"`
	ExperienceLevel     string `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior lead executive"`
	Country             string `json:"country,omitempty"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
