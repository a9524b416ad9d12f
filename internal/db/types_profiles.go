package db

import (
	"time"

	"github.com/google/uuid"
)

// Experience levels accepted by user_profiles.experience_level.
const (
	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceLead      = "lead"
	ExperienceExecutive = "executive"
)

// Profile represents a user profile row. One row exists per authenticated
// identity; it is provisioned automatically at signup.
type Profile struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-" db:"password_hash"` // Never serialize to JSON
	FullName            string     `json:"full_name"`
	TargetRole          string     `json:"target_role,omitempty"`
	ExperienceLevel     string     `json:"experience_level,omitempty"`
	Country             string     `json:"country,omitempty"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	IsAdmin             bool       `json:"is_admin"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	DeletedAt           *time.Time `json:"deleted_at,omitempty"`
}
