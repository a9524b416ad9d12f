package db

import (
	"time"

	"github.com/google/uuid"
)

// JobDescription is a user-owned record of a target posting with extracted
// structured requirements.
type JobDescription struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Title           string     `json:"title"`
	Company         string     `json:"company,omitempty"`
	Location        string     `json:"location,omitempty"`
	SourceURL       string     `json:"source_url,omitempty"`
	ContentRaw      string     `json:"content_raw"`
	Requirements    JSONMap    `json:"requirements,omitempty"`
	RequiredSkills  StringArray `json:"required_skills"`
	PreferredSkills StringArray `json:"preferred_skills"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// Importance levels for job skill requirements.
const (
	ImportanceCritical = "critical"
	ImportanceHigh     = "high"
	ImportanceMedium   = "medium"
	ImportanceLow      = "low"
)

// JobSkillRequirement links a job description to a taxonomy skill.
type JobSkillRequirement struct {
	ID         uuid.UUID `json:"id"`
	JobID      uuid.UUID `json:"job_id"`
	SkillID    uuid.UUID `json:"skill_id"`
	SkillName  string    `json:"skill_name,omitempty"`
	Importance string    `json:"importance"`
	Required   bool      `json:"required"`
	CreatedAt  time.Time `json:"created_at"`
}
