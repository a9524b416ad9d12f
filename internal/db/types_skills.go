package db

import (
	"time"

	"github.com/google/uuid"
)

// Proficiency levels for resume skills.
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyExpert       = "expert"
)

// Skill gap severities.
const (
	SeverityCritical = "critical"
	SeverityModerate = "moderate"
	SeverityMinor    = "minor"
)

// Skill is a taxonomy entry. Names are unique within the taxonomy.
type Skill struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Category  string      `json:"category"`
	Aliases   StringArray `json:"aliases"`
	CreatedAt time.Time   `json:"created_at"`
}

// ResumeSkill links a resume version to a taxonomy skill with proficiency.
type ResumeSkill struct {
	ID          uuid.UUID `json:"id"`
	VersionID   uuid.UUID `json:"version_id"`
	SkillID     uuid.UUID `json:"skill_id"`
	SkillName   string    `json:"skill_name,omitempty"`
	Proficiency string    `json:"proficiency"`
	CreatedAt   time.Time `json:"created_at"`
}

// SkillGap is a derived record flagging a missing skill for a job, computed
// by the scoring service and stored for display.
type SkillGap struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	JobID     uuid.UUID `json:"job_id"`
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name,omitempty"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}
