package db

import (
	"time"

	"github.com/google/uuid"
)

// Parsing confidence tiers for resume versions.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Resume is a named container owned by a user. Content lives in versions;
// CurrentVersionID points at the version the application treats as live.
type Resume struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	Name             string     `json:"name"`
	CurrentVersionID *uuid.UUID `json:"current_version_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// ResumeVersion is one append-only snapshot of a resume's content.
// Version numbers are unique per resume and assigned monotonically.
type ResumeVersion struct {
	ID                uuid.UUID `json:"id"`
	ResumeID          uuid.UUID `json:"resume_id"`
	VersionNumber     int       `json:"version_number"`
	ContentRaw        string    `json:"content_raw"`
	ContentStructured JSONMap   `json:"content_structured,omitempty"`
	ParsingConfidence string    `json:"parsing_confidence"`
	StrengthScore     *int      `json:"strength_score,omitempty"`
	ATSScore          *int      `json:"ats_score,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ResumeSection is an ordered structural child of a version.
type ResumeSection struct {
	ID           uuid.UUID `json:"id"`
	VersionID    uuid.UUID `json:"version_id"`
	SectionType  string    `json:"section_type"`
	Title        string    `json:"title,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResumeBullet carries the original text plus the AI-improved variant and
// its impact score.
type ResumeBullet struct {
	ID           uuid.UUID `json:"id"`
	SectionID    uuid.UUID `json:"section_id"`
	OriginalText string    `json:"original_text"`
	ImprovedText *string   `json:"improved_text,omitempty"`
	ImpactScore  *int      `json:"impact_score,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
