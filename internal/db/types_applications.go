package db

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses. The lifecycle is freely transitionable: any status
// may overwrite any other, the set itself is closed.
const (
	StatusWishlist  = "wishlist"
	StatusApplied   = "applied"
	StatusScreening = "screening"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusWithdrawn = "withdrawn"
)

// ApplicationStatuses lists every valid application status.
var ApplicationStatuses = []string{
	StatusWishlist, StatusApplied, StatusScreening, StatusInterview,
	StatusOffer, StatusRejected, StatusAccepted, StatusDeclined,
	StatusWithdrawn,
}

// ValidApplicationStatus reports whether s is in the closed status set.
func ValidApplicationStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Application tracks one job application. ResumeID and JobID are soft
// references: deleting the referenced row nulls them out rather than
// deleting the application.
type Application struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	ResumeID  *uuid.UUID `json:"resume_id,omitempty"`
	JobID     *uuid.UUID `json:"job_id,omitempty"`
	Company   string     `json:"company"`
	RoleTitle string     `json:"role_title"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
