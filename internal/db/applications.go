package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ApplicationInput holds the fields for creating an application.
type ApplicationInput struct {
	ResumeID  *uuid.UUID
	JobID     *uuid.UUID
	Company   string
	RoleTitle string
	Status    string
	Notes     string
	AppliedAt *time.Time
}

const applicationColumns = `id, user_id, resume_id, job_id, company, role_title,
	status, COALESCE(notes, ''), applied_at, created_at, updated_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.UserID, &a.ResumeID, &a.JobID, &a.Company,
		&a.RoleTitle, &a.Status, &a.Notes, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan application: %w", err)
	}
	return &a, nil
}

// CreateApplication creates a tracked application. Referenced resume and job
// must belong to the same user; the subqueries scope them so another user's
// rows cannot be attached.
func (db *DB) CreateApplication(ctx context.Context, userID uuid.UUID, input ApplicationInput) (uuid.UUID, error) {
	status := input.Status
	if status == "" {
		status = StatusWishlist
	}
	if !ValidApplicationStatus(status) {
		return uuid.Nil, fmt.Errorf("invalid application status %q", status)
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (user_id, resume_id, job_id, company, role_title, status, notes, applied_at)
		 VALUES ($1,
		         (SELECT id FROM resumes WHERE id = $2 AND user_id = $1),
		         (SELECT id FROM job_descriptions WHERE id = $3 AND user_id = $1),
		         $4, $5, $6, $7, $8)
		 RETURNING id`,
		userID, input.ResumeID, input.JobID, input.Company, input.RoleTitle,
		status, nullIfEmpty(input.Notes), input.AppliedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application owned by userID
func (db *DB) GetApplication(ctx context.Context, userID, appID uuid.UUID) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE id = $1 AND user_id = $2`,
		appID, userID,
	)
	return scanApplication(row)
}

// ListApplications lists a user's applications, optionally filtered by status
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID, status string) ([]Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.ResumeID, &a.JobID, &a.Company,
			&a.RoleTitle, &a.Status, &a.Notes, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// SetApplicationStatus overwrites the status. Any status may replace any
// other; only membership in the closed set is enforced.
func (db *DB) SetApplicationStatus(ctx context.Context, userID, appID uuid.UUID, status string) error {
	if !ValidApplicationStatus(status) {
		return fmt.Errorf("invalid application status %q", status)
	}
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1,
		        applied_at = CASE WHEN $1 = 'applied' AND applied_at IS NULL THEN NOW() ELSE applied_at END
		 WHERE id = $2 AND user_id = $3`,
		status, appID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateApplicationNotes replaces the free-form notes
func (db *DB) UpdateApplicationNotes(ctx context.Context, userID, appID uuid.UUID, notes string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET notes = $1 WHERE id = $2 AND user_id = $3`,
		nullIfEmpty(notes), appID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application notes: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteApplication removes an application, scoped to the owner
func (db *DB) DeleteApplication(ctx context.Context, userID, appID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND user_id = $2`,
		appID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
