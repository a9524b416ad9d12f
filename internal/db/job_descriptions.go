package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobDescriptionInput holds the fields for creating a job description.
type JobDescriptionInput struct {
	Title           string
	Company         string
	Location        string
	SourceURL       string
	ContentRaw      string
	Requirements    JSONMap
	RequiredSkills  []string
	PreferredSkills []string
}

const jobColumns = `id, user_id, title, COALESCE(company, ''), COALESCE(location, ''),
	COALESCE(source_url, ''), content_raw, requirements, required_skills,
	preferred_skills, created_at, updated_at, deleted_at`

func scanJobDescription(row pgx.Row) (*JobDescription, error) {
	var j JobDescription
	err := row.Scan(&j.ID, &j.UserID, &j.Title, &j.Company, &j.Location,
		&j.SourceURL, &j.ContentRaw, &j.Requirements, &j.RequiredSkills,
		&j.PreferredSkills, &j.CreatedAt, &j.UpdatedAt, &j.DeletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan job description: %w", err)
	}
	return &j, nil
}

// CreateJobDescription stores a job description for a user and returns its ID
func (db *DB) CreateJobDescription(ctx context.Context, userID uuid.UUID, input JobDescriptionInput) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_descriptions
		     (user_id, title, company, location, source_url, content_raw,
		      requirements, required_skills, preferred_skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		userID, input.Title, nullIfEmpty(input.Company), nullIfEmpty(input.Location),
		nullIfEmpty(input.SourceURL), input.ContentRaw, input.Requirements,
		StringArray(input.RequiredSkills), StringArray(input.PreferredSkills),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job description: %w", err)
	}
	return id, nil
}

// GetJobDescription retrieves a job description owned by userID
func (db *DB) GetJobDescription(ctx context.Context, userID, jobID uuid.UUID) (*JobDescription, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM job_descriptions
		 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		jobID, userID,
	)
	return scanJobDescription(row)
}

// ListJobDescriptions lists a user's active job descriptions
func (db *DB) ListJobDescriptions(ctx context.Context, userID uuid.UUID) ([]JobDescription, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM job_descriptions
		 WHERE user_id = $1 AND deleted_at IS NULL
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	defer rows.Close()

	var jobs []JobDescription
	for rows.Next() {
		var j JobDescription
		if err := rows.Scan(&j.ID, &j.UserID, &j.Title, &j.Company, &j.Location,
			&j.SourceURL, &j.ContentRaw, &j.Requirements, &j.RequiredSkills,
			&j.PreferredSkills, &j.CreatedAt, &j.UpdatedAt, &j.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job description: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// SoftDeleteJobDescription hides a job description from listings
func (db *DB) SoftDeleteJobDescription(ctx context.Context, userID, jobID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_descriptions SET deleted_at = NOW()
		 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		jobID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to soft delete job description: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteJobDescription hard-deletes a job description. Skill requirements and
// gaps cascade; applications referencing it keep their row with job_id nulled.
func (db *DB) DeleteJobDescription(ctx context.Context, userID, jobID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM job_descriptions WHERE id = $1 AND user_id = $2`,
		jobID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete job description: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddJobSkillRequirement links a taxonomy skill to a job description
func (db *DB) AddJobSkillRequirement(ctx context.Context, userID, jobID, skillID uuid.UUID, importance string, required bool) (uuid.UUID, error) {
	if importance == "" {
		importance = ImportanceMedium
	}
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_skill_requirements (job_id, skill_id, importance, required)
		 SELECT j.id, $1, $2, $3
		 FROM job_descriptions j
		 WHERE j.id = $4 AND j.user_id = $5
		 ON CONFLICT (job_id, skill_id) DO UPDATE SET importance = $2, required = $3
		 RETURNING id`,
		skillID, importance, required, jobID, userID,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to add job skill requirement: %w", err)
	}
	return id, nil
}

// ListJobSkillRequirements lists a job's skill requirements with skill names
func (db *DB) ListJobSkillRequirements(ctx context.Context, userID, jobID uuid.UUID) ([]JobSkillRequirement, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT q.id, q.job_id, q.skill_id, k.name, q.importance, q.required, q.created_at
		 FROM job_skill_requirements q
		 JOIN skills k ON k.id = q.skill_id
		 JOIN job_descriptions j ON j.id = q.job_id
		 WHERE q.job_id = $1 AND j.user_id = $2
		 ORDER BY q.created_at ASC`,
		jobID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job skill requirements: %w", err)
	}
	defer rows.Close()

	var reqs []JobSkillRequirement
	for rows.Next() {
		var q JobSkillRequirement
		if err := rows.Scan(&q.ID, &q.JobID, &q.SkillID, &q.SkillName,
			&q.Importance, &q.Required, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job skill requirement: %w", err)
		}
		reqs = append(reqs, q)
	}
	return reqs, nil
}
