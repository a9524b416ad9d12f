package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateResume creates a named resume container for a user
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, name) VALUES ($1, $2) RETURNING id`,
		userID, name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume owned by userID
func (db *DB) GetResume(ctx context.Context, userID, resumeID uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, name, current_version_id, created_at, updated_at, deleted_at
		 FROM resumes
		 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		resumeID, userID,
	).Scan(&r.ID, &r.UserID, &r.Name, &r.CurrentVersionID, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// ListResumes lists a user's active resumes, most recently updated first
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, name, current_version_id, created_at, updated_at, deleted_at
		 FROM resumes
		 WHERE user_id = $1 AND deleted_at IS NULL
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.CurrentVersionID,
			&r.CreatedAt, &r.UpdatedAt, &r.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, nil
}

// RenameResume updates a resume's name, scoped to the owner
func (db *DB) RenameResume(ctx context.Context, userID, resumeID uuid.UUID, name string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET name = $1
		 WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL`,
		name, resumeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteResume hides a resume from listings without cascading
func (db *DB) SoftDeleteResume(ctx context.Context, userID, resumeID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET deleted_at = NOW()
		 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		resumeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to soft delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteResume hard-deletes a resume; versions, sections and bullets go with
// it via cascade, while applications referencing it keep their row with a
// nulled resume_id.
func (db *DB) DeleteResume(ctx context.Context, userID, resumeID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`,
		resumeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// VersionInput holds the content of a new resume version.
type VersionInput struct {
	ContentRaw        string
	ContentStructured JSONMap
	ParsingConfidence string
	StrengthScore     *int
	ATSScore          *int
}

// AddVersion appends a new version to a resume and moves the current-version
// pointer to it. The version number is assigned inside the transaction so
// numbers stay unique and monotonic per resume.
func (db *DB) AddVersion(ctx context.Context, userID, resumeID uuid.UUID, input VersionInput) (*ResumeVersion, error) {
	confidence := input.ParsingConfidence
	if confidence == "" {
		confidence = ConfidenceMedium
	}

	var v ResumeVersion
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		// Lock the resume row; concurrent AddVersion calls serialize here.
		var owned bool
		err := tx.QueryRow(ctx,
			`SELECT TRUE FROM resumes
			 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
			 FOR UPDATE`,
			resumeID, userID,
		).Scan(&owned)
		if err != nil {
			if err == pgx.ErrNoRows {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock resume: %w", err)
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO resume_versions
			     (resume_id, version_number, content_raw, content_structured,
			      parsing_confidence, strength_score, ats_score)
			 SELECT $1, COALESCE(MAX(version_number), 0) + 1, $2, $3, $4, $5, $6
			 FROM resume_versions WHERE resume_id = $1
			 RETURNING id, resume_id, version_number, content_raw, content_structured,
			           parsing_confidence, strength_score, ats_score, created_at`,
			resumeID, input.ContentRaw, input.ContentStructured, confidence,
			input.StrengthScore, input.ATSScore,
		).Scan(&v.ID, &v.ResumeID, &v.VersionNumber, &v.ContentRaw, &v.ContentStructured,
			&v.ParsingConfidence, &v.StrengthScore, &v.ATSScore, &v.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert version: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE resumes SET current_version_id = $1 WHERE id = $2`,
			v.ID, resumeID,
		); err != nil {
			return fmt.Errorf("failed to advance current version: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetVersion retrieves a version through the ownership chain version→resume→user
func (db *DB) GetVersion(ctx context.Context, userID, versionID uuid.UUID) (*ResumeVersion, error) {
	var v ResumeVersion
	err := db.pool.QueryRow(ctx,
		`SELECT v.id, v.resume_id, v.version_number, v.content_raw, v.content_structured,
		        v.parsing_confidence, v.strength_score, v.ats_score, v.created_at
		 FROM resume_versions v
		 JOIN resumes r ON r.id = v.resume_id
		 WHERE v.id = $1 AND r.user_id = $2`,
		versionID, userID,
	).Scan(&v.ID, &v.ResumeID, &v.VersionNumber, &v.ContentRaw, &v.ContentStructured,
		&v.ParsingConfidence, &v.StrengthScore, &v.ATSScore, &v.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	return &v, nil
}

// ListVersions lists a resume's versions newest first
func (db *DB) ListVersions(ctx context.Context, userID, resumeID uuid.UUID) ([]ResumeVersion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT v.id, v.resume_id, v.version_number, v.content_raw, v.content_structured,
		        v.parsing_confidence, v.strength_score, v.ats_score, v.created_at
		 FROM resume_versions v
		 JOIN resumes r ON r.id = v.resume_id
		 WHERE v.resume_id = $1 AND r.user_id = $2
		 ORDER BY v.version_number DESC`,
		resumeID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var versions []ResumeVersion
	for rows.Next() {
		var v ResumeVersion
		if err := rows.Scan(&v.ID, &v.ResumeID, &v.VersionNumber, &v.ContentRaw,
			&v.ContentStructured, &v.ParsingConfidence, &v.StrengthScore,
			&v.ATSScore, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// SetVersionScores updates cached scores on a version, scoped to the owner.
// A nil score leaves the stored value unchanged, so callers can update one
// score without clobbering the other.
func (db *DB) SetVersionScores(ctx context.Context, userID, versionID uuid.UUID, strength, ats *int) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE resume_versions v
		 SET strength_score = COALESCE($1, v.strength_score),
		     ats_score      = COALESCE($2, v.ats_score)
		 FROM resumes r
		 WHERE v.id = $3 AND r.id = v.resume_id AND r.user_id = $4`,
		strength, ats, versionID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set version scores: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
