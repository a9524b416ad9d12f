package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Ownership of sections and bullets is inherited through the foreign-key
// chain: bullet → section → version → resume → user_profiles. Every query
// here walks that chain, so rows owned by another identity are simply
// invisible.

// AddSection appends a section to a version
func (db *DB) AddSection(ctx context.Context, userID, versionID uuid.UUID, sectionType, title string, displayOrder int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_sections (version_id, section_type, title, display_order)
		 SELECT v.id, $1, $2, $3
		 FROM resume_versions v
		 JOIN resumes r ON r.id = v.resume_id
		 WHERE v.id = $4 AND r.user_id = $5
		 RETURNING id`,
		sectionType, title, displayOrder, versionID, userID,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to add section: %w", err)
	}
	return id, nil
}

// ListSections lists a version's sections in display order
func (db *DB) ListSections(ctx context.Context, userID, versionID uuid.UUID) ([]ResumeSection, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT s.id, s.version_id, s.section_type, COALESCE(s.title, ''), s.display_order, s.created_at
		 FROM resume_sections s
		 JOIN resume_versions v ON v.id = s.version_id
		 JOIN resumes r ON r.id = v.resume_id
		 WHERE s.version_id = $1 AND r.user_id = $2
		 ORDER BY s.display_order ASC`,
		versionID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var sections []ResumeSection
	for rows.Next() {
		var s ResumeSection
		if err := rows.Scan(&s.ID, &s.VersionID, &s.SectionType, &s.Title,
			&s.DisplayOrder, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// DeleteSection removes a section and its bullets via cascade
func (db *DB) DeleteSection(ctx context.Context, userID, sectionID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resume_sections s
		 USING resume_versions v, resumes r
		 WHERE s.id = $1 AND v.id = s.version_id AND r.id = v.resume_id AND r.user_id = $2`,
		sectionID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddBullet appends a bullet to a section
func (db *DB) AddBullet(ctx context.Context, userID, sectionID uuid.UUID, originalText string, displayOrder int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_bullets (section_id, original_text, display_order)
		 SELECT s.id, $1, $2
		 FROM resume_sections s
		 JOIN resume_versions v ON v.id = s.version_id
		 JOIN resumes r ON r.id = v.resume_id
		 WHERE s.id = $3 AND r.user_id = $4
		 RETURNING id`,
		originalText, displayOrder, sectionID, userID,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to add bullet: %w", err)
	}
	return id, nil
}

// GetBullet retrieves a bullet through the full ownership chain
func (db *DB) GetBullet(ctx context.Context, userID, bulletID uuid.UUID) (*ResumeBullet, error) {
	var b ResumeBullet
	err := db.pool.QueryRow(ctx,
		`SELECT b.id, b.section_id, b.original_text, b.improved_text, b.impact_score,
		        b.display_order, b.created_at
		 FROM resume_bullets b
		 JOIN resume_sections s ON s.id = b.section_id
		 JOIN resume_versions v ON v.id = s.version_id
		 JOIN resumes r ON r.id = v.resume_id
		 WHERE b.id = $1 AND r.user_id = $2`,
		bulletID, userID,
	).Scan(&b.ID, &b.SectionID, &b.OriginalText, &b.ImprovedText, &b.ImpactScore,
		&b.DisplayOrder, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bullet: %w", err)
	}
	return &b, nil
}

// ListBullets lists a section's bullets in display order
func (db *DB) ListBullets(ctx context.Context, userID, sectionID uuid.UUID) ([]ResumeBullet, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT b.id, b.section_id, b.original_text, b.improved_text, b.impact_score,
		        b.display_order, b.created_at
		 FROM resume_bullets b
		 JOIN resume_sections s ON s.id = b.section_id
		 JOIN resume_versions v ON v.id = s.version_id
		 JOIN resumes r ON r.id = v.resume_id
		 WHERE b.section_id = $1 AND r.user_id = $2
		 ORDER BY b.display_order ASC`,
		sectionID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bullets: %w", err)
	}
	defer rows.Close()

	var bullets []ResumeBullet
	for rows.Next() {
		var b ResumeBullet
		if err := rows.Scan(&b.ID, &b.SectionID, &b.OriginalText, &b.ImprovedText,
			&b.ImpactScore, &b.DisplayOrder, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bullet: %w", err)
		}
		bullets = append(bullets, b)
	}
	return bullets, nil
}

// SetBulletImprovement stores the AI-improved text and impact score
func (db *DB) SetBulletImprovement(ctx context.Context, userID, bulletID uuid.UUID, improvedText string, impactScore *int) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE resume_bullets b
		 SET improved_text = $1, impact_score = $2
		 FROM resume_sections s, resume_versions v, resumes r
		 WHERE b.id = $3 AND s.id = b.section_id AND v.id = s.version_id
		   AND r.id = v.resume_id AND r.user_id = $4`,
		improvedText, impactScore, bulletID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set bullet improvement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBullet removes a bullet, scoped to the owner
func (db *DB) DeleteBullet(ctx context.Context, userID, bulletID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resume_bullets b
		 USING resume_sections s, resume_versions v, resumes r
		 WHERE b.id = $1 AND s.id = b.section_id AND v.id = s.version_id
		   AND r.id = v.resume_id AND r.user_id = $2`,
		bulletID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bullet: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
