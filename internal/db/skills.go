package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FindOrCreateSkill returns the taxonomy entry for name, creating it if
// needed. Names are unique; concurrent callers converge on one row.
func (db *DB) FindOrCreateSkill(ctx context.Context, name, category string) (*Skill, error) {
	if category == "" {
		category = "general"
	}
	var s Skill
	err := db.pool.QueryRow(ctx,
		`INSERT INTO skills (name, category)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name, category, aliases, created_at`,
		name, category,
	).Scan(&s.ID, &s.Name, &s.Category, &s.Aliases, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to find or create skill: %w", err)
	}
	return &s, nil
}

// GetSkillByName retrieves a taxonomy skill by its unique name
func (db *DB) GetSkillByName(ctx context.Context, name string) (*Skill, error) {
	var s Skill
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, category, aliases, created_at FROM skills WHERE name = $1`,
		name,
	).Scan(&s.ID, &s.Name, &s.Category, &s.Aliases, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	return &s, nil
}

// ListSkills lists the whole taxonomy ordered by name
func (db *DB) ListSkills(ctx context.Context) ([]Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, category, aliases, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Aliases, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, nil
}

// AddResumeSkill links a taxonomy skill to a resume version
func (db *DB) AddResumeSkill(ctx context.Context, userID, versionID, skillID uuid.UUID, proficiency string) (uuid.UUID, error) {
	if proficiency == "" {
		proficiency = ProficiencyIntermediate
	}
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_skills (version_id, skill_id, proficiency)
		 SELECT v.id, $1, $2
		 FROM resume_versions v
		 JOIN resumes r ON r.id = v.resume_id
		 WHERE v.id = $3 AND r.user_id = $4
		 ON CONFLICT (version_id, skill_id) DO UPDATE SET proficiency = $2
		 RETURNING id`,
		skillID, proficiency, versionID, userID,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to add resume skill: %w", err)
	}
	return id, nil
}

// ListResumeSkills lists a version's skills with taxonomy names
func (db *DB) ListResumeSkills(ctx context.Context, userID, versionID uuid.UUID) ([]ResumeSkill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT rs.id, rs.version_id, rs.skill_id, k.name, rs.proficiency, rs.created_at
		 FROM resume_skills rs
		 JOIN skills k ON k.id = rs.skill_id
		 JOIN resume_versions v ON v.id = rs.version_id
		 JOIN resumes r ON r.id = v.resume_id
		 WHERE rs.version_id = $1 AND r.user_id = $2
		 ORDER BY k.name ASC`,
		versionID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume skills: %w", err)
	}
	defer rows.Close()

	var skills []ResumeSkill
	for rows.Next() {
		var rs ResumeSkill
		if err := rows.Scan(&rs.ID, &rs.VersionID, &rs.SkillID, &rs.SkillName,
			&rs.Proficiency, &rs.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume skill: %w", err)
		}
		skills = append(skills, rs)
	}
	return skills, nil
}

// ReplaceSkillGaps replaces the stored gap set for a (user, job) pair. Gaps
// are derived records: the scoring service recomputes them wholesale.
func (db *DB) ReplaceSkillGaps(ctx context.Context, userID, jobID uuid.UUID, gaps []SkillGap) error {
	return db.withTx(ctx, func(tx pgx.Tx) error {
		var owned bool
		err := tx.QueryRow(ctx,
			`SELECT TRUE FROM job_descriptions WHERE id = $1 AND user_id = $2`,
			jobID, userID,
		).Scan(&owned)
		if err != nil {
			if err == pgx.ErrNoRows {
				return ErrNotFound
			}
			return fmt.Errorf("failed to check job ownership: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM skill_gaps WHERE job_id = $1 AND user_id = $2`,
			jobID, userID,
		); err != nil {
			return fmt.Errorf("failed to clear skill gaps: %w", err)
		}

		for _, g := range gaps {
			if _, err := tx.Exec(ctx,
				`INSERT INTO skill_gaps (user_id, job_id, skill_id, severity)
				 VALUES ($1, $2, $3, $4)
				 ON CONFLICT (job_id, skill_id) DO UPDATE SET severity = $4`,
				userID, jobID, g.SkillID, g.Severity,
			); err != nil {
				return fmt.Errorf("failed to insert skill gap: %w", err)
			}
		}
		return nil
	})
}

// ListSkillGaps lists the stored gaps for a job, scoped to the owner
func (db *DB) ListSkillGaps(ctx context.Context, userID, jobID uuid.UUID) ([]SkillGap, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT g.id, g.user_id, g.job_id, g.skill_id, k.name, g.severity, g.created_at
		 FROM skill_gaps g
		 JOIN skills k ON k.id = g.skill_id
		 WHERE g.job_id = $1 AND g.user_id = $2
		 ORDER BY g.severity ASC, k.name ASC`,
		jobID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill gaps: %w", err)
	}
	defer rows.Close()

	var gaps []SkillGap
	for rows.Next() {
		var g SkillGap
		if err := rows.Scan(&g.ID, &g.UserID, &g.JobID, &g.SkillID, &g.SkillName,
			&g.Severity, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill gap: %w", err)
		}
		gaps = append(gaps, g)
	}
	return gaps, nil
}
