package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrPromptFrozen is returned when an update would mutate the text of a
// production prompt. Frozen prompts require a new version row instead.
var ErrPromptFrozen = errors.New("production prompt text is immutable")

const promptColumns = `id, skill_name, version, system_prompt, prompt_text,
	output_schema, status, COALESCE(change_notes, ''), created_at, updated_at`

func scanPrompt(row pgx.Row) (*Prompt, error) {
	var p Prompt
	err := row.Scan(&p.ID, &p.SkillName, &p.Version, &p.SystemPrompt, &p.PromptText,
		&p.OutputSchema, &p.Status, &p.ChangeNotes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan prompt: %w", err)
	}
	return &p, nil
}

// PromptInput holds the fields for creating a prompt version.
type PromptInput struct {
	SkillName    string
	SystemPrompt string
	PromptText   string
	OutputSchema JSONMap
	Status       string
	ChangeNotes  string
}

// CreatePrompt inserts a new prompt version for a skill. The version number
// is computed from the existing maximum inside the insert.
func (db *DB) CreatePrompt(ctx context.Context, input PromptInput) (*Prompt, error) {
	status := input.Status
	if status == "" {
		status = PromptDraft
	}
	var p Prompt
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ai_prompts (skill_name, version, system_prompt, prompt_text, output_schema, status, change_notes)
		 SELECT $1, COALESCE(MAX(version), 0) + 1, $2, $3, $4, $5, $6
		 FROM ai_prompts WHERE skill_name = $1
		 RETURNING `+promptColumns,
		input.SkillName, input.SystemPrompt, input.PromptText, input.OutputSchema,
		status, nullIfEmpty(input.ChangeNotes),
	).Scan(&p.ID, &p.SkillName, &p.Version, &p.SystemPrompt, &p.PromptText,
		&p.OutputSchema, &p.Status, &p.ChangeNotes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}
	return &p, nil
}

// GetProductionPrompt returns the current production prompt for a skill
func (db *DB) GetProductionPrompt(ctx context.Context, skillName string) (*Prompt, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+promptColumns+` FROM ai_prompts
		 WHERE skill_name = $1 AND status = $2
		 ORDER BY version DESC LIMIT 1`,
		skillName, PromptProduction,
	)
	return scanPrompt(row)
}

// GetPrompt retrieves a prompt by ID
func (db *DB) GetPrompt(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+promptColumns+` FROM ai_prompts WHERE id = $1`, id)
	return scanPrompt(row)
}

// ListPrompts lists prompts, optionally filtered by skill and status
func (db *DB) ListPrompts(ctx context.Context, skillName, status string) ([]Prompt, error) {
	query := `SELECT ` + promptColumns + ` FROM ai_prompts WHERE 1=1`
	args := []any{}
	argNum := 1

	if skillName != "" {
		query += fmt.Sprintf(" AND skill_name = $%d", argNum)
		args = append(args, skillName)
		argNum++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, status)
	}
	query += " ORDER BY skill_name ASC, version DESC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []Prompt
	for rows.Next() {
		var p Prompt
		if err := rows.Scan(&p.ID, &p.SkillName, &p.Version, &p.SystemPrompt,
			&p.PromptText, &p.OutputSchema, &p.Status, &p.ChangeNotes,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		prompts = append(prompts, p)
	}
	return prompts, nil
}

// UpdatePromptText rewrites a prompt's text. Production prompts are frozen:
// the service rejects the edit before the DB trigger would.
func (db *DB) UpdatePromptText(ctx context.Context, id uuid.UUID, systemPrompt, promptText string) error {
	return db.withTx(ctx, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx,
			`SELECT status FROM ai_prompts WHERE id = $1 FOR UPDATE`, id,
		).Scan(&status)
		if err != nil {
			if err == pgx.ErrNoRows {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load prompt status: %w", err)
		}
		if status == PromptProduction {
			return ErrPromptFrozen
		}

		if _, err := tx.Exec(ctx,
			`UPDATE ai_prompts SET system_prompt = $1, prompt_text = $2 WHERE id = $3`,
			systemPrompt, promptText, id,
		); err != nil {
			return fmt.Errorf("failed to update prompt text: %w", err)
		}
		return nil
	})
}

// SetPromptStatus transitions a prompt's lifecycle status without touching
// its text.
func (db *DB) SetPromptStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE ai_prompts SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set prompt status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreatePromptCandidate records a proposed replacement prompt for testing
func (db *DB) CreatePromptCandidate(ctx context.Context, skillName string, currentPromptID *uuid.UUID, newPromptText, rationale string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO prompt_candidates (skill_name, current_prompt_id, new_prompt_text, change_rationale)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		skillName, currentPromptID, newPromptText, nullIfEmpty(rationale),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create prompt candidate: %w", err)
	}
	return id, nil
}

// GetPromptCandidate retrieves a candidate by ID
func (db *DB) GetPromptCandidate(ctx context.Context, id uuid.UUID) (*PromptCandidate, error) {
	var c PromptCandidate
	err := db.pool.QueryRow(ctx,
		`SELECT id, skill_name, current_prompt_id, new_prompt_text,
		        COALESCE(change_rationale, ''), status, test_run_count,
		        avg_score, vs_current_delta, created_at, updated_at
		 FROM prompt_candidates WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.SkillName, &c.CurrentPromptID, &c.NewPromptText,
		&c.ChangeRationale, &c.Status, &c.TestRunCount, &c.AvgScore,
		&c.VsCurrentDelta, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prompt candidate: %w", err)
	}
	return &c, nil
}

// UpdateCandidateTestResults records accumulated test stats; candidates with
// enough runs graduate to validated.
func (db *DB) UpdateCandidateTestResults(ctx context.Context, id uuid.UUID, runCount int, avgScore, vsCurrentDelta float32, validatedAt int) error {
	status := CandidateTesting
	if runCount >= validatedAt {
		status = CandidateValidated
	}
	result, err := db.pool.Exec(ctx,
		`UPDATE prompt_candidates
		 SET test_run_count = $1, avg_score = $2, vs_current_delta = $3, status = $4
		 WHERE id = $5 AND status IN ($6, $7)`,
		runCount, avgScore, vsCurrentDelta, status, id, CandidateTesting, CandidateValidated,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate test results: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPromotableCandidates returns validated candidates that beat the
// current production prompt.
func (db *DB) ListPromotableCandidates(ctx context.Context) ([]PromptCandidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, skill_name, current_prompt_id, new_prompt_text,
		        COALESCE(change_rationale, ''), status, test_run_count,
		        avg_score, vs_current_delta, created_at, updated_at
		 FROM prompt_candidates
		 WHERE status = $1 AND vs_current_delta > 0
		 ORDER BY vs_current_delta DESC`,
		CandidateValidated,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotable candidates: %w", err)
	}
	defer rows.Close()

	var candidates []PromptCandidate
	for rows.Next() {
		var c PromptCandidate
		if err := rows.Scan(&c.ID, &c.SkillName, &c.CurrentPromptID, &c.NewPromptText,
			&c.ChangeRationale, &c.Status, &c.TestRunCount, &c.AvgScore,
			&c.VsCurrentDelta, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// PromoteCandidate promotes a validated candidate to production in one
// transaction: retire the current production prompt, insert the candidate's
// text as the next version in production, mark the candidate deployed.
func (db *DB) PromoteCandidate(ctx context.Context, candidateID uuid.UUID) (*Prompt, error) {
	var promoted *Prompt
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		var c PromptCandidate
		err := tx.QueryRow(ctx,
			`SELECT id, skill_name, current_prompt_id, new_prompt_text, status
			 FROM prompt_candidates WHERE id = $1 FOR UPDATE`,
			candidateID,
		).Scan(&c.ID, &c.SkillName, &c.CurrentPromptID, &c.NewPromptText, &c.Status)
		if err != nil {
			if err == pgx.ErrNoRows {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load candidate: %w", err)
		}
		if c.Status != CandidateValidated {
			return fmt.Errorf("candidate %s is %s, only validated candidates can be promoted", c.ID, c.Status)
		}

		// Retire whatever is currently in production for this skill. The
		// immutability trigger allows status transitions, only text is frozen.
		// The system prompt and output schema carry forward to the new
		// version: a candidate proposes replacement text, not a new contract.
		var systemPrompt string
		var outputSchema JSONMap
		err = tx.QueryRow(ctx,
			`UPDATE ai_prompts SET status = $1
			 WHERE skill_name = $2 AND status = $3
			 RETURNING system_prompt, output_schema`,
			PromptRetired, c.SkillName, PromptProduction,
		).Scan(&systemPrompt, &outputSchema)
		if err != nil && err != pgx.ErrNoRows {
			return fmt.Errorf("failed to retire production prompt: %w", err)
		}

		var p Prompt
		err = tx.QueryRow(ctx,
			`INSERT INTO ai_prompts (skill_name, version, system_prompt, prompt_text, output_schema, status, change_notes)
			 SELECT $1, COALESCE(MAX(version), 0) + 1, $2, $3, $4, $5, $6
			 FROM ai_prompts WHERE skill_name = $1
			 RETURNING `+promptColumns,
			c.SkillName, systemPrompt, c.NewPromptText, outputSchema, PromptProduction,
			fmt.Sprintf("promoted from candidate %s", c.ID),
		).Scan(&p.ID, &p.SkillName, &p.Version, &p.SystemPrompt, &p.PromptText,
			&p.OutputSchema, &p.Status, &p.ChangeNotes, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert promoted prompt: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE prompt_candidates SET status = $1 WHERE id = $2`,
			CandidateDeployed, c.ID,
		); err != nil {
			return fmt.Errorf("failed to mark candidate deployed: %w", err)
		}

		promoted = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promoted, nil
}
