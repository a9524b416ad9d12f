package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// The request/response/evaluation tables form a one-way append log. Rows are
// never updated once written.

// AIRequestInput holds the fields recorded for one model invocation.
type AIRequestInput struct {
	UserID        *uuid.UUID
	PromptID      *uuid.UUID
	SkillName     string
	PromptVersion int
	Model         string
	Temperature   float32
	InputData     JSONMap
	LatencyMs     *int
	InputTokens   *int
	OutputTokens  *int
	TraceID       string
}

// RecordAIRequest inserts a request row and returns its ID
func (db *DB) RecordAIRequest(ctx context.Context, input AIRequestInput) (uuid.UUID, error) {
	version := input.PromptVersion
	if version <= 0 {
		version = 1
	}
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ai_requests
		     (user_id, prompt_id, skill_name, prompt_version, model, temperature,
		      input_data, latency_ms, input_tokens, output_tokens, trace_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		input.UserID, input.PromptID, input.SkillName, version, input.Model,
		input.Temperature, input.InputData, input.LatencyMs, input.InputTokens,
		input.OutputTokens, nullIfEmpty(input.TraceID),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record AI request: %w", err)
	}
	return id, nil
}

// AIResponseInput holds the fields recorded for one model output.
type AIResponseInput struct {
	RequestID        uuid.UUID
	RawOutput        string
	StructuredOutput JSONMap
	ValidationPassed bool
	ValidationErrors JSONMap
	ConfidenceScore  *float32
}

// RecordAIResponse inserts a response row and returns its ID
func (db *DB) RecordAIResponse(ctx context.Context, input AIResponseInput) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ai_responses
		     (request_id, raw_output, structured_output, validation_passed,
		      validation_errors, confidence_score)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		input.RequestID, input.RawOutput, input.StructuredOutput,
		input.ValidationPassed, input.ValidationErrors, input.ConfidenceScore,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record AI response: %w", err)
	}
	return id, nil
}

// GetAIRequest retrieves a request row by ID
func (db *DB) GetAIRequest(ctx context.Context, id uuid.UUID) (*AIRequest, error) {
	var r AIRequest
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, prompt_id, skill_name, prompt_version, model, temperature,
		        input_data, latency_ms, input_tokens, output_tokens,
		        COALESCE(trace_id, ''), created_at
		 FROM ai_requests WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.UserID, &r.PromptID, &r.SkillName, &r.PromptVersion, &r.Model,
		&r.Temperature, &r.InputData, &r.LatencyMs, &r.InputTokens, &r.OutputTokens,
		&r.TraceID, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get AI request: %w", err)
	}
	return &r, nil
}

// GetAIResponseForRequest retrieves the response recorded for a request
func (db *DB) GetAIResponseForRequest(ctx context.Context, requestID uuid.UUID) (*AIResponse, error) {
	var r AIResponse
	err := db.pool.QueryRow(ctx,
		`SELECT id, request_id, raw_output, structured_output, validation_passed,
		        validation_errors, confidence_score, created_at
		 FROM ai_responses WHERE request_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		requestID,
	).Scan(&r.ID, &r.RequestID, &r.RawOutput, &r.StructuredOutput, &r.ValidationPassed,
		&r.ValidationErrors, &r.ConfidenceScore, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get AI response: %w", err)
	}
	return &r, nil
}

// ListAIRequests lists a user's requests newest first
func (db *DB) ListAIRequests(ctx context.Context, userID uuid.UUID, limit int) ([]AIRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, prompt_id, skill_name, prompt_version, model, temperature,
		        input_data, latency_ms, input_tokens, output_tokens,
		        COALESCE(trace_id, ''), created_at
		 FROM ai_requests WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list AI requests: %w", err)
	}
	defer rows.Close()

	var requests []AIRequest
	for rows.Next() {
		var r AIRequest
		if err := rows.Scan(&r.ID, &r.UserID, &r.PromptID, &r.SkillName, &r.PromptVersion,
			&r.Model, &r.Temperature, &r.InputData, &r.LatencyMs, &r.InputTokens,
			&r.OutputTokens, &r.TraceID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan AI request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, nil
}

// AIEvaluationInput holds quality scores for a response.
type AIEvaluationInput struct {
	ResponseID       uuid.UUID
	EvaluatorType    string
	HelpfulnessScore *float32
	SafetyScore      *float32
	ConsistencyScore *float32
	Notes            string
}

// CreateAIEvaluation records quality scores for a response, scoped to the
// owner of the originating request. Evaluating someone else's response
// reports ErrNotFound, the same as a response that does not exist.
func (db *DB) CreateAIEvaluation(ctx context.Context, userID uuid.UUID, input AIEvaluationInput) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ai_evaluations
		     (response_id, evaluator_type, helpfulness_score, safety_score,
		      consistency_score, notes)
		 SELECT $1, $2, $3, $4, $5, $6
		 WHERE EXISTS (
		     SELECT 1 FROM ai_responses resp
		     JOIN ai_requests req ON req.id = resp.request_id
		     WHERE resp.id = $1 AND req.user_id = $7
		 )
		 RETURNING id`,
		input.ResponseID, input.EvaluatorType, input.HelpfulnessScore,
		input.SafetyScore, input.ConsistencyScore, nullIfEmpty(input.Notes),
		userID,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to create AI evaluation: %w", err)
	}
	return id, nil
}

// ListEvaluationsForResponse lists evaluations recorded for a response
func (db *DB) ListEvaluationsForResponse(ctx context.Context, responseID uuid.UUID) ([]AIEvaluation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, response_id, evaluator_type, helpfulness_score, safety_score,
		        consistency_score, COALESCE(notes, ''), created_at
		 FROM ai_evaluations WHERE response_id = $1
		 ORDER BY created_at ASC`,
		responseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evals []AIEvaluation
	for rows.Next() {
		var e AIEvaluation
		if err := rows.Scan(&e.ID, &e.ResponseID, &e.EvaluatorType, &e.HelpfulnessScore,
			&e.SafetyScore, &e.ConsistencyScore, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evals = append(evals, e)
	}
	return evals, nil
}
