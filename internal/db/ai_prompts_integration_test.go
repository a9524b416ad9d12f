//go:build integration

package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func testSkillName() string {
	return fmt.Sprintf("it_skill_%s", uuid.New().String()[:8])
}

func TestIntegration_PromptVersioning(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	skill := testSkillName()

	v1, err := db.CreatePrompt(ctx, PromptInput{SkillName: skill, SystemPrompt: "sys", PromptText: "one"})
	if err != nil {
		t.Fatalf("CreatePrompt v1 failed: %v", err)
	}
	v2, err := db.CreatePrompt(ctx, PromptInput{SkillName: skill, SystemPrompt: "sys", PromptText: "two"})
	if err != nil {
		t.Fatalf("CreatePrompt v2 failed: %v", err)
	}

	if v1.Version != 1 || v2.Version != 2 {
		t.Errorf("Expected versions 1 and 2, got %d and %d", v1.Version, v2.Version)
	}
	if v1.Status != PromptDraft {
		t.Errorf("Expected default status draft, got %q", v1.Status)
	}
}

func TestIntegration_ProductionPromptFrozen(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	skill := testSkillName()
	prompt, err := db.CreatePrompt(ctx, PromptInput{
		SkillName:    skill,
		SystemPrompt: "sys",
		PromptText:   "original text",
		Status:       PromptProduction,
	})
	if err != nil {
		t.Fatalf("CreatePrompt failed: %v", err)
	}

	err = db.UpdatePromptText(ctx, prompt.ID, "sys", "mutated text")
	if !errors.Is(err, ErrPromptFrozen) {
		t.Fatalf("Expected ErrPromptFrozen, got %v", err)
	}

	got, err := db.GetPrompt(ctx, prompt.ID)
	if err != nil {
		t.Fatalf("GetPrompt failed: %v", err)
	}
	if got.PromptText != "original text" {
		t.Errorf("Production text changed: %q", got.PromptText)
	}

	// Status transitions stay allowed; only text is frozen.
	if err := db.SetPromptStatus(ctx, prompt.ID, PromptRetired); err != nil {
		t.Fatalf("SetPromptStatus failed: %v", err)
	}

	// Once out of production the text is editable again.
	if err := db.UpdatePromptText(ctx, prompt.ID, "sys", "edited after retire"); err != nil {
		t.Fatalf("UpdatePromptText after retire failed: %v", err)
	}
}

func TestIntegration_GetProductionPrompt(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	skill := testSkillName()

	// No production prompt yet.
	p, err := db.GetProductionPrompt(ctx, skill)
	if err != nil {
		t.Fatalf("GetProductionPrompt failed: %v", err)
	}
	if p != nil {
		t.Fatal("Expected nil for skill without production prompt")
	}

	if _, err := db.CreatePrompt(ctx, PromptInput{SkillName: skill, PromptText: "draft"}); err != nil {
		t.Fatalf("CreatePrompt draft failed: %v", err)
	}
	prod, err := db.CreatePrompt(ctx, PromptInput{SkillName: skill, PromptText: "live", Status: PromptProduction})
	if err != nil {
		t.Fatalf("CreatePrompt production failed: %v", err)
	}

	p, err = db.GetProductionPrompt(ctx, skill)
	if err != nil {
		t.Fatalf("GetProductionPrompt failed: %v", err)
	}
	if p == nil || p.ID != prod.ID {
		t.Error("Expected the production version, not the draft")
	}
}

func TestIntegration_CandidatePromotion(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	skill := testSkillName()
	current, err := db.CreatePrompt(ctx, PromptInput{
		SkillName:    skill,
		SystemPrompt: "sys",
		PromptText:   "current production",
		OutputSchema: JSONMap{"type": "object", "required": []any{"improved"}},
		Status:       PromptProduction,
	})
	if err != nil {
		t.Fatalf("CreatePrompt failed: %v", err)
	}

	candidateID, err := db.CreatePromptCandidate(ctx, skill, &current.ID, "better text", "shorter and clearer")
	if err != nil {
		t.Fatalf("CreatePromptCandidate failed: %v", err)
	}

	// A testing candidate cannot be promoted.
	if _, err := db.PromoteCandidate(ctx, candidateID); err == nil {
		t.Fatal("Expected error promoting a testing candidate")
	}

	// Enough runs graduate the candidate to validated.
	if err := db.UpdateCandidateTestResults(ctx, candidateID, 10, 0.91, 0.07, 10); err != nil {
		t.Fatalf("UpdateCandidateTestResults failed: %v", err)
	}

	promotable, err := db.ListPromotableCandidates(ctx)
	if err != nil {
		t.Fatalf("ListPromotableCandidates failed: %v", err)
	}
	found := false
	for _, c := range promotable {
		if c.ID == candidateID {
			found = true
		}
	}
	if !found {
		t.Fatal("Validated candidate with positive delta should be promotable")
	}

	promoted, err := db.PromoteCandidate(ctx, candidateID)
	if err != nil {
		t.Fatalf("PromoteCandidate failed: %v", err)
	}
	if promoted.Version != current.Version+1 {
		t.Errorf("Expected version %d, got %d", current.Version+1, promoted.Version)
	}
	if promoted.Status != PromptProduction {
		t.Errorf("Expected promoted status production, got %q", promoted.Status)
	}
	if promoted.SystemPrompt != "sys" {
		t.Error("Promotion should carry over the system prompt")
	}
	if promoted.OutputSchema == nil {
		t.Error("Promotion should carry over the output schema")
	} else if promoted.OutputSchema["type"] != "object" {
		t.Errorf("Expected carried-over schema, got %v", promoted.OutputSchema)
	}

	// Exactly one production version per skill afterwards.
	old, err := db.GetPrompt(ctx, current.ID)
	if err != nil {
		t.Fatalf("GetPrompt failed: %v", err)
	}
	if old.Status != PromptRetired {
		t.Errorf("Expected old version retired, got %q", old.Status)
	}

	candidate, err := db.GetPromptCandidate(ctx, candidateID)
	if err != nil {
		t.Fatalf("GetPromptCandidate failed: %v", err)
	}
	if candidate.Status != CandidateDeployed {
		t.Errorf("Expected candidate deployed, got %q", candidate.Status)
	}

	// A deployed candidate cannot be promoted twice.
	if _, err := db.PromoteCandidate(ctx, candidateID); err == nil {
		t.Error("Expected error promoting a deployed candidate")
	}
}

func TestIntegration_AIRequestAuditChain(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	userID := createTestUser(t, db, "audit")
	skill := testSkillName()
	prompt, err := db.CreatePrompt(ctx, PromptInput{
		SkillName:  skill,
		PromptText: "text",
		Status:     PromptProduction,
	})
	if err != nil {
		t.Fatalf("CreatePrompt failed: %v", err)
	}

	latency := 420
	requestID, err := db.RecordAIRequest(ctx, AIRequestInput{
		UserID:        &userID,
		PromptID:      &prompt.ID,
		SkillName:     skill,
		PromptVersion: prompt.Version,
		Model:         "gemini-2.5-flash",
		Temperature:   0.1,
		InputData:     JSONMap{"original_bullet": "did stuff"},
		LatencyMs:     &latency,
	})
	if err != nil {
		t.Fatalf("RecordAIRequest failed: %v", err)
	}

	responseID, err := db.RecordAIResponse(ctx, AIResponseInput{
		RequestID:        requestID,
		RawOutput:        "Led stuff",
		ValidationPassed: true,
	})
	if err != nil {
		t.Fatalf("RecordAIResponse failed: %v", err)
	}

	// Another user cannot attach evaluations to this response.
	otherID := createTestUser(t, db, "audit-other")
	evalScore := float32(0.9)
	if _, err := db.CreateAIEvaluation(ctx, otherID, AIEvaluationInput{
		ResponseID:       responseID,
		EvaluatorType:    "human",
		HelpfulnessScore: &evalScore,
	}); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound evaluating another user's response, got %v", err)
	}

	evalID, err := db.CreateAIEvaluation(ctx, userID, AIEvaluationInput{
		ResponseID:       responseID,
		EvaluatorType:    "human",
		HelpfulnessScore: &evalScore,
	})
	if err != nil {
		t.Fatalf("CreateAIEvaluation failed: %v", err)
	}
	if evalID == uuid.Nil {
		t.Fatal("Expected evaluation ID")
	}

	// The chain reads back intact.
	request, err := db.GetAIRequest(ctx, requestID)
	if err != nil {
		t.Fatalf("GetAIRequest failed: %v", err)
	}
	if request.SkillName != skill || request.PromptVersion != prompt.Version {
		t.Error("Request should record the exact prompt version used")
	}

	response, err := db.GetAIResponseForRequest(ctx, requestID)
	if err != nil {
		t.Fatalf("GetAIResponseForRequest failed: %v", err)
	}
	if response == nil || response.RawOutput != "Led stuff" {
		t.Error("Expected stored response output")
	}

	evals, err := db.ListEvaluationsForResponse(ctx, responseID)
	if err != nil {
		t.Fatalf("ListEvaluationsForResponse failed: %v", err)
	}
	if len(evals) != 1 {
		t.Fatalf("Expected 1 evaluation, got %d", len(evals))
	}

	requests, err := db.ListAIRequests(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListAIRequests failed: %v", err)
	}
	if len(requests) != 1 {
		t.Errorf("Expected 1 request for user, got %d", len(requests))
	}
}
