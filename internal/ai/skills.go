package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daniela/resume-optimizer/internal/db"
	"github.com/daniela/resume-optimizer/internal/registry"
)

// Skill names registered in the prompt registry.
const (
	SkillBulletImprover    = "bullet_improver"
	SkillSummaryGenerator  = "summary_generator"
	SkillGapAnalyzer       = "skill_gap_analyzer"
	SkillATSOptimizer      = "ats_optimizer"
	SkillTransitionAdvisor = "career_transition_advisor"
	SkillFeedbackExplainer = "feedback_explainer"
)

// skillTiers maps each skill to the model tier it runs on. The transition
// advisor needs the most nuance and gets the advanced tier.
var skillTiers = map[string]ModelTier{
	SkillBulletImprover:    TierStandard,
	SkillSummaryGenerator:  TierStandard,
	SkillGapAnalyzer:       TierStandard,
	SkillATSOptimizer:      TierStandard,
	SkillTransitionAdvisor: TierAdvanced,
	SkillFeedbackExplainer: TierLite,
}

// PromptSource resolves production prompts and records invocations. The
// prompt registry implements it.
type PromptSource interface {
	ProductionPrompt(ctx context.Context, skillName string) (*db.Prompt, error)
	RecordInvocation(ctx context.Context, inv registry.Invocation) (requestID, responseID uuid.UUID, err error)
}

// Runner executes AI skills: it resolves the production prompt for a skill,
// renders it with caller variables, invokes the model, and records the
// request/response pair in the audit trail.
type Runner struct {
	client   Client
	registry PromptSource
}

// NewRunner creates a skill runner.
func NewRunner(client Client, reg PromptSource) *Runner {
	return &Runner{client: client, registry: reg}
}

// Result is the outcome of one skill invocation.
type Result struct {
	Output     string
	Prompt     *db.Prompt
	RequestID  uuid.UUID
	ResponseID uuid.UUID
}

// Run executes a skill for a user. vars fills the {placeholder} slots in the
// prompt template; missing placeholders are left verbatim so the failure is
// visible in the audit trail rather than silently dropped.
func (r *Runner) Run(ctx context.Context, userID uuid.UUID, skillName string, vars map[string]string) (*Result, error) {
	prompt, err := r.registry.ProductionPrompt(ctx, skillName)
	if err != nil {
		return nil, err
	}

	rendered := RenderTemplate(prompt.PromptText, vars)
	tier, ok := skillTiers[skillName]
	if !ok {
		tier = TierStandard
	}

	start := time.Now()
	output, err := r.client.GenerateContent(ctx, prompt.SystemPrompt, rendered, tier)
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("skill %s failed: %w", skillName, err)
	}

	inv := registry.Invocation{
		Prompt:      prompt,
		Model:       r.client.GetModel(tier),
		Temperature: 0.1,
		InputData:   varsToJSON(vars),
		Latency:     latency,
		RawOutput:   output,
	}
	if userID != uuid.Nil {
		inv.UserID = &userID
	}

	reqID, respID, err := r.registry.RecordInvocation(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to record %s invocation: %w", skillName, err)
	}

	return &Result{
		Output:     strings.TrimSpace(output),
		Prompt:     prompt,
		RequestID:  reqID,
		ResponseID: respID,
	}, nil
}

// ImproveBullet rewrites one resume bullet. context may be empty.
func (r *Runner) ImproveBullet(ctx context.Context, userID uuid.UUID, originalBullet, jobContext string) (*Result, error) {
	return r.Run(ctx, userID, SkillBulletImprover, map[string]string{
		"original_bullet": originalBullet,
		"context":         jobContext,
	})
}

// GenerateSummary writes a professional summary from resume highlights.
func (r *Runner) GenerateSummary(ctx context.Context, userID uuid.UUID, experience, skills, targetRole string) (*Result, error) {
	return r.Run(ctx, userID, SkillSummaryGenerator, map[string]string{
		"experience":  experience,
		"skills":      skills,
		"target_role": targetRole,
	})
}

// ExplainGaps narrates a skill-gap report for the user.
func (r *Runner) ExplainGaps(ctx context.Context, userID uuid.UUID, resumeSkills, jobRequirements, gaps string) (*Result, error) {
	return r.Run(ctx, userID, SkillGapAnalyzer, map[string]string{
		"resume_skills":    resumeSkills,
		"job_requirements": jobRequirements,
		"gaps":             gaps,
	})
}

// SuggestATSImprovements produces prioritized ATS optimization suggestions.
func (r *Runner) SuggestATSImprovements(ctx context.Context, userID uuid.UUID, resumeContent, jobDescription string) (*Result, error) {
	return r.Run(ctx, userID, SkillATSOptimizer, map[string]string{
		"resume_content":  resumeContent,
		"job_description": jobDescription,
	})
}

// RenderTemplate substitutes {name} placeholders with values from vars.
func RenderTemplate(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func varsToJSON(vars map[string]string) db.JSONMap {
	if len(vars) == 0 {
		return nil
	}
	m := make(db.JSONMap, len(vars))
	for k, v := range vars {
		m[k] = v
	}
	return m
}
