package ai

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniela/resume-optimizer/internal/db"
	"github.com/daniela/resume-optimizer/internal/registry"
)

func TestRenderTemplate(t *testing.T) {
	template := "Improve this resume bullet point:\n\nOriginal: {original_bullet}\n\n{context}\n\nImproved bullet:"

	out := RenderTemplate(template, map[string]string{
		"original_bullet": "Did stuff with Go",
		"context":         "Target role: Backend Engineer",
	})

	assert.Contains(t, out, "Original: Did stuff with Go")
	assert.Contains(t, out, "Target role: Backend Engineer")
	assert.NotContains(t, out, "{original_bullet}")
}

func TestRenderTemplate_MissingVarLeftVerbatim(t *testing.T) {
	out := RenderTemplate("Hello {name}, from {place}", map[string]string{"name": "Daniela"})
	assert.Equal(t, "Hello Daniela, from {place}", out)
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "whitespace around block",
			input:    "  ```json\n{\"a\": 1}\n```  ",
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

type fakeClient struct {
	output  string
	lastSys string
	lastMsg string
}

func (f *fakeClient) GenerateContent(_ context.Context, systemPrompt, prompt string, _ ModelTier) (string, error) {
	f.lastSys = systemPrompt
	f.lastMsg = prompt
	return f.output, nil
}

func (f *fakeClient) GenerateJSON(ctx context.Context, systemPrompt, prompt string, tier ModelTier) (string, error) {
	return f.GenerateContent(ctx, systemPrompt, prompt, tier)
}

func (f *fakeClient) GetModel(ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error              { return nil }

type fakeSource struct {
	prompt  *db.Prompt
	lastInv registry.Invocation
}

func (f *fakeSource) ProductionPrompt(context.Context, string) (*db.Prompt, error) {
	return f.prompt, nil
}

func (f *fakeSource) RecordInvocation(_ context.Context, inv registry.Invocation) (uuid.UUID, uuid.UUID, error) {
	f.lastInv = inv
	return uuid.New(), uuid.New(), nil
}

func TestRunnerImproveBullet(t *testing.T) {
	source := &fakeSource{prompt: &db.Prompt{
		ID:           uuid.New(),
		SkillName:    SkillBulletImprover,
		Version:      3,
		SystemPrompt: "You are an expert resume writer.",
		PromptText:   "Improve: {original_bullet}\n{context}",
		Status:       db.PromptProduction,
	}}
	client := &fakeClient{output: "Led migration of payment services to Go, cutting latency 40%\n"}
	runner := NewRunner(client, source)

	userID := uuid.New()
	result, err := runner.ImproveBullet(context.Background(), userID, "Did payments work", "Backend role")
	require.NoError(t, err)

	assert.Equal(t, "Led migration of payment services to Go, cutting latency 40%", result.Output)
	assert.NotEqual(t, uuid.Nil, result.RequestID)
	assert.NotEqual(t, uuid.Nil, result.ResponseID)

	// The rendered prompt reached the client with variables substituted.
	assert.Contains(t, client.lastMsg, "Improve: Did payments work")
	assert.Equal(t, "You are an expert resume writer.", client.lastSys)

	// The invocation was recorded against the production prompt version.
	require.NotNil(t, source.lastInv.Prompt)
	assert.Equal(t, 3, source.lastInv.Prompt.Version)
	assert.Equal(t, "fake-model", source.lastInv.Model)
	require.NotNil(t, source.lastInv.UserID)
	assert.Equal(t, userID, *source.lastInv.UserID)
	assert.Equal(t, "Did payments work", source.lastInv.InputData["original_bullet"])
}
