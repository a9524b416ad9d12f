package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, name string) bool {
	t.Helper()
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return true
		}
	}
	return false
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "migrate", "seed", "prompts", "ingest-job", "grant-admin"} {
		assert.True(t, findCommand(t, name), "command %q not registered", name)
	}
}

func TestGrantAdminRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"grant-admin", "someone@example.com"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestIngestJobRequiresUser(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"ingest-job", "https://example.com/job"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user")
}

func TestIngestJobRejectsBadUserID(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"ingest-job", "--user", "not-a-uuid", "https://example.com/job"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user id")
}

func TestServeFailsWithoutDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"serve"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestSeedPromptsCoverAllSkills(t *testing.T) {
	prompts := productionPrompts()
	require.Len(t, prompts, 6)

	seen := make(map[string]bool)
	for _, p := range prompts {
		assert.False(t, seen[p.SkillName], "duplicate prompt for %s", p.SkillName)
		seen[p.SkillName] = true
		assert.NotEmpty(t, p.SystemPrompt)
		assert.NotEmpty(t, p.PromptText)
		assert.Equal(t, "production", p.Status)
	}
}
