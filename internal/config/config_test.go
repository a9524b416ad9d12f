package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/resume_optimizer")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_ROOT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("INGEST_USE_BROWSER", "")
	t.Setenv("VERBOSE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/storage", cfg.StorageRoot)
	assert.False(t, cfg.UseBrowser)
	assert.False(t, cfg.Verbose)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/resume_optimizer")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_BoolFlags(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/resume_optimizer")
	t.Setenv("PORT", "9000")
	t.Setenv("INGEST_USE_BROWSER", "true")
	t.Setenv("VERBOSE", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.UseBrowser)
	assert.True(t, cfg.Verbose)
}
