package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniela/resume-optimizer/internal/db"
)

var bulletSchema = db.JSONMap{
	"type":     "object",
	"required": []any{"improved_text", "impact_score"},
	"properties": map[string]any{
		"improved_text": map[string]any{"type": "string", "minLength": 1},
		"impact_score":  map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
	},
}

func TestValidateOutput_Valid(t *testing.T) {
	doc := []byte(`{"improved_text": "Led migration of 12 services to Kubernetes", "impact_score": 82}`)

	valid, errs, err := ValidateOutput(bulletSchema, doc)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Nil(t, errs)
}

func TestValidateOutput_MissingField(t *testing.T) {
	doc := []byte(`{"improved_text": "Led migration"}`)

	valid, errs, err := ValidateOutput(bulletSchema, doc)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.NotEmpty(t, errs)
}

func TestValidateOutput_ScoreOutOfRange(t *testing.T) {
	doc := []byte(`{"improved_text": "Led migration", "impact_score": 140}`)

	valid, errs, err := ValidateOutput(bulletSchema, doc)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.NotEmpty(t, errs)
}

func TestValidateOutput_WrongType(t *testing.T) {
	doc := []byte(`{"improved_text": 42, "impact_score": 10}`)

	valid, errs, err := ValidateOutput(bulletSchema, doc)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.NotEmpty(t, errs)
}
