package registry

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/daniela/resume-optimizer/internal/db"
)

// ValidateOutput checks a structured model output against a prompt's JSON
// Schema. It returns whether the document is valid and, when invalid, a map
// of field paths to messages suitable for storing on the response row.
// An error is returned only when the schema itself cannot be loaded.
func ValidateOutput(schema db.JSONMap, document []byte) (bool, db.JSONMap, error) {
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return false, nil, fmt.Errorf("failed to marshal output schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return false, nil, fmt.Errorf("failed to validate output: %w", err)
	}

	if result.Valid() {
		return true, nil, nil
	}

	errs := db.JSONMap{}
	for _, e := range result.Errors() {
		errs[e.Field()] = e.Description()
	}
	return false, errs, nil
}
