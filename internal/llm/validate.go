package llm

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/lingodeck/internal/schemas"
)

// validateResponse checks raw against schema through the shared schema
// registry. A nil schema accepts anything. Failures are *ErrInvalidResponse.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	compiled, err := schemas.Compile(schema.Name, schema.Definition)
	if err != nil {
		return &ErrInvalidResponse{
			Schema:  schema.Name,
			Content: raw,
			Err:     fmt.Errorf("compile schema: %w", err),
		}
	}
	if err := schemas.ValidateJSON(compiled, raw); err != nil {
		return &ErrInvalidResponse{Schema: schema.Name, Content: raw, Err: err}
	}
	return nil
}
