package schemas

import (
	"errors"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"term"},
		"properties": map[string]any{
			"term": map[string]any{"type": "string", "minLength": 1},
		},
	}
}

func TestCompileCachesByName(t *testing.T) {
	a, err := Compile("test-word", wordSchema())
	require.NoError(t, err)
	b, err := Compile("test-word", map[string]any{"type": "array"})
	require.NoError(t, err)

	assert.Same(t, a, b)
}

func TestCompileJSONSharesCache(t *testing.T) {
	a, err := CompileJSON("test-shared", []byte(`{"type":"string"}`))
	require.NoError(t, err)
	b, err := Compile("test-shared", wordSchema())
	require.NoError(t, err)

	assert.Same(t, a, b)
}

func TestCompileKeepsError(t *testing.T) {
	_, err := Compile("test-broken", map[string]any{"type": 42})
	require.Error(t, err)

	_, again := Compile("test-broken", wordSchema())
	assert.Equal(t, err, again)
}

func TestValidateJSON(t *testing.T) {
	s, err := Compile("test-validate", wordSchema())
	require.NoError(t, err)

	tests := []struct {
		name      string
		raw       string
		malformed bool
		invalid   bool
	}{
		{"valid", `{"term":"hola"}`, false, false},
		{"missing term", `{}`, false, true},
		{"empty term", `{"term":""}`, false, true},
		{"not json", `{term`, true, false},
		{"empty", ``, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(s, []byte(tt.raw))
			switch {
			case tt.malformed:
				assert.ErrorIs(t, err, ErrMalformed)
			case tt.invalid:
				var verr *jsonschema.ValidationError
				assert.True(t, errors.As(err, &verr), "got %T", err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
