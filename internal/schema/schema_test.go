package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	Name: "test-point",
	Definition: `{
		"type": "object",
		"required": ["x"],
		"properties": {"x": {"type": "integer"}}
	}`,
}

func TestValidate_Passes(t *testing.T) {
	require.NoError(t, Validate(testSchema, []byte(`{"x": 3}`)))
}

func TestValidate_SchemaViolation(t *testing.T) {
	err := Validate(testSchema, []byte(`{"x": "three"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDocument))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "test-point", ve.Schema)
}

func TestValidate_MalformedJSON(t *testing.T) {
	err := Validate(testSchema, []byte(`{"x":`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestValidate_CachesCompiledSchema(t *testing.T) {
	require.NoError(t, Validate(testSchema, []byte(`{"x": 1}`)))
	_, ok := cache.Load(testSchema.Name)
	assert.True(t, ok)
}

func TestValidate_BadDefinition(t *testing.T) {
	bad := Schema{Name: "broken", Definition: `{"type": `}
	err := Validate(bad, []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile schema")
}
