package jsonschema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"description": map[string]interface{}{"type": "string", "minLength": 1},
		"quantity":    map[string]interface{}{"type": []string{"number", "string"}},
		"rate":        map[string]interface{}{"type": []string{"number", "string"}},
	},
	"required": []string{"description", "quantity", "rate"},
}

func TestNew(t *testing.T) {
	t.Run("ValidSchema", func(t *testing.T) {
		validator, err := New(lineSchema)
		require.NoError(t, err)
		require.NotNil(t, validator)
		assert.NotNil(t, validator.schema)
	})

	t.Run("SchemaFromString", func(t *testing.T) {
		validator, err := New(`{"type": "object", "properties": {"name": {"type": "string"}}}`)
		require.NoError(t, err)
		assert.NotNil(t, validator)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		_, err := New(`{"type": "object"`)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	validator := MustNew(lineSchema)

	err := validator.Validate(map[string]interface{}{
		"description": "Site survey",
		"quantity":    2,
		"rate":        "125.50",
	})
	assert.NoError(t, err)

	err = validator.Validate(map[string]interface{}{
		"description": "Site survey",
	})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Fields)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateJSON(t *testing.T) {
	validator := MustNew(lineSchema)

	assert.NoError(t, validator.ValidateJSON([]byte(`{"description":"Labour","quantity":8,"rate":35}`)))
	assert.Error(t, validator.ValidateJSON([]byte(`{"description":"Labour","quantity":true,"rate":35}`)))
	assert.Error(t, validator.ValidateJSON([]byte(`{"description":`)))
}

func TestValidateData(t *testing.T) {
	assert.NoError(t, ValidateData(lineSchema, map[string]interface{}{
		"description": "Materials", "quantity": 1, "rate": 10,
	}))
	assert.Error(t, ValidateData(`{"type": "object"`, map[string]interface{}{}))
	assert.NoError(t, ValidateSchema(lineSchema))
}
