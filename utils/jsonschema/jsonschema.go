package jsonschema

import (
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kaptinlin/jsonschema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Validator wraps a compiled JSON Schema for validation
type Validator struct {
	schema *jsonschema.Schema
}

// ValidationError the data does not match the schema
type ValidationError struct {
	Fields []FieldError
}

// FieldError a single schema violation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// New compiles a JSON Schema and returns a validator
// Returns error if the schema is invalid
//
// Args:
//   - schema: can be map[string]interface{}, []byte, string, or any JSON-serializable type
func New(schema interface{}) (*Validator, error) {
	var schemaBytes []byte
	var err error

	// Handle different input types
	switch v := schema.(type) {
	case string:
		schemaBytes = []byte(v)
	case []byte:
		schemaBytes = v
	default:
		schemaBytes, err = json.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema: %w", err)
		}
	}

	// Compile the schema - this validates the schema structure
	compiler := jsonschema.NewCompiler()
	compiledSchema, err := compiler.Compile(schemaBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON Schema: %w", err)
	}

	return &Validator{
		schema: compiledSchema,
	}, nil
}

// MustNew compiles a JSON Schema, panics on an invalid schema
func MustNew(schema interface{}) *Validator {
	v, err := New(schema)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate validates data against the compiled JSON Schema
// Returns nil if data is valid, a *ValidationError otherwise. The fields
// are sorted so the message is stable.
func (v *Validator) Validate(data interface{}) error {
	result := v.schema.Validate(data)
	if result.IsValid() {
		return nil
	}

	verr := &ValidationError{}
	for field, err := range result.Errors {
		verr.Fields = append(verr.Fields, FieldError{Field: field, Message: err.Message})
	}
	sort.Slice(verr.Fields, func(i, j int) bool { return verr.Fields[i].Field < verr.Fields[j].Field })
	return verr
}

// ValidateJSON decodes a JSON document and validates it
func (v *Validator) ValidateJSON(payload []byte) error {
	var data interface{}
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return v.Validate(data)
}

// ValidateSchema validates a JSON Schema structure without compiling it
// Returns error if the schema is invalid
func ValidateSchema(schema interface{}) error {
	_, err := New(schema)
	return err
}

// ValidateData validates data against a JSON Schema (one-shot validation)
// Returns error if schema is invalid or data doesn't match the schema
func ValidateData(schema interface{}, data interface{}) error {
	validator, err := New(schema)
	if err != nil {
		return err
	}
	return validator.Validate(data)
}
