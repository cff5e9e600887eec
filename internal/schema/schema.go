// Package schema validates JSON documents against embedded JSON Schemas.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidDocument is returned when a document is not valid JSON or does
// not satisfy its schema.
var ErrInvalidDocument = errors.New("invalid document")

// Schema is a named JSON Schema definition.
type Schema struct {
	Name       string
	Definition string
}

// ValidationError wraps a failed validation with the schema that rejected it.
type ValidationError struct {
	Schema string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Schema, e.Err)
}

func (e *ValidationError) Unwrap() []error { return []error{ErrInvalidDocument, e.Err} }

// cache holds compiled schemas by name.
var cache sync.Map // map[string]*jsonschema.Schema

// Validate checks raw JSON against s.
func Validate(s Schema, raw []byte) error {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ValidationError{Schema: s.Name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compile(s)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ValidationError{Schema: s.Name, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compile(s Schema) (*jsonschema.Schema, error) {
	if cached, ok := cache.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var def any
	if err := json.Unmarshal([]byte(s.Definition), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	cache.Store(s.Name, compiled)
	return compiled, nil
}
