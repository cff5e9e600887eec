package assessment

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/abhisek/iotfit/internal/schema"
)

// bankSchema describes the JSON form of a question bank.
var bankSchema = schema.Schema{
	Name: "question-bank",
	Definition: `{
  "type": "object",
  "required": ["sections"],
  "properties": {
    "sections": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "description": {"type": "string"},
          "time_minutes": {"type": "integer", "minimum": 0},
          "questions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "text", "type", "category"],
              "properties": {
                "id": {"type": "string", "minLength": 1},
                "text": {"type": "string", "minLength": 1},
                "type": {"enum": ["likert", "multiple-choice", "scale", "binary"]},
                "category": {"enum": ["psychometric", "technical", "readiness"]},
                "subcategory": {"type": "string"},
                "construct": {"type": "string"},
                "dimension": {"enum": ["will", "interest", "skill", "cognitive", "ability", "realWorld"]},
                "options": {"type": "array", "items": {"type": "string"}},
                "correct_index": {"type": "integer", "minimum": 0}
              },
              "if": {"properties": {"type": {"const": "multiple-choice"}}},
              "then": {"required": ["options", "correct_index"]}
            }
          }
        }
      }
    }
  }
}`,
}

type bankDocument struct {
	Sections []Section `json:"sections"`
}

// LoadBank reads a JSON question bank, checks it against the bank schema
// and then builds it with NewBank.
func LoadBank(r io.Reader) (*Bank, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	if err := schema.Validate(bankSchema, raw); err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}

	var doc bankDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return NewBank(doc.Sections)
}

// WriteBank writes the bank in the JSON form accepted by LoadBank.
func WriteBank(w io.Writer, b *Bank) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bankDocument{Sections: b.Sections()})
}
