package scoring

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/abhisek/iotfit/internal/schema"
)

var responseSchema = schema.Schema{
	Name: "response-file",
	Definition: `{
  "type": "object",
  "required": ["responses"],
  "properties": {
    "label": {"type": "string"},
    "responses": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question_id", "value"],
        "properties": {
          "question_id": {"type": "string", "minLength": 1},
          "value": {"type": ["number", "string"]},
          "timestamp": {"type": ["string", "number", "null"]}
        }
      }
    }
  }
}`,
}

// ResponseFile is the on-disk form of a set of answers.
type ResponseFile struct {
	Label     string     `json:"label,omitempty"`
	Responses []Response `json:"responses"`
}

// LoadResponses reads and schema-checks a response file. Repeated question
// ids are collapsed so the last answer wins.
func LoadResponses(r io.Reader) (ResponseFile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ResponseFile{}, fmt.Errorf("read responses: %w", err)
	}
	if err := schema.Validate(responseSchema, raw); err != nil {
		return ResponseFile{}, fmt.Errorf("load responses: %w", err)
	}

	var f ResponseFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return ResponseFile{}, fmt.Errorf("decode responses: %w", err)
	}
	f.Responses = Dedupe(f.Responses)
	return f, nil
}

// UnmarshalJSON accepts the timestamp as RFC 3339 text or as epoch
// milliseconds, either numeric or quoted. Any other timestamp decodes as
// the zero time; scoring never reads it.
func (r *Response) UnmarshalJSON(data []byte) error {
	var in struct {
		QuestionID string          `json:"question_id"`
		Value      Value           `json:"value"`
		Timestamp  json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.QuestionID = in.QuestionID
	r.Value = in.Value
	r.Timestamp = parseTimestamp(in.Timestamp)
	return nil
}

func parseTimestamp(raw json.RawMessage) time.Time {
	if len(raw) == 0 {
		return time.Time{}
	}
	text := string(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
		text = s
	}
	ms, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(int64(ms)).UTC()
}

// Dedupe keeps the last response per question id. A replaced answer moves to
// the position of its latest entry.
func Dedupe(responses []Response) []Response {
	last := make(map[string]int, len(responses))
	for i, r := range responses {
		last[r.QuestionID] = i
	}
	out := make([]Response, 0, len(last))
	for i, r := range responses {
		if last[r.QuestionID] == i {
			out = append(out, r)
		}
	}
	return out
}
