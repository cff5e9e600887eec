package assessment

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/iotfit/internal/schema"
)

func TestDefault_Counts(t *testing.T) {
	b := Default()

	tests := []struct {
		category Category
		want     int
	}{
		{CategoryPsychometric, 8},
		{CategoryTechnical, 6},
		{CategoryReadiness, 12},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := len(b.ByCategory(tt.category)); got != tt.want {
				t.Errorf("got %d questions, want %d", got, tt.want)
			}
		})
	}

	if b.Len() != 26 {
		t.Errorf("got %d questions, want 26", b.Len())
	}
	for _, d := range AllDimensions() {
		if got := len(b.ByDimension(d)); got != 2 {
			t.Errorf("dimension %s: got %d questions, want 2", d, got)
		}
	}
}

func TestDefault_Sections(t *testing.T) {
	secs := Default().Sections()
	require.Len(t, secs, 4)

	ids := []string{secs[0].ID, secs[1].ID, secs[2].ID, secs[3].ID}
	assert.Equal(t, []string{"introduction", "psychometric", "technical", "wiscar"}, ids)
	assert.Empty(t, secs[0].Questions)
	assert.Equal(t, 33, Default().TotalMinutes())
}

func TestDefault_AnswerKey(t *testing.T) {
	want := map[string]int{
		"tech_1": 0, "tech_2": 1, "tech_3": 1,
		"tech_4": 0, "tech_5": 1, "tech_6": 1,
	}
	for id, idx := range want {
		q, ok := Default().Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, idx, q.CorrectIndex, id)
	}

	q, _ := Default().Lookup("tech_2")
	assert.Equal(t, "MQTT", q.Options[q.CorrectIndex])
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Default().Lookup("psych_99")
	assert.False(t, ok)

	_, err := Default().Get("psych_99")
	assert.ErrorIs(t, err, ErrUnknownQuestion)
	assert.Equal(t, -1, Default().Index("psych_99"))
}

func TestQuestions_ReturnsCopies(t *testing.T) {
	b := Default()
	qs := b.Questions()
	qs[8].Options[0] = "tampered"
	qs[0].Text = "tampered"

	q, _ := b.Lookup(qs[8].ID)
	assert.Equal(t, "1111", q.Options[0])
	again := b.Questions()
	assert.NotEqual(t, "tampered", again[0].Text)
}

func TestQuestions_Order(t *testing.T) {
	qs := Default().Questions()
	assert.Equal(t, "psych_1", qs[0].ID)
	assert.Equal(t, "tech_1", qs[8].ID)
	assert.Equal(t, "real_world_2", qs[len(qs)-1].ID)
	assert.Equal(t, 8, Default().Index("tech_1"))
}

func TestSectionOf(t *testing.T) {
	s, ok := Default().SectionOf("cognitive_1")
	require.True(t, ok)
	assert.Equal(t, "wiscar", s.ID)

	_, ok = Default().SectionOf("nope")
	assert.False(t, ok)
}

func TestChoices(t *testing.T) {
	b := Default()

	likert, _ := b.Lookup("psych_1")
	assert.Equal(t, "Strongly Agree", likert.Choices()[4].Label)

	scale, _ := b.Lookup("skill_1")
	assert.Equal(t, "Expert", scale.Choices()[4].Label)
	assert.Equal(t, 5, scale.Choices()[4].Value)

	mc, _ := b.Lookup("tech_2")
	choices := mc.Choices()
	require.Len(t, choices, 4)
	assert.Equal(t, ScaleOption{Value: 1, Label: "MQTT"}, choices[1])
}

func TestNewBank_RejectsBinary(t *testing.T) {
	_, err := NewBank([]Section{{
		ID: "s",
		Questions: []Question{
			{ID: "b1", Text: "Yes or no?", Type: TypeBinary, Category: CategoryPsychometric},
		},
	}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestNewBank_CollectsAllProblems(t *testing.T) {
	_, err := NewBank([]Section{{
		ID: "s",
		Questions: []Question{
			{ID: "a", Text: "one", Type: TypeLikert, Category: CategoryPsychometric},
			{ID: "a", Text: "two", Type: TypeLikert, Category: CategoryPsychometric},
			{ID: "t", Text: "tech", Type: TypeMultipleChoice, Category: CategoryTechnical, Options: []string{"x", "y"}, CorrectIndex: 5},
			{ID: "r", Text: "ready", Type: TypeLikert, Category: CategoryReadiness},
			{ID: "p", Text: "psych", Type: TypeLikert, Category: CategoryPsychometric, Dimension: DimensionWill},
			{ID: "e", Text: "", Type: TypeLikert, Category: CategoryPsychometric},
		},
	}})
	require.Error(t, err)

	var be *BankError
	require.True(t, errors.As(err, &be))
	assert.ErrorIs(t, err, ErrInvalidBank)
	assert.False(t, errors.Is(err, ErrUnsupportedType))

	msg := err.Error()
	for _, want := range []string{"duplicate question ID", "correct index 5", "WISCAR dimension", "only readiness", "text is empty"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error should mention %q, got: %v", want, msg)
		}
	}
}

func TestNewBank_UnknownEnums(t *testing.T) {
	_, err := NewBank([]Section{{
		ID: "s",
		Questions: []Question{
			{ID: "a", Text: "one", Type: "slider", Category: CategoryPsychometric},
			{ID: "b", Text: "two", Type: TypeLikert, Category: "mood"},
		},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "slider"`)
	assert.Contains(t, err.Error(), `unknown category "mood"`)
}

func TestNewBank_DuplicateSection(t *testing.T) {
	_, err := NewBank([]Section{{ID: "x"}, {ID: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate section ID")
}

func TestNewBank_MissingDimension(t *testing.T) {
	_, err := NewBank([]Section{{
		ID: "w",
		Questions: []Question{
			{ID: "will_1", Text: "w", Type: TypeLikert, Category: CategoryReadiness, Dimension: DimensionWill},
		},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `dimension "interest" has no questions`)
}

func TestNewBank_DoesNotAliasInput(t *testing.T) {
	secs := []Section{{
		ID: "t",
		Questions: []Question{
			{ID: "t1", Text: "q", Type: TypeMultipleChoice, Category: CategoryTechnical, Options: []string{"a", "b"}, CorrectIndex: 1},
		},
	}}
	b, err := NewBank(secs)
	require.NoError(t, err)

	secs[0].Questions[0].Options[1] = "changed"
	q, _ := b.Lookup("t1")
	assert.Equal(t, "b", q.Options[1])
}

func TestLoadBank_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBank(&buf, Default()))

	b, err := LoadBank(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default().Questions(), b.Questions())
	assert.Equal(t, Default().Sections(), b.Sections())
}

func TestLoadBank_SchemaRejects(t *testing.T) {
	_, err := LoadBank(strings.NewReader(`{"sections": [{"id": "s", "title": "S", "questions": [{"id": "q", "text": "t", "type": "slider", "category": "technical"}]}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load bank")
}

func TestLoadBank_Binary(t *testing.T) {
	_, err := LoadBank(strings.NewReader(`{"sections": [{"id": "s", "title": "S", "questions": [{"id": "q", "text": "t", "type": "binary", "category": "psychometric"}]}]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLoadBank_MissingCorrectIndex(t *testing.T) {
	_, err := LoadBank(strings.NewReader(`{"sections": [{"id": "s", "title": "S", "questions": [
		{"id": "t1", "text": "Pick one", "type": "multiple-choice", "category": "technical", "options": ["a", "b"]}
	]}]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInvalidDocument)
}

func TestNewBank_DecodedMissingCorrectIndex(t *testing.T) {
	var sec Section
	require.NoError(t, json.Unmarshal([]byte(`{"id": "s", "title": "S", "questions": [
		{"id": "t1", "text": "Pick one", "type": "multiple-choice", "category": "technical", "options": ["a", "b"]}
	]}`), &sec))

	_, err := NewBank([]Section{sec})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBank)
	assert.Contains(t, err.Error(), "correct index is missing")
}

func TestWriteBank_KeepsIndexZero(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBank(&buf, Default()))

	var doc struct {
		Sections []struct {
			Questions []map[string]any `json:"questions"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	found := false
	for _, sec := range doc.Sections {
		for _, q := range sec.Questions {
			switch q["id"] {
			case "tech_1":
				found = true
				assert.Equal(t, float64(0), q["correct_index"])
			case "psych_1":
				assert.NotContains(t, q, "correct_index")
			}
		}
	}
	assert.True(t, found, "tech_1 not written")
}
