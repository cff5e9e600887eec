package assessment

import "encoding/json"

// QuestionType describes how a question is answered.
type QuestionType string

const (
	TypeLikert         QuestionType = "likert"
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeScale          QuestionType = "scale"

	// TypeBinary is part of the data model but has no grading rule.
	// Banks containing it are rejected with ErrUnsupportedType.
	TypeBinary QuestionType = "binary"
)

// Category is a top-level question grouping.
type Category string

const (
	CategoryPsychometric Category = "psychometric"
	CategoryTechnical    Category = "technical"
	CategoryReadiness    Category = "readiness"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryPsychometric,
		CategoryTechnical,
		CategoryReadiness,
	}
}

// CategoryDisplayName returns a human-readable name for a category.
func CategoryDisplayName(c Category) string {
	switch c {
	case CategoryPsychometric:
		return "Personality & Interest"
	case CategoryTechnical:
		return "Technical Aptitude"
	case CategoryReadiness:
		return "WISCAR Readiness"
	default:
		return string(c)
	}
}

// Dimension is one of the six WISCAR readiness sub-scores.
type Dimension string

const (
	DimensionNone      Dimension = ""
	DimensionWill      Dimension = "will"
	DimensionInterest  Dimension = "interest"
	DimensionSkill     Dimension = "skill"
	DimensionCognitive Dimension = "cognitive"
	DimensionAbility   Dimension = "ability"
	DimensionRealWorld Dimension = "realWorld"
)

// AllDimensions returns the WISCAR dimensions in display order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimensionWill,
		DimensionInterest,
		DimensionSkill,
		DimensionCognitive,
		DimensionAbility,
		DimensionRealWorld,
	}
}

// DimensionDisplayName returns a human-readable name for a dimension.
func DimensionDisplayName(d Dimension) string {
	switch d {
	case DimensionWill:
		return "Will"
	case DimensionInterest:
		return "Interest"
	case DimensionSkill:
		return "Skill"
	case DimensionCognitive:
		return "Cognitive"
	case DimensionAbility:
		return "Ability to Learn"
	case DimensionRealWorld:
		return "Real-World Fit"
	default:
		return string(d)
	}
}

// Question is a static question definition. Questions are built once with
// the bank and never mutated.
type Question struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Type        QuestionType `json:"type"`
	Category    Category     `json:"category"`
	Subcategory string       `json:"subcategory,omitempty"`
	Construct   string       `json:"construct,omitempty"`

	// Dimension is set only on readiness questions.
	Dimension Dimension `json:"dimension,omitempty"`

	// Options is the ordered option list of a multiple-choice question.
	Options []string `json:"options,omitempty"`

	// CorrectIndex is the 0-based position of the correct option. It only
	// applies to multiple-choice questions and must be kept in step with
	// Options when the options are reordered.
	CorrectIndex int `json:"-"`
}

// noCorrectIndex marks a decoded multiple-choice question whose document
// left out correct_index.
const noCorrectIndex = -1

// questionFields is Question without its methods, for JSON coding.
type questionFields Question

// MarshalJSON writes correct_index for multiple-choice questions only, so
// index 0 is never dropped as an empty value.
func (q Question) MarshalJSON() ([]byte, error) {
	out := struct {
		questionFields
		CorrectIndex *int `json:"correct_index,omitempty"`
	}{questionFields: questionFields(q)}
	if q.Type == TypeMultipleChoice {
		ci := q.CorrectIndex
		out.CorrectIndex = &ci
	}
	return json.Marshal(out)
}

// UnmarshalJSON keeps a missing correct_index on a multiple-choice question
// distinguishable from index 0 so that NewBank can reject it.
func (q *Question) UnmarshalJSON(data []byte) error {
	var in struct {
		questionFields
		CorrectIndex *int `json:"correct_index"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*q = Question(in.questionFields)
	switch {
	case in.CorrectIndex != nil:
		q.CorrectIndex = *in.CorrectIndex
	case q.Type == TypeMultipleChoice:
		q.CorrectIndex = noCorrectIndex
	}
	return nil
}

// Choices returns the selectable choices for the question. Likert and scale
// questions use the fixed five-point labels; multiple-choice questions use
// their own options, valued by index.
func (q Question) Choices() []ScaleOption {
	switch q.Type {
	case TypeLikert:
		return LikertOptions()
	case TypeScale:
		return ScaleOptions()
	case TypeMultipleChoice:
		out := make([]ScaleOption, len(q.Options))
		for i, o := range q.Options {
			out[i] = ScaleOption{Value: i, Label: o}
		}
		return out
	default:
		return nil
	}
}

// Section groups questions for presentation.
type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TimeMinutes int        `json:"time_minutes"`
	Questions   []Question `json:"questions,omitempty"`
}

// ScaleOption is a single selectable value with its label.
type ScaleOption struct {
	Value int
	Label string
}

// LikertOptions returns the five-point agreement scale.
func LikertOptions() []ScaleOption {
	return []ScaleOption{
		{Value: 1, Label: "Strongly Disagree"},
		{Value: 2, Label: "Disagree"},
		{Value: 3, Label: "Neutral"},
		{Value: 4, Label: "Agree"},
		{Value: 5, Label: "Strongly Agree"},
	}
}

// ScaleOptions returns the five-point self-rating scale.
func ScaleOptions() []ScaleOption {
	return []ScaleOption{
		{Value: 1, Label: "Beginner"},
		{Value: 2, Label: "Novice"},
		{Value: 3, Label: "Intermediate"},
		{Value: 4, Label: "Advanced"},
		{Value: 5, Label: "Expert"},
	}
}
