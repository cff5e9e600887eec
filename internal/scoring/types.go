package scoring

import (
	"time"

	"github.com/abhisek/iotfit/internal/assessment"
)

// MaxScore is the top of every reported scale.
const MaxScore = 100

// Response is a single recorded answer.
type Response struct {
	QuestionID string    `json:"question_id"`
	Value      Value     `json:"value"`
	Timestamp  time.Time `json:"timestamp"`
}

// Recommendation is the categorical verdict derived from the overall fit.
type Recommendation string

const (
	RecommendYes   Recommendation = "yes"
	RecommendMaybe Recommendation = "maybe"
	RecommendNo    Recommendation = "no"
)

// Label returns the headline shown for a recommendation.
func (r Recommendation) Label() string {
	switch r {
	case RecommendYes:
		return "Highly Recommended - You're Ready!"
	case RecommendMaybe:
		return "Conditional - Improvement Needed"
	default:
		return "Consider Alternative Paths"
	}
}

// Score is one category summary on the results dashboard.
type Score struct {
	Category       assessment.Category `json:"category"`
	Subcategory    string              `json:"subcategory,omitempty"`
	Value          int                 `json:"value"`
	MaxValue       int                 `json:"max_value"`
	Interpretation string              `json:"interpretation"`
}

// WISCARDimension holds the six readiness sub-scores, each in [0,100].
type WISCARDimension struct {
	Will      int `json:"will"`
	Interest  int `json:"interest"`
	Skill     int `json:"skill"`
	Cognitive int `json:"cognitive"`
	Ability   int `json:"ability"`
	RealWorld int `json:"real_world"`
}

// Get returns the score for one dimension.
func (w WISCARDimension) Get(d assessment.Dimension) int {
	switch d {
	case assessment.DimensionWill:
		return w.Will
	case assessment.DimensionInterest:
		return w.Interest
	case assessment.DimensionSkill:
		return w.Skill
	case assessment.DimensionCognitive:
		return w.Cognitive
	case assessment.DimensionAbility:
		return w.Ability
	case assessment.DimensionRealWorld:
		return w.RealWorld
	default:
		return 0
	}
}

func (w *WISCARDimension) set(d assessment.Dimension, v int) {
	switch d {
	case assessment.DimensionWill:
		w.Will = v
	case assessment.DimensionInterest:
		w.Interest = v
	case assessment.DimensionSkill:
		w.Skill = v
	case assessment.DimensionCognitive:
		w.Cognitive = v
	case assessment.DimensionAbility:
		w.Ability = v
	case assessment.DimensionRealWorld:
		w.RealWorld = v
	}
}

// AssessmentResult is the complete scored outcome of an attempt.
type AssessmentResult struct {
	Scores            []Score        `json:"scores"`
	OverallFit        int            `json:"overall_fit"`
	Recommendation    Recommendation `json:"recommendation"`
	Insights          []string       `json:"insights"`
	NextSteps         []string       `json:"next_steps"`
	CareerPaths       []string       `json:"career_paths"`
	LearningResources []string       `json:"learning_resources"`
}

// ScoreFor returns the category score, if present.
func (r AssessmentResult) ScoreFor(c assessment.Category) (Score, bool) {
	for _, s := range r.Scores {
		if s.Category == c {
			return s, true
		}
	}
	return Score{}, false
}

// Outcome pairs the result with the readiness breakdown.
type Outcome struct {
	Result AssessmentResult `json:"result"`
	WISCAR WISCARDimension  `json:"wiscar"`
}

// Averages are the three rounded category averages.
type Averages struct {
	Psychometric int
	Technical    int
	Readiness    int
}

// Of returns the average for one category.
func (a Averages) Of(c assessment.Category) int {
	switch c {
	case assessment.CategoryPsychometric:
		return a.Psychometric
	case assessment.CategoryTechnical:
		return a.Technical
	case assessment.CategoryReadiness:
		return a.Readiness
	default:
		return 0
	}
}
