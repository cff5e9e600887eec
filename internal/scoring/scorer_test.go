package scoring

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/iotfit/internal/assessment"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	return New(assessment.Default(), zaptest.NewLogger(t))
}

// uniform answers every question: likert/scale questions with likert, and
// technical questions correctly or with a wrong option.
func uniform(likert int, techCorrect bool) []Response {
	var out []Response
	for _, q := range assessment.Default().Questions() {
		v := likert
		if q.Category == assessment.CategoryTechnical {
			v = q.CorrectIndex
			if !techCorrect {
				v = (q.CorrectIndex + 1) % len(q.Options)
			}
		}
		out = append(out, Response{QuestionID: q.ID, Value: Int(v)})
	}
	return out
}

func TestScore_FullMarks(t *testing.T) {
	out := newTestScorer(t).Score(uniform(5, true))

	assert.Equal(t, 100, out.Result.OverallFit)
	assert.Equal(t, RecommendYes, out.Result.Recommendation)
	assert.Equal(t, WISCARDimension{100, 100, 100, 100, 100, 100}, out.WISCAR)
	for _, s := range out.Result.Scores {
		assert.Equal(t, 100, s.Value, s.Category)
		assert.Equal(t, MaxScore, s.MaxValue)
		assert.Equal(t, "overall", s.Subcategory)
	}
	assert.Len(t, out.Result.Insights, 3)
	assert.Len(t, out.Result.NextSteps, 4)
	assert.Len(t, out.Result.CareerPaths, 5)
	assert.Len(t, out.Result.LearningResources, 5)
}

func TestScore_ZeroMarks(t *testing.T) {
	out := newTestScorer(t).Score(uniform(1, false))
	r := out.Result

	psych, _ := r.ScoreFor(assessment.CategoryPsychometric)
	tech, _ := r.ScoreFor(assessment.CategoryTechnical)
	ready, _ := r.ScoreFor(assessment.CategoryReadiness)
	assert.Equal(t, 20, psych.Value)
	assert.Equal(t, 0, tech.Value)
	assert.Equal(t, 20, ready.Value)
	assert.Equal(t, 13, r.OverallFit)
	assert.Equal(t, RecommendNo, r.Recommendation)

	assert.Equal(t, "Limited psychological alignment with IoT security demands", psych.Interpretation)
	assert.Equal(t, "Limited technical knowledge, extensive preparation required", tech.Interpretation)
	assert.Equal(t, "Low readiness, consider foundational skill building", ready.Interpretation)

	assert.Equal(t, []string{
		"Consider developing analytical thinking and attention to detail skills",
		"Focus on building fundamental networking and security knowledge",
		"Targeted skill development could significantly improve your readiness",
	}, r.Insights)
	assert.Equal(t, []string{
		"Explore related fields like general cybersecurity or network administration",
		"Consider alternative technology career paths",
		"Build foundational skills before reconsidering IoT security",
	}, r.NextSteps)
	assert.Equal(t, []string{
		"CompTIA Network+ certification for networking fundamentals",
		"Python programming courses for security automation",
		"Join professional networks: (ISC)², ISACA",
	}, r.LearningResources)
}

func TestScore_Empty(t *testing.T) {
	for _, in := range [][]Response{nil, {}} {
		out := newTestScorer(t).Score(in)
		assert.Equal(t, 0, out.Result.OverallFit)
		assert.Equal(t, RecommendNo, out.Result.Recommendation)
		assert.Equal(t, WISCARDimension{}, out.WISCAR)
		assert.Len(t, out.Result.Scores, 3)
		assert.NotNil(t, out.Result.Insights)
		assert.NotNil(t, out.Result.NextSteps)
	}
}

func TestScore_TechnicalGrading(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  int
	}{
		{"correct int", Int(1), 100},
		{"correct float", Number(1.0), 100},
		{"correct string", String("1"), 100},
		{"padded string", String(" 1 "), 100},
		{"wrong index", Int(0), 0},
		{"other wrong index", Int(2), 0},
		{"option text", String("MQTT"), 0},
		{"empty string", String(""), 0},
		{"fractional", Number(1.5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newTestScorer(t).Score([]Response{{QuestionID: "tech_2", Value: tt.value}})
			tech, ok := out.Result.ScoreFor(assessment.CategoryTechnical)
			require.True(t, ok)
			assert.Equal(t, tt.want, tech.Value)
		})
	}
}

func TestScore_DimensionIsolation(t *testing.T) {
	out := newTestScorer(t).Score([]Response{
		{QuestionID: "will_1", Value: Int(5)},
		{QuestionID: "will_2", Value: Int(5)},
	})

	assert.Equal(t, WISCARDimension{Will: 100}, out.WISCAR)
	ready, _ := out.Result.ScoreFor(assessment.CategoryReadiness)
	assert.Equal(t, 17, ready.Value)
	psych, _ := out.Result.ScoreFor(assessment.CategoryPsychometric)
	assert.Equal(t, 0, psych.Value)
	assert.Equal(t, 6, out.Result.OverallFit)
}

func TestScore_WillVariesAlone(t *testing.T) {
	scorer := newTestScorer(t)
	bank := assessment.Default()

	held := map[assessment.Dimension]int{
		assessment.DimensionInterest:  4,
		assessment.DimensionSkill:     3,
		assessment.DimensionCognitive: 2,
		assessment.DimensionAbility:   5,
		assessment.DimensionRealWorld: 3,
	}
	var fixed []Response
	for d, v := range held {
		for _, q := range bank.ByDimension(d) {
			fixed = append(fixed, Response{QuestionID: q.ID, Value: Int(v)})
		}
	}
	fixed = append(fixed,
		Response{QuestionID: "psych_1", Value: Int(4)},
		Response{QuestionID: "tech_2", Value: Int(1)},
	)

	var baseline WISCARDimension
	for will := 1; will <= 5; will++ {
		rs := append([]Response(nil), fixed...)
		for _, q := range bank.ByDimension(assessment.DimensionWill) {
			rs = append(rs, Response{QuestionID: q.ID, Value: Int(will)})
		}
		got := scorer.Score(rs)

		assert.Equal(t, will*20, got.WISCAR.Will)
		for d, v := range held {
			assert.Equal(t, v*20, got.WISCAR.Get(d), "will=%d dimension %s", will, d)
		}
		psych, _ := got.Result.ScoreFor(assessment.CategoryPsychometric)
		tech, _ := got.Result.ScoreFor(assessment.CategoryTechnical)
		assert.Equal(t, 80, psych.Value)
		assert.Equal(t, 100, tech.Value)

		others := got.WISCAR
		others.Will = 0
		if will == 1 {
			baseline = others
		}
		assert.Equal(t, baseline, others, "will=%d moved another dimension", will)
	}
}

func TestScore_DimensionMean(t *testing.T) {
	out := newTestScorer(t).Score([]Response{
		{QuestionID: "skill_1", Value: Int(4)},
		{QuestionID: "skill_2", Value: Int(5)},
		{QuestionID: "real_world_1", Value: Int(3)},
	})
	assert.Equal(t, 90, out.WISCAR.Skill)
	assert.Equal(t, 60, out.WISCAR.RealWorld)
	assert.Equal(t, 0, out.WISCAR.Cognitive)
}

func TestScore_PsychometricCoercion(t *testing.T) {
	tests := []struct {
		name   string
		values []Value
		want   int
	}{
		{"string number", []Value{String("4")}, 80},
		{"unparseable counts as zero", []Value{String("abc"), Int(5)}, 50},
		{"clamped high", []Value{Int(9)}, 100},
		{"clamped low", []Value{Int(-3)}, 0},
		{"rounds", []Value{Int(1), Int(1), Int(2)}, 27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rs []Response
			for i, v := range tt.values {
				rs = append(rs, Response{QuestionID: assessment.Default().ByCategory(assessment.CategoryPsychometric)[i].ID, Value: v})
			}
			out := newTestScorer(t).Score(rs)
			psych, _ := out.Result.ScoreFor(assessment.CategoryPsychometric)
			assert.Equal(t, tt.want, psych.Value)
		})
	}
}

func TestScore_UnknownIDsIgnored(t *testing.T) {
	s := newTestScorer(t)
	withUnknown := append(uniform(4, true), Response{QuestionID: "bogus_1", Value: Int(5)})
	assert.Equal(t, s.Score(uniform(4, true)), s.Score(withUnknown))

	only := s.Score([]Response{{QuestionID: "psych_99", Value: Int(5)}})
	assert.Equal(t, 0, only.Result.OverallFit)
}

func TestScore_Idempotent(t *testing.T) {
	s := newTestScorer(t)
	in := uniform(4, false)

	a, err := json.Marshal(s.Score(in))
	require.NoError(t, err)
	b, err := json.Marshal(s.Score(in))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestScore_RangeProperty(t *testing.T) {
	s := newTestScorer(t)
	qs := assessment.Default().Questions()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		var rs []Response
		for _, q := range qs {
			if rng.Intn(4) == 0 {
				continue
			}
			rs = append(rs, Response{QuestionID: q.ID, Value: Int(rng.Intn(7))})
		}
		out := s.Score(rs)
		r := out.Result

		var avg Averages
		for _, sc := range r.Scores {
			require.GreaterOrEqual(t, sc.Value, 0)
			require.LessOrEqual(t, sc.Value, 100)
			switch sc.Category {
			case assessment.CategoryPsychometric:
				avg.Psychometric = sc.Value
			case assessment.CategoryTechnical:
				avg.Technical = sc.Value
			case assessment.CategoryReadiness:
				avg.Readiness = sc.Value
			}
		}
		for _, d := range assessment.AllDimensions() {
			require.GreaterOrEqual(t, out.WISCAR.Get(d), 0)
			require.LessOrEqual(t, out.WISCAR.Get(d), 100)
		}
		require.Equal(t, OverallFit(avg), r.OverallFit)
		require.Equal(t, Recommend(r.OverallFit), r.Recommendation)
	}
}

func TestNew_NilLogger(t *testing.T) {
	s := New(assessment.Default(), nil)
	assert.Equal(t, 0, s.Score(nil).Result.OverallFit)
	assert.Same(t, assessment.Default(), s.Bank())
}
