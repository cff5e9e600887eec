package scoring

import (
	"go.uber.org/zap"

	"github.com/abhisek/iotfit/internal/assessment"
)

// Scorer turns a response list into an Outcome. It is safe for concurrent
// use and never fails: degenerate input degrades to zero contributions.
type Scorer struct {
	bank   *assessment.Bank
	logger *zap.Logger
}

// New creates a scorer over bank. A nil logger disables logging.
func New(bank *assessment.Bank, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{bank: bank, logger: logger}
}

// Bank returns the bank the scorer grades against.
func (s *Scorer) Bank() *assessment.Bank { return s.bank }

// Score grades responses. The list is expected to hold at most one entry
// per question id; duplicates are each counted.
func (s *Scorer) Score(responses []Response) Outcome {
	b := newBuckets()
	unknown := 0
	for _, r := range responses {
		q, ok := s.bank.Lookup(r.QuestionID)
		if !ok {
			unknown++
			s.logger.Debug("ignoring response to unknown question", zap.String("question_id", r.QuestionID))
			continue
		}
		if _, ok := r.Value.Float(); !ok {
			s.logger.Debug("non-numeric answer scored as zero",
				zap.String("question_id", r.QuestionID),
				zap.Stringer("value", r.Value))
		}
		b.add(q, r.Value)
	}

	wiscar := b.wiscar()
	avg := Averages{
		Psychometric: round(b.psychometric.mean()),
		Technical:    round(b.technical.mean()),
		Readiness:    readinessAverage(wiscar),
	}

	result := Build(avg)
	s.logger.Debug("scored assessment",
		zap.Int("responses", len(responses)),
		zap.Int("unknown", unknown),
		zap.Int("overall_fit", result.OverallFit),
		zap.String("recommendation", string(result.Recommendation)))

	return Outcome{Result: result, WISCAR: wiscar}
}

// Build produces the full result from the three category averages.
func Build(avg Averages) AssessmentResult {
	fit := OverallFit(avg)
	rec := Recommend(fit)

	scores := make([]Score, 0, len(assessment.AllCategories()))
	for _, c := range assessment.AllCategories() {
		v := avg.Of(c)
		scores = append(scores, Score{
			Category:       c,
			Subcategory:    "overall",
			Value:          v,
			MaxValue:       MaxScore,
			Interpretation: Interpret(c, v),
		})
	}

	return AssessmentResult{
		Scores:            scores,
		OverallFit:        fit,
		Recommendation:    rec,
		Insights:          Insights(avg),
		NextSteps:         NextSteps(rec, avg),
		CareerPaths:       CareerPaths(rec),
		LearningResources: LearningResources(rec, avg),
	}
}
