package scoring

import (
	"math"

	"github.com/abhisek/iotfit/internal/assessment"
)

// pointsPerStep converts a 1-5 answer to the 0-100 scale.
const pointsPerStep = 20

const maxRaw = MaxScore / pointsPerStep

// tally accumulates per-item values for one aggregate.
type tally struct {
	sum float64
	n   int
}

func (t *tally) add(v float64) {
	t.sum += v
	t.n++
}

func (t tally) mean() float64 {
	if t.n == 0 {
		return 0
	}
	return t.sum / float64(t.n)
}

// round rounds half away from zero and clamps to [0, MaxScore].
func round(x float64) int {
	return clamp(int(math.Round(x)), 0, MaxScore)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// rawItem coerces a Likert or scale answer. Malformed values count as zero.
func rawItem(v Value) float64 {
	f, ok := v.Float()
	if !ok {
		return 0
	}
	return clampFloat(f, 0, maxRaw)
}

// likertItem maps a 1-5 answer to 20..100.
func likertItem(v Value) float64 {
	return rawItem(v) * pointsPerStep
}

// gradeItem is 100 when the value coerces to the correct option index.
func gradeItem(q assessment.Question, v Value) float64 {
	f, ok := v.Float()
	if !ok || f != float64(q.CorrectIndex) {
		return 0
	}
	return MaxScore
}

// buckets holds the per-aggregate tallies for one response list.
type buckets struct {
	psychometric tally
	technical    tally
	dimensions   map[assessment.Dimension]*tally
}

func newBuckets() *buckets {
	b := &buckets{dimensions: make(map[assessment.Dimension]*tally)}
	for _, d := range assessment.AllDimensions() {
		b.dimensions[d] = &tally{}
	}
	return b
}

// add routes one answered question to exactly one category tally and, for
// readiness questions, one dimension tally.
func (b *buckets) add(q assessment.Question, v Value) {
	switch q.Category {
	case assessment.CategoryPsychometric:
		b.psychometric.add(likertItem(v))
	case assessment.CategoryTechnical:
		b.technical.add(gradeItem(q, v))
	case assessment.CategoryReadiness:
		if t, ok := b.dimensions[q.Dimension]; ok {
			t.add(rawItem(v))
		}
	}
}

func (b *buckets) wiscar() WISCARDimension {
	var w WISCARDimension
	for _, d := range assessment.AllDimensions() {
		w.set(d, round(b.dimensions[d].mean()*pointsPerStep))
	}
	return w
}

func readinessAverage(w WISCARDimension) int {
	dims := assessment.AllDimensions()
	total := 0
	for _, d := range dims {
		total += w.Get(d)
	}
	return round(float64(total) / float64(len(dims)))
}

// OverallFit is the rounded mean of the three category averages.
func OverallFit(a Averages) int {
	return round(float64(a.Psychometric+a.Technical+a.Readiness) / 3)
}
