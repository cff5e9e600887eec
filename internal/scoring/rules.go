package scoring

import "github.com/abhisek/iotfit/internal/assessment"

// Recommendation thresholds. Each band includes its lower bound.
const (
	YesThreshold   = 75
	MaybeThreshold = 55
)

// band maps every score at or above min to text. Bands are ordered from the
// highest min down; the last band must have min 0.
type band struct {
	min  int
	text string
}

var interpretations = map[assessment.Category][]band{
	assessment.CategoryPsychometric: {
		{80, "Excellent psychological fit for IoT security work"},
		{60, "Good personality match with room for growth"},
		{40, "Moderate fit, consider personality development"},
		{0, "Limited psychological alignment with IoT security demands"},
	},
	assessment.CategoryTechnical: {
		{80, "Strong technical foundation for IoT security"},
		{60, "Good technical aptitude with some knowledge gaps"},
		{40, "Basic technical understanding, significant learning needed"},
		{0, "Limited technical knowledge, extensive preparation required"},
	},
	assessment.CategoryReadiness: {
		{80, "Highly ready across all WISCAR dimensions"},
		{60, "Good readiness with some areas for improvement"},
		{40, "Moderate readiness, focused development needed"},
		{0, "Low readiness, consider foundational skill building"},
	},
}

// rule emits text when its predicate holds. A nil predicate always holds.
type rule struct {
	when func(Recommendation, Averages) bool
	text string
}

func (r rule) applies(rec Recommendation, a Averages) bool {
	return r.when == nil || r.when(rec, a)
}

func atLeast(c assessment.Category, n int) func(Recommendation, Averages) bool {
	return func(_ Recommendation, a Averages) bool { return a.Of(c) >= n }
}

func below(c assessment.Category, n int) func(Recommendation, Averages) bool {
	return func(_ Recommendation, a Averages) bool { return a.Of(c) < n }
}

func recommended(recs ...Recommendation) func(Recommendation, Averages) bool {
	return func(rec Recommendation, _ Averages) bool {
		for _, r := range recs {
			if r == rec {
				return true
			}
		}
		return false
	}
}

func both(f, g func(Recommendation, Averages) bool) func(Recommendation, Averages) bool {
	return func(rec Recommendation, a Averages) bool { return f(rec, a) && g(rec, a) }
}

var insightRules = []rule{
	{atLeast(assessment.CategoryPsychometric, 75), "Your personality traits align well with IoT security engineering demands"},
	{below(assessment.CategoryPsychometric, 50), "Consider developing analytical thinking and attention to detail skills"},
	{atLeast(assessment.CategoryTechnical, 75), "Strong technical foundation provides excellent starting point"},
	{below(assessment.CategoryTechnical, 50), "Focus on building fundamental networking and security knowledge"},
	{atLeast(assessment.CategoryReadiness, 75), "High readiness across multiple dimensions indicates strong potential"},
	{below(assessment.CategoryReadiness, 75), "Targeted skill development could significantly improve your readiness"},
}

var (
	isYes   = recommended(RecommendYes)
	isMaybe = recommended(RecommendMaybe)
	isNo    = recommended(RecommendNo)
)

var nextStepRules = []rule{
	{isYes, "Start with introductory IoT security courses and certifications"},
	{isYes, "Join IoT security communities and forums"},
	{isYes, "Practice with hands-on labs and security tools"},
	{isYes, "Consider entry-level positions or internships"},

	{both(isMaybe, below(assessment.CategoryTechnical, 60)), "Strengthen technical fundamentals in networking and programming"},
	{both(isMaybe, below(assessment.CategoryPsychometric, 60)), "Develop analytical and problem-solving skills"},
	{isMaybe, "Take foundational cybersecurity courses"},
	{isMaybe, "Reassess after 6 months of focused learning"},

	{isNo, "Explore related fields like general cybersecurity or network administration"},
	{isNo, "Consider alternative technology career paths"},
	{isNo, "Build foundational skills before reconsidering IoT security"},
}

var careerPaths = map[Recommendation][]string{
	RecommendYes: {
		"IoT Security Engineer",
		"Embedded Security Developer",
		"IoT Security Architect",
		"Security Consultant (IoT Focus)",
		"IoT Penetration Tester",
	},
	RecommendMaybe: {
		"Junior IoT Security Analyst",
		"Network Security Specialist",
		"Cybersecurity Analyst",
		"IoT Security Intern",
	},
	RecommendNo: {
		"General Cybersecurity Analyst",
		"Network Administrator",
		"IT Support Specialist",
		"Software Developer",
		"Systems Administrator",
	},
}

var resourceRules = []rule{
	{below(assessment.CategoryTechnical, 60), "CompTIA Network+ certification for networking fundamentals"},
	{below(assessment.CategoryTechnical, 60), "Python programming courses for security automation"},
	{recommended(RecommendYes, RecommendMaybe), "CISSP or Security+ certification paths"},
	{recommended(RecommendYes, RecommendMaybe), "IoT security specialized courses (Coursera, edX)"},
	{recommended(RecommendYes, RecommendMaybe), "Hands-on labs: TryHackMe, HackTheBox IoT modules"},
	{recommended(RecommendYes, RecommendMaybe), "Industry publications: IoT Security Newsletter, SANS IoT"},
	{nil, "Join professional networks: (ISC)², ISACA"},
}

// Recommend maps an overall fit to its recommendation.
func Recommend(fit int) Recommendation {
	switch {
	case fit >= YesThreshold:
		return RecommendYes
	case fit >= MaybeThreshold:
		return RecommendMaybe
	default:
		return RecommendNo
	}
}

// Interpret returns the canned sentence for a category score.
func Interpret(c assessment.Category, score int) string {
	bands := interpretations[c]
	for _, b := range bands {
		if score >= b.min {
			return b.text
		}
	}
	if len(bands) > 0 {
		return bands[len(bands)-1].text
	}
	return ""
}

// CareerPaths returns the career suggestions for a recommendation.
func CareerPaths(rec Recommendation) []string {
	return append([]string(nil), careerPaths[rec]...)
}

func collect(rules []rule, rec Recommendation, a Averages) []string {
	out := []string{}
	for _, r := range rules {
		if r.applies(rec, a) {
			out = append(out, r.text)
		}
	}
	return out
}

// Insights returns the insight sentences for the category averages.
func Insights(a Averages) []string {
	return collect(insightRules, "", a)
}

// NextSteps returns the ordered next steps.
func NextSteps(rec Recommendation, a Averages) []string {
	return collect(nextStepRules, rec, a)
}

// LearningResources returns the suggested resources.
func LearningResources(rec Recommendation, a Averages) []string {
	return collect(resourceRules, rec, a)
}
