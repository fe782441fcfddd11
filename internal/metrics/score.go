package metrics

import "math"

// Score weights.
const (
	weightReadability = 0.4
	weightEngagement  = 0.3
	weightDiversity   = 0.3
)

// Engagement is ten points per question or exclamation mark, capped at 100.
func Engagement(m Metrics) float64 {
	return math.Min(100, float64(m.QuestionCount+m.ExclamationCount)*10)
}

// Score combines readability, engagement and vocabulary diversity into a
// 0-100 integer.
func Score(m Metrics) int {
	raw := weightReadability*m.Readability.Overall +
		weightEngagement*Engagement(m) +
		weightDiversity*m.VocabularyDiversity
	return int(clamp(math.Round(raw), 0, 100))
}
