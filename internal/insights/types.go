// Package insights derives writing statistics, achievements and trends from
// a user's stored documents.
package insights

// Performance summarizes a user's documents.
type Performance struct {
	TotalDocuments          int     `json:"total_documents" yaml:"total_documents"`
	TotalWords              int     `json:"total_words" yaml:"total_words"`
	AverageScore            float64 `json:"average_score" yaml:"average_score"`
	BestScore               int     `json:"best_score" yaml:"best_score"`
	WritingFrequency        float64 `json:"writing_frequency" yaml:"writing_frequency"` // documents per day
	AverageWordsPerDocument float64 `json:"average_words_per_document" yaml:"average_words_per_document"`
	MinutesPerDay           int     `json:"minutes_per_day" yaml:"minutes_per_day"`
}

// Insight is an observation about the user's writing habits.
type Insight struct {
	Type           string `json:"type" yaml:"type"`
	Title          string `json:"title" yaml:"title"`
	Description    string `json:"description" yaml:"description"`
	Impact         string `json:"impact" yaml:"impact"`
	Recommendation string `json:"recommendation" yaml:"recommendation"`
}

// Achievement is an unlocked milestone.
type Achievement struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

// DayActivity is one bar of the activity chart.
type DayActivity struct {
	Date      string  `json:"date" yaml:"date"` // YYYY-MM-DD
	Words     int     `json:"words" yaml:"words"`
	Documents int     `json:"documents" yaml:"documents"`
	Score     float64 `json:"score" yaml:"score"` // average score of that day's documents
}

// RecentDocument is a short entry in the recent-activity list.
type RecentDocument struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	WordCount int    `json:"word_count" yaml:"word_count"`
	Score     int    `json:"score" yaml:"score"`
	Date      string `json:"date" yaml:"date"`
}

// Report bundles everything the insights command shows.
type Report struct {
	Performance      Performance      `json:"performance" yaml:"performance"`
	Insights         []Insight        `json:"insights" yaml:"insights"`
	ImprovementAreas []string         `json:"improvement_areas" yaml:"improvement_areas"`
	Achievements     []Achievement    `json:"achievements" yaml:"achievements"`
	Streak           int              `json:"writing_streak" yaml:"writing_streak"`
	ImprovementRate  float64          `json:"improvement_rate" yaml:"improvement_rate"`
	Activity         []DayActivity    `json:"activity_chart" yaml:"activity_chart"`
	Recent           []RecentDocument `json:"recent_activity" yaml:"recent_activity"`
}
