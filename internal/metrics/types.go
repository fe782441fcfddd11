// Package metrics computes lexical statistics, readability formulas, a tone
// vector and the composite document score. Every function is total over
// strings; empty input yields zero values.
package metrics

// Lexical holds raw counts and averages.
type Lexical struct {
	WordCount          int     `json:"word_count" yaml:"word_count"`
	SentenceCount      int     `json:"sentence_count" yaml:"sentence_count"`
	ParagraphCount     int     `json:"paragraph_count" yaml:"paragraph_count"`
	CharCount          int     `json:"char_count" yaml:"char_count"`
	UniqueWords        int     `json:"unique_words" yaml:"unique_words"`
	AvgSentenceLength  float64 `json:"avg_sentence_length" yaml:"avg_sentence_length"`
	AvgWordLength      float64 `json:"avg_word_length" yaml:"avg_word_length"`
	ReadingTimeMinutes int     `json:"reading_time_minutes" yaml:"reading_time_minutes"`
}

// Readability holds the six named readability scores plus the overall
// scalar used by the score compositor.
type Readability struct {
	FleschReadingEase         float64 `json:"flesch_reading_ease" yaml:"flesch_reading_ease"`
	FleschKincaidGrade        float64 `json:"flesch_kincaid_grade" yaml:"flesch_kincaid_grade"`
	AutomatedReadabilityIndex float64 `json:"automated_readability_index" yaml:"automated_readability_index"`
	ColemanLiau               float64 `json:"coleman_liau" yaml:"coleman_liau"`
	GunningFog                float64 `json:"gunning_fog" yaml:"gunning_fog"`
	SMOG                      float64 `json:"smog" yaml:"smog"`
	Overall                   float64 `json:"overall" yaml:"overall"`
}

// ToneVector scores each tone category in [0, 100].
type ToneVector struct {
	Formal     float64 `json:"formal" yaml:"formal"`
	Confident  float64 `json:"confident" yaml:"confident"`
	Optimistic float64 `json:"optimistic" yaml:"optimistic"`
	Analytical float64 `json:"analytical" yaml:"analytical"`
	Friendly   float64 `json:"friendly" yaml:"friendly"`
	Assertive  float64 `json:"assertive" yaml:"assertive"`
}

// Sentiment splits the words of a text into lexicon shares, in percent.
type Sentiment struct {
	Positive float64 `json:"positive" yaml:"positive"`
	Negative float64 `json:"negative" yaml:"negative"`
	Neutral  float64 `json:"neutral" yaml:"neutral"`
}

// Metrics is the full analysis of one text.
type Metrics struct {
	Lexical             Lexical     `json:"lexical" yaml:"lexical"`
	Readability         Readability `json:"readability" yaml:"readability"`
	Tone                ToneVector  `json:"tone" yaml:"tone"`
	Sentiment           Sentiment   `json:"sentiment" yaml:"sentiment"`
	VocabularyDiversity float64     `json:"vocabulary_diversity" yaml:"vocabulary_diversity"`
	PassiveVoiceRatio   float64     `json:"passive_voice_ratio" yaml:"passive_voice_ratio"`
	AdverbPercentage    float64     `json:"adverb_percentage" yaml:"adverb_percentage"`
	SentenceVariety     float64     `json:"sentence_variety" yaml:"sentence_variety"`
	QuestionCount       int         `json:"question_count" yaml:"question_count"`
	ExclamationCount    int         `json:"exclamation_count" yaml:"exclamation_count"`
}

// Options tunes Compute.
type Options struct {
	// WordsPerMinute sets the reading speed. Zero means DefaultWordsPerMinute.
	WordsPerMinute int
}

// DefaultWordsPerMinute is the reading speed behind ReadingTimeMinutes.
const DefaultWordsPerMinute = 200
