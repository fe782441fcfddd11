package metrics

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/blackwell-systems/writewatch/internal/textstat"
)

// Compute analyzes text. It never fails; whitespace-only text returns the
// zero Metrics.
func Compute(text string, opts Options) Metrics {
	words := textstat.Words(text)
	if len(words) == 0 {
		return Metrics{}
	}
	wpm := opts.WordsPerMinute
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}

	sentences := textstat.Sentences(text)
	c := counts{words: len(words), sentences: len(sentences)}
	var adverbs int
	terms := make([]string, 0, len(words))
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		clean := textstat.CleanWord(w)
		syl := max(textstat.Syllables(clean), 1)
		c.syllables += syl
		if syl >= 3 {
			c.complex++
		}
		c.letters += textstat.Letters(w)
		if clean == "" {
			continue
		}
		terms = append(terms, clean)
		unique[clean] = struct{}{}
		if len(clean) > 3 && strings.HasSuffix(clean, "ly") {
			adverbs++
		}
	}

	n := float64(c.words)
	m := Metrics{
		Lexical: Lexical{
			WordCount:          c.words,
			SentenceCount:      c.sentences,
			ParagraphCount:     len(textstat.Paragraphs(text)),
			CharCount:          utf8.RuneCountInString(text),
			UniqueWords:        len(unique),
			AvgSentenceLength:  round2(c.avgSentenceLength()),
			AvgWordLength:      round2(c.avgLetters()),
			ReadingTimeMinutes: max(1, int(math.Ceil(n/float64(wpm)))),
		},
		Readability:         readability(c),
		Tone:                tone(terms, c.words),
		Sentiment:           sentiment(terms, c.words),
		VocabularyDiversity: round2(float64(len(unique)) / n * 100),
		PassiveVoiceRatio:   round2(PassiveRatio(text, c.sentences)),
		AdverbPercentage:    round2(float64(adverbs) / n * 100),
		SentenceVariety:     round2(sentenceVariety(text, sentences)),
		QuestionCount:       strings.Count(text, "?"),
		ExclamationCount:    strings.Count(text, "!"),
	}
	return m
}

// PassiveRatio is passive constructions per sentence, as a percentage.
// Several constructions in one sentence push it past 100.
func PassiveRatio(text string, sentences int) float64 {
	hits := len(textstat.Passive.FindAllStringIndex(text, -1))
	return float64(hits) / float64(max(sentences, 1)) * 100
}

// sentenceVariety is (longest - shortest) / longest sentence length, in
// percent. Fewer than two sentences have no variety.
func sentenceVariety(text string, sentences []textstat.Span) float64 {
	if len(sentences) < 2 {
		return 0
	}
	shortest, longest := math.MaxInt, 0
	for _, s := range sentences {
		n := len(textstat.Words(text[s.Start:s.End]))
		shortest = min(shortest, n)
		longest = max(longest, n)
	}
	if longest == 0 {
		return 0
	}
	return float64(longest-shortest) / float64(longest) * 100
}
