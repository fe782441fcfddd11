package suggest

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blackwell-systems/writewatch/internal/textstat"
)

// DefaultLongSentenceWords is the sentence length above which Clarity flags
// a sentence.
const DefaultLongSentenceWords = 25

// excerptRunes is how much of a long sentence is echoed as OriginalText.
const excerptRunes = 50

// LongSentenceRule flags sentences with more than maxWords words.
func LongSentenceRule(maxWords int) Rule {
	if maxWords <= 0 {
		maxWords = DefaultLongSentenceWords
	}
	return Rule{
		Name:     "long-sentence",
		Type:     TypeClarity,
		Category: "sentence_length",
		Match: func(text string) [][]int {
			var out [][]int
			for _, s := range textstat.Sentences(text) {
				if len(textstat.Words(text[s.Start:s.End])) > maxWords {
					out = append(out, []int{s.Start, s.End})
				}
			}
			return out
		},
		Explanation: "This sentence has {words} words; consider splitting it.",
		Confidence:  0.7,
		Correct:     splitSentence,
		Excerpt:     excerptRunes,
	}
}

var splitPoints = []string{"; ", ", and ", ", but ", ", which "}

// splitSentence breaks a long sentence in two at its first natural joint.
func splitSentence(s string) string {
	for _, sep := range splitPoints {
		i := strings.Index(s, sep)
		if i <= 0 {
			continue
		}
		rest := strings.TrimSpace(s[i+len(sep):])
		if sep == ", and " || sep == ", but " || sep == ", which " {
			rest = strings.TrimSpace(sep[2:]) + " " + rest
		}
		return s[:i] + ". " + capitalize(rest)
	}
	return Placeholder(s)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Clarity returns the clarity analyzer for the given sentence-length
// threshold.
func Clarity(maxWords int) Analyzer {
	return Table([]Rule{LongSentenceRule(maxWords)})
}
