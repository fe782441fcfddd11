// Package textstat provides the tokenization primitives shared by the
// suggestion rules, the metrics calculator and the similarity estimator.
// Offsets are byte offsets into the analyzed string.
package textstat

import (
	"regexp"
	"strings"
	"unicode"
)

// Span is a half-open [Start, End) byte range.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Passive matches a form of "to be" followed by a past-participle-shaped
// word.
var Passive = regexp.MustCompile(`(?i)\b(?:was|were|is|are|been|being)\s+\w+(?:ed|en)\b`)

var (
	sentenceBreak  = regexp.MustCompile(`[.!?]+`)
	paragraphBreak = regexp.MustCompile(`\n[ \t\r]*\n`)
)

// Words returns the whitespace-delimited tokens of text.
func Words(text string) []string {
	return strings.Fields(text)
}

// Sentences returns the spans of the non-empty segments left after cutting
// text at every run of '.', '!' or '?'. Spans are trimmed of surrounding
// whitespace and exclude the terminating punctuation.
func Sentences(text string) []Span {
	var spans []Span
	start := 0
	for _, br := range sentenceBreak.FindAllStringIndex(text, -1) {
		if s, ok := trimmedSpan(text, start, br[0]); ok {
			spans = append(spans, s)
		}
		start = br[1]
	}
	if s, ok := trimmedSpan(text, start, len(text)); ok {
		spans = append(spans, s)
	}
	return spans
}

func trimmedSpan(text string, start, end int) (Span, bool) {
	seg := text[start:end]
	lead := len(seg) - len(strings.TrimLeftFunc(seg, unicode.IsSpace))
	trimmed := strings.TrimSpace(seg)
	if trimmed == "" {
		return Span{}, false
	}
	s := start + lead
	return Span{Start: s, End: s + len(trimmed)}, true
}

// SentenceCount returns len(Sentences(text)).
func SentenceCount(text string) int {
	return len(Sentences(text))
}

// Paragraphs returns the non-empty blocks of text separated by blank lines.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CleanWord lower-cases w and strips leading and trailing characters that
// are neither letters nor digits. Inner apostrophes and hyphens survive.
func CleanWord(w string) string {
	w = strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(w)
}

// Letters counts the letters and digits in w.
func Letters(w string) int {
	n := 0
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// Syllables estimates the syllable count of a single word: the number of
// vowel groups (a, e, i, o, u, y), minus one for a trailing 'e', never less
// than one. The empty string has zero syllables.
func Syllables(word string) int {
	word = strings.ToLower(word)
	if word == "" {
		return 0
	}
	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// Terms returns the cleaned, lower-cased word tokens of text, dropping
// tokens that contain no letters or digits.
func Terms(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := CleanWord(f); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Truncate shortens s to at most n runes, appending "..." when it cut
// anything.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "..."
		}
		i++
	}
	return s
}
