package suggest

import (
	"regexp"
	"strings"

	"github.com/blackwell-systems/writewatch/internal/textstat"
)

var wordyPhrases = map[string]string{
	"due to the fact that":         "because",
	"in order to":                  "to",
	"at this point in time":        "now",
	"for the purpose of":           "for",
	"in the event that":            "if",
	"in spite of the fact that":    "although",
	"has the ability to":           "can",
	"a large number of":            "many",
	"with regard to":               "about",
	"prior to":                     "before",
	"in the near future":           "soon",
	"it is important to note that": "note that",
}

var styleRules = []Rule{
	{
		Name:     "passive-voice",
		Type:     TypeStyle,
		Category: "passive_voice",
		Match: func(text string) [][]int {
			return textstat.Passive.FindAllStringIndex(text, -1)
		},
		Explanation: `"{match}" is passive; consider the active voice.`,
		Confidence:  0.6,
	},
	phraseRule("wordy-phrase", TypeStyle, "wordiness",
		`"{match}" can be shortened to "{suggested}".`, 0.8, wordyPhrases),
	{
		Name:        "intensifier",
		Type:        TypeStyle,
		Category:    "intensifier",
		Match:       Pattern(`(?i)\b(?:very|really|quite|extremely)\s+\w+`),
		Explanation: `Intensifiers weaken prose; "{suggested}" or a stronger word reads better.`,
		Confidence:  0.55,
		Correct: func(m string) string {
			words := strings.Fields(m)
			return matchCase(m, words[len(words)-1])
		},
	},
	{
		Name:        "repetitive-starter",
		Type:        TypeStyle,
		Category:    "sentence_variety",
		Match:       repetitiveStarters,
		Explanation: `Several sentences open with "{match}"; vary the openings.`,
		Confidence:  0.5,
	},
}

var openingWords = regexp.MustCompile(`^\S+\s+\S+`)

// repetitiveStarters flags the first two words of every sentence after the
// second that opens with the same two words.
func repetitiveStarters(text string) [][]int {
	var out [][]int
	seen := make(map[string]int)
	for _, s := range textstat.Sentences(text) {
		loc := openingWords.FindStringIndex(text[s.Start:s.End])
		if loc == nil {
			continue
		}
		key := normalizeKey(strings.Join(textstat.Terms(text[s.Start+loc[0]:s.Start+loc[1]]), " "))
		if key == "" {
			continue
		}
		seen[key]++
		if seen[key] > 2 {
			out = append(out, []int{s.Start + loc[0], s.Start + loc[1]})
		}
	}
	return out
}

// Style flags passive voice, wordy constructions, intensifiers and
// repetitive sentence openings.
var Style = Table(styleRules)
