package suggest

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var misspellings = map[string]string{
	"teh":         "the",
	"adn":         "and",
	"recieve":     "receive",
	"occured":     "occurred",
	"seperate":    "separate",
	"definately":  "definitely",
	"neccessary":  "necessary",
	"untill":      "until",
	"wich":        "which",
	"alot":        "a lot",
	"accomodate":  "accommodate",
	"beleive":     "believe",
	"thier":       "their",
	"goverment":   "government",
	"enviroment":  "environment",
	"occurence":   "occurrence",
	"tommorow":    "tomorrow",
	"wierd":       "weird",
	"acheive":     "achieve",
	"arguement":   "argument",
	"existance":   "existence",
	"independant": "independent",
}

var grammarRules = []Rule{
	{
		Name:        "third-person-have",
		Type:        TypeGrammar,
		Category:    "subject_verb_agreement",
		Match:       Pattern(`(?i)\b(?:he|she|it)\s+have\b`),
		Explanation: `Subject-verb agreement: a singular subject takes "has", not "have".`,
		Confidence:  0.85,
		Correct:     swapWord(-1, "has"),
	},
	{
		Name:        "third-person-are",
		Type:        TypeGrammar,
		Category:    "subject_verb_agreement",
		Match:       Pattern(`(?i)\b(?:he|she|it)\s+are\b`),
		Explanation: `Subject-verb agreement: a singular subject takes "is", not "are".`,
		Confidence:  0.85,
		Correct:     swapWord(-1, "is"),
	},
	{
		Name:        "third-person-dont",
		Type:        TypeGrammar,
		Category:    "subject_verb_agreement",
		Match:       Pattern(`(?i)\b(?:he|she|it)\s+don't\b`),
		Explanation: `Subject-verb agreement: a singular subject takes "doesn't".`,
		Confidence:  0.85,
		Correct:     swapWord(-1, "doesn't"),
	},
	{
		Name:        "plural-is",
		Type:        TypeGrammar,
		Category:    "subject_verb_agreement",
		Match:       Pattern(`(?i)\b(?:they|we|you)\s+is\b`),
		Explanation: `Subject-verb agreement: a plural subject takes "are", not "is".`,
		Confidence:  0.85,
		Correct:     swapWord(-1, "are"),
	},
	{
		Name:        "plural-was",
		Type:        TypeGrammar,
		Category:    "subject_verb_agreement",
		Match:       Pattern(`(?i)\b(?:they|we|you)\s+was\b`),
		Explanation: `Subject-verb agreement: a plural subject takes "were", not "was".`,
		Confidence:  0.85,
		Correct:     swapWord(-1, "were"),
	},
	{
		Name:        "there-is-plural",
		Type:        TypeGrammar,
		Category:    "subject_verb_agreement",
		Match:       Pattern(`(?i)\bthere\s+is\s+(?:many|several|few|two|three|lots)\b`),
		Explanation: `Subject-verb agreement: use "there are" before a plural.`,
		Confidence:  0.8,
		Correct:     swapWord(1, "are"),
	},
	{
		Name:        "its-contraction",
		Type:        TypeGrammar,
		Category:    "homophone",
		Match:       Pattern(`(?i)\bits\s+(?:a|been|going|not|getting|coming|being|time|raining)\b`),
		Explanation: `"its" is possessive; "it's" means "it is" or "it has".`,
		Confidence:  0.8,
		Correct:     swapWord(0, "it's"),
	},
	{
		Name:        "your-contraction",
		Type:        TypeGrammar,
		Category:    "homophone",
		Match:       Pattern(`(?i)\byour\s+(?:welcome|going|being|not|right|wrong|doing)\b`),
		Explanation: `"your" is possessive; "you're" means "you are".`,
		Confidence:  0.8,
		Correct:     swapWord(0, "you're"),
	},
	{
		Name:        "modal-of",
		Type:        TypeGrammar,
		Category:    "modal_verb",
		Match:       Pattern(`(?i)\b(?:would|could|should|must|might)\s+of\b`),
		Explanation: `Use "have" after a modal verb: "{suggested}".`,
		Confidence:  0.9,
		Correct:     swapWord(-1, "have"),
	},
	{
		Name:        "lowercase-i",
		Type:        TypeGrammar,
		Category:    "capitalization",
		Match:       lowercaseI,
		Explanation: `The pronoun "I" is always capitalized.`,
		Confidence:  0.85,
		Correct:     func(string) string { return "I" },
	},
	{
		Name:        "misspelling",
		Type:        TypeSpelling,
		Category:    "spelling",
		Match:       phraseMatcher(misspellings),
		Explanation: `"{match}" is misspelled; did you mean "{suggested}"?`,
		Confidence:  0.95,
		Correct:     lookup(misspellings),
	},
	{
		Name:        "space-before-punctuation",
		Type:        TypePunctuation,
		Category:    "spacing",
		Match:       Pattern(`[ \t]+[,.;:!?]`),
		Explanation: "Remove the space before punctuation.",
		Confidence:  0.8,
		Correct:     func(m string) string { return strings.TrimLeft(m, " \t") },
	},
	{
		Name:        "double-space",
		Type:        TypePunctuation,
		Category:    "spacing",
		Match:       spaceGaps,
		Explanation: "Use a single space between words.",
		Confidence:  0.7,
		Correct:     collapseSpaces,
	},
	{
		Name:        "repeated-punctuation",
		Type:        TypePunctuation,
		Category:    "repeated_punctuation",
		Match:       Pattern(`[!?][.!?]+|\.[!?]+|,{2,}`),
		Explanation: `Use a single terminal mark instead of "{match}".`,
		Confidence:  0.8,
		Correct:     func(m string) string { return m[:1] },
	},
	{
		Name:        "honorific-period",
		Type:        TypePunctuation,
		Category:    "abbreviation",
		Match:       Pattern(`\b(?:Mr|Mrs|Ms|Dr)\s`),
		Explanation: `Abbreviated titles take a period: "{suggested}".`,
		Confidence:  0.75,
		Correct:     func(m string) string { return strings.TrimSpace(m) + ". " },
	},
	{
		Name:        "repeated-word",
		Type:        TypeGrammar,
		Category:    "repeated_word",
		Match:       repeatedWords,
		Explanation: `"{match}" repeats a word.`,
		Confidence:  0.9,
		Correct:     func(m string) string { return strings.Fields(m)[0] },
	},
}

var (
	wordToken   = regexp.MustCompile(`[\p{L}\p{N}']+`)
	standaloneI = regexp.MustCompile(`\bi\b`)
	spaceRun    = regexp.MustCompile(`[ \t]{2,}`)
)

// spaceGaps finds runs of two or more spaces or tabs between visible
// characters. Only the run itself is matched so adjacent gaps are each found.
func spaceGaps(text string) [][]int {
	var out [][]int
	for _, loc := range spaceRun.FindAllStringIndex(text, -1) {
		if loc[0] == 0 || loc[1] == len(text) {
			continue
		}
		before, _ := utf8.DecodeLastRuneInString(text[:loc[0]])
		after, _ := utf8.DecodeRuneInString(text[loc[1]:])
		if unicode.IsSpace(before) || unicode.IsSpace(after) {
			continue
		}
		out = append(out, loc)
	}
	return out
}

func collapseSpaces(m string) string {
	return spaceRun.ReplaceAllString(m, " ")
}

// lowercaseI finds the bare pronoun "i", skipping abbreviations such as
// "i.e." and contractions such as "i'm", which the table does not cover.
func lowercaseI(text string) [][]int {
	var out [][]int
	for _, loc := range standaloneI.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && strings.ContainsRune(".'-", rune(text[loc[0]-1])) {
			continue
		}
		if loc[1] < len(text) && strings.ContainsRune(".'-", rune(text[loc[1]])) {
			continue
		}
		out = append(out, loc)
	}
	return out
}

// doubledOK lists words that legitimately appear twice in a row.
var doubledOK = map[string]bool{"had": true, "that": true}

// repeatedWords finds a word immediately followed by itself, separated only
// by spaces or tabs.
func repeatedWords(text string) [][]int {
	var out [][]int
	tokens := wordToken.FindAllStringIndex(text, -1)
	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1], tokens[i]
		gap := text[prev[1]:cur[0]]
		if gap == "" || strings.Trim(gap, " \t") != "" {
			continue
		}
		a, b := strings.ToLower(text[prev[0]:prev[1]]), strings.ToLower(text[cur[0]:cur[1]])
		if a != b || doubledOK[a] {
			continue
		}
		out = append(out, []int{prev[0], cur[1]})
		i++ // a triple counts once
	}
	return out
}

// Grammar flags agreement errors, confused homophones, misspellings and
// punctuation artifacts.
var Grammar = Table(grammarRules)
