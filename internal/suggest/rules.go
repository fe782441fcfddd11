package suggest

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blackwell-systems/writewatch/internal/textstat"
)

// Matcher returns the [start, end) byte spans of every leftmost,
// non-overlapping match in text.
type Matcher func(text string) [][]int

// Corrector rewrites a matched substring into its suggested replacement.
type Corrector func(match string) string

// Rule is one row of a declarative rule table.
//
// Explanation may reference {match}, {suggested} and {words}, which are
// replaced with the matched text, the suggested text and the matched word
// count. When Correct is nil the suggestion carries a placeholder
// correction. A positive Excerpt limits OriginalText to that many runes
// while Position still covers the whole match.
type Rule struct {
	Name        string
	Type        Type
	Category    string
	Match       Matcher
	Explanation string
	Confidence  float64
	Correct     Corrector
	Excerpt     int
}

// Pattern compiles expr once and returns a global-scan Matcher for it.
func Pattern(expr string) Matcher {
	re := regexp.MustCompile(expr)
	return func(text string) [][]int {
		return re.FindAllStringIndex(text, -1)
	}
}

// Placeholder is the correction emitted when a rule has no specific rewrite.
func Placeholder(original string) string {
	return "[Corrected: " + original + "]"
}

// Scan applies the rule to text.
func (r Rule) Scan(text string) []Suggestion {
	var out []Suggestion
	for _, loc := range r.Match(text) {
		if len(loc) < 2 || loc[0] < 0 || loc[0] >= loc[1] || loc[1] > len(text) {
			continue
		}
		match := text[loc[0]:loc[1]]

		suggested := Placeholder(match)
		if r.Correct != nil {
			suggested = r.Correct(match)
		}
		original := match
		if r.Excerpt > 0 {
			original = textstat.Truncate(match, r.Excerpt)
		}

		out = append(out, Suggestion{
			Type:          r.Type,
			Category:      r.Category,
			OriginalText:  original,
			SuggestedText: suggested,
			Explanation:   r.explain(match, suggested),
			Confidence:    r.Confidence,
			Severity:      SeverityFor(r.Type),
			Position:      Position{Start: loc[0], End: loc[1]},
			Source:        SourceRules,
		})
	}
	return out
}

func (r Rule) explain(match, suggested string) string {
	return strings.NewReplacer(
		"{match}", match,
		"{suggested}", suggested,
		"{words}", strconv.Itoa(len(textstat.Words(match))),
	).Replace(r.Explanation)
}

// Table runs every rule in order and concatenates the results.
func Table(rules []Rule) Analyzer {
	return func(text string) []Suggestion {
		var out []Suggestion
		for _, r := range rules {
			out = append(out, r.Scan(text)...)
		}
		return out
	}
}

// matchCase copies the capitalization of src's first letter onto repl.
func matchCase(src, repl string) string {
	if repl == "" || src == "" {
		return repl
	}
	first, _ := utf8.DecodeRuneInString(src)
	if !unicode.IsUpper(first) {
		return repl
	}
	r, size := utf8.DecodeRuneInString(repl)
	return string(unicode.ToUpper(r)) + repl[size:]
}

// normalizeKey lower-cases s and collapses internal whitespace.
func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// phraseMatcher builds a case-insensitive whole-phrase matcher over the keys
// of table. Longer phrases win when alternatives share a prefix.
func phraseMatcher(table map[string]string) Matcher {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	alts := make([]string, len(keys))
	for i, k := range keys {
		words := strings.Fields(k)
		for j, w := range words {
			words[j] = regexp.QuoteMeta(w)
		}
		alts[i] = strings.Join(words, `\s+`)
	}
	return Pattern(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// lookup returns a Corrector that replaces a match with its table entry.
func lookup(table map[string]string) Corrector {
	return func(match string) string {
		repl, ok := table[normalizeKey(match)]
		if !ok {
			return Placeholder(match)
		}
		return matchCase(match, repl)
	}
}

// phraseRule is a Rule driven by a phrase-to-replacement table.
func phraseRule(name string, t Type, category, explanation string, confidence float64, table map[string]string) Rule {
	return Rule{
		Name:        name,
		Type:        t,
		Category:    category,
		Match:       phraseMatcher(table),
		Explanation: explanation,
		Confidence:  confidence,
		Correct:     lookup(table),
	}
}

// swapWord returns a Corrector that replaces the idx-th word of a match
// (negative counts from the end), keeping the original capitalization.
func swapWord(idx int, repl string) Corrector {
	return func(match string) string {
		words := strings.Fields(match)
		if len(words) == 0 {
			return Placeholder(match)
		}
		i := idx
		if i < 0 {
			i = len(words) + i
		}
		if i < 0 || i >= len(words) {
			return Placeholder(match)
		}
		words[i] = matchCase(words[i], repl)
		return strings.Join(words, " ")
	}
}
