// Package suggest provides the rule-based suggestion engine and the
// aggregator that merges, deduplicates and ranks suggestions.
package suggest

import "strings"

// Type classifies what kind of issue a suggestion addresses.
type Type string

const (
	TypeGrammar     Type = "grammar"
	TypeSpelling    Type = "spelling"
	TypeStyle       Type = "style"
	TypeClarity     Type = "clarity"
	TypeVocabulary  Type = "vocabulary"
	TypeTone        Type = "tone"
	TypePunctuation Type = "punctuation"
)

// Types lists every suggestion type in a stable order.
var Types = []Type{
	TypeGrammar, TypeSpelling, TypePunctuation, TypeStyle,
	TypeClarity, TypeVocabulary, TypeTone,
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	for _, k := range Types {
		if t == k {
			return true
		}
	}
	return false
}

// ParseType maps a free-form type label, as returned by a language model,
// onto a known Type. Unrecognized labels become TypeStyle.
func ParseType(s string) Type {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	if t := Type(s); t.Valid() {
		return t
	}
	switch s {
	case "tense", "agreement", "syntax":
		return TypeGrammar
	case "word_choice", "wording", "word-choice":
		return TypeVocabulary
	case "typo", "misspelling":
		return TypeSpelling
	case "readability", "conciseness":
		return TypeClarity
	}
	return TypeStyle
}

// Severity ranks how much a suggestion matters.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityFor derives a suggestion's severity from its type.
func SeverityFor(t Type) Severity {
	switch t {
	case TypeGrammar, TypeSpelling:
		return SeverityHigh
	case TypePunctuation, TypeStyle, TypeClarity:
		return SeverityMedium
	case TypeVocabulary, TypeTone:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// Source records which stage produced a suggestion.
type Source string

const (
	SourceRules   Source = "rules"
	SourceAugment Source = "augment"
)

// Position is a half-open [Start, End) byte range into the analyzed text.
type Position struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the span length in bytes.
func (p Position) Len() int { return p.End - p.Start }

// Suggestion is a single proposed edit.
type Suggestion struct {
	ID            string   `json:"id" yaml:"id"`
	Type          Type     `json:"type" yaml:"type"`
	Category      string   `json:"category" yaml:"category"`
	OriginalText  string   `json:"original_text" yaml:"original_text"`
	SuggestedText string   `json:"suggested_text" yaml:"suggested_text"`
	Explanation   string   `json:"explanation" yaml:"explanation"`
	Confidence    float64  `json:"confidence" yaml:"confidence"`
	Severity      Severity `json:"severity" yaml:"severity"`
	Position      Position `json:"position" yaml:"position"`
	Source        Source   `json:"source" yaml:"source"`
}
