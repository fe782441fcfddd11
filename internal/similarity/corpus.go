package similarity

import (
	"regexp"
	"strings"
)

// Phrase is a known passage checked by exact, case-insensitive containment.
type Phrase struct {
	Label string
	Text  string
	re    *regexp.Regexp
}

// Phrase sets and their match confidence.
var (
	webPhrases = []string{
		"The quick brown fox jumps over the lazy dog",
		"To be or not to be, that is the question",
		"All the world's a stage",
	}
	academicPhrases = []string{
		"The results indicate a significant correlation",
		"Previous research has shown",
		"This study demonstrates",
	}
)

const (
	webConfidence      = 0.8
	academicConfidence = 0.9
)

// referenceDocs is the fixed corpus single-document checks compare against.
var referenceDocs = []struct{ label, text string }{
	{"gettysburg-address", "Four score and seven years ago our fathers brought forth on this continent, " +
		"a new nation, conceived in Liberty, and dedicated to the proposition that all men are created equal."},
	{"declaration-of-independence", "We hold these truths to be self-evident, that all men are created equal, " +
		"that they are endowed by their Creator with certain unalienable Rights, that among these are Life, " +
		"Liberty and the pursuit of Happiness."},
	{"a-tale-of-two-cities", "It was the best of times, it was the worst of times, it was the age of wisdom, " +
		"it was the age of foolishness, it was the epoch of belief, it was the epoch of incredulity."},
	{"pride-and-prejudice", "It is a truth universally acknowledged, that a single man in possession of a " +
		"good fortune, must be in want of a wife."},
	{"moby-dick", "Call me Ishmael. Some years ago, never mind how long precisely, having little or no money " +
		"in my purse, and nothing particular to interest me on shore, I thought I would sail about a little " +
		"and see the watery part of the world."},
	{"lorem-ipsum", "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor " +
		"incididunt ut labore et dolore magna aliqua."},
	{"research-boilerplate", "The results of this study indicate a significant correlation between the " +
		"variables. Previous research has shown similar effects, and further research is needed to confirm " +
		"these findings across larger samples."},
}

type corpusEntry struct {
	label string
	terms []string
}

// Corpus is the reference material for single-document checks. It is
// built once and read-only afterwards, so one Corpus can serve concurrent
// estimates.
type Corpus struct {
	phrases []Phrase
	docs    []corpusEntry
}

// DefaultCorpus returns the built-in phrase sets and reference passages.
func DefaultCorpus() *Corpus {
	c := &Corpus{}
	for _, p := range webPhrases {
		c.phrases = append(c.phrases, newPhrase("web", p))
	}
	for _, p := range academicPhrases {
		c.phrases = append(c.phrases, newPhrase("academic", p))
	}
	for _, d := range referenceDocs {
		c.docs = append(c.docs, corpusEntry{label: "reference:" + d.label, terms: tokenize(d.text)})
	}
	return c
}

func newPhrase(label, text string) Phrase {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return Phrase{
		Label: label,
		Text:  text,
		re:    regexp.MustCompile(`(?i)` + strings.Join(words, `\s+`)),
	}
}

func phraseConfidence(label string) float64 {
	if label == "academic" {
		return academicConfidence
	}
	return webConfidence
}
