package suggest

import (
	"strings"

	"golang.org/x/sync/errgroup"
)

// Analyzer is a pure function from text to candidate suggestions.
type Analyzer func(text string) []Suggestion

// Options tunes which analyzers an Engine runs.
type Options struct {
	// LongSentenceWords is the Clarity threshold. Zero means the default.
	LongSentenceWords int

	// Tone is the requested tone. "formal" adds the contraction rule.
	Tone string
}

// Engine runs all registered analyzers against a text and collects the
// resulting candidate suggestions in rule-table order.
type Engine struct {
	analyzers []Analyzer
}

// NewEngine creates an engine with the built-in analyzers registered.
func NewEngine(opts Options) *Engine {
	analyzers := []Analyzer{
		Grammar,
		Style,
		Clarity(opts.LongSentenceWords),
		Vocabulary,
		Tone,
	}
	if strings.EqualFold(strings.TrimSpace(opts.Tone), "formal") {
		analyzers = append(analyzers, Formal)
	}
	return &Engine{analyzers: analyzers}
}

// NewEngineWith creates an engine that runs exactly the given analyzers.
func NewEngineWith(analyzers ...Analyzer) *Engine {
	return &Engine{analyzers: analyzers}
}

// Run executes every analyzer concurrently and returns their output
// concatenated in registration order. Whitespace-only text yields nil.
func (e *Engine) Run(text string) []Suggestion {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	results := make([][]Suggestion, len(e.analyzers))
	var g errgroup.Group
	for i, analyze := range e.analyzers {
		g.Go(func() error {
			results[i] = analyze(text)
			return nil
		})
	}
	_ = g.Wait()

	var all []Suggestion
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}
