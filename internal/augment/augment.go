// Package augment asks an external language model for extra writing
// suggestions. The adapter is fail-open: timeouts, transport failures and
// unparsable replies all degrade to an empty list that is logged, never
// returned as an error.
package augment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/blackwell-systems/writewatch/internal/logging"
	"github.com/blackwell-systems/writewatch/internal/suggest"
)

// Defaults for Options.
const (
	DefaultTimeout       = 20 * time.Second
	DefaultMaxInputChars = 2000
)

// Generator sends one system/user prompt pair to a model and returns the
// raw text reply.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Outcome labels how a call to Suggest ended.
type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeDisabled   Outcome = "disabled"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeTimeout    Outcome = "timeout"
	OutcomeCanceled   Outcome = "canceled"
	OutcomeError      Outcome = "error"
	OutcomeParseError Outcome = "parse_error"
)

// Request carries the text and the writing intent behind it.
type Request struct {
	Content  string
	Goal     string
	Tone     string
	Audience string
}

// Options configures an Adapter.
type Options struct {
	Timeout       time.Duration
	MaxInputChars int
	Logger        *slog.Logger
}

// Adapter wraps a single Generator call per request.
type Adapter struct {
	gen      Generator
	timeout  time.Duration
	maxInput int
	logger   *slog.Logger
}

// New creates an adapter. A nil Generator yields a disabled adapter that
// returns immediately without any network activity.
func New(gen Generator, opts Options) *Adapter {
	a := &Adapter{
		gen:      gen,
		timeout:  opts.Timeout,
		maxInput: opts.MaxInputChars,
		logger:   opts.Logger,
	}
	if a.timeout <= 0 {
		a.timeout = DefaultTimeout
	}
	if a.maxInput <= 0 {
		a.maxInput = DefaultMaxInputChars
	}
	a.logger = logging.OrDiscard(a.logger)
	return a
}

// Enabled reports whether the adapter will contact a model.
func (a *Adapter) Enabled() bool {
	return a != nil && a.gen != nil
}

// Suggest makes exactly one bounded attempt to fetch suggestions for req.
// Returned suggestions carry OriginalText but no position; the aggregator
// resolves positions against the analyzed text.
func (a *Adapter) Suggest(ctx context.Context, req Request) ([]suggest.Suggestion, Outcome) {
	if !a.Enabled() {
		return nil, OutcomeDisabled
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, OutcomeSkipped
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	raw, err := a.gen.Generate(ctx, systemPrompt, buildPrompt(req, a.maxInput))
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		outcome := classify(err)
		a.logger.Warn("augmentation unavailable",
			"error", err,
			"reason", "remote_unavailable",
			"outcome", string(outcome),
			"elapsed", time.Since(start),
		)
		return nil, outcome
	}

	suggestions, err := Parse(raw)
	if err != nil {
		a.logger.Warn("augmentation reply unusable",
			"error", err,
			"reason", "parse_failure",
			"reply_bytes", len(raw),
		)
		return nil, OutcomeParseError
	}
	a.logger.Debug("augmentation complete", "suggestions", len(suggestions), "elapsed", time.Since(start))
	return suggestions, OutcomeOK
}

func classify(err error) Outcome {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

const systemPrompt = "You are a professional writing assistant. You return precise, " +
	"actionable edits as JSON and nothing else."

func buildPrompt(req Request, maxChars int) string {
	content := req.Content
	if r := []rune(content); len(r) > maxChars {
		content = string(r[:maxChars])
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		"Analyze the following text and suggest improvements to %s for a %s tone targeting a %s audience.\n\n",
		orDefault(req.Goal, "clarity"), orDefault(req.Tone, "professional"), orDefault(req.Audience, "general")))
	sb.WriteString(fmt.Sprintf("Text: %q\n\n", content))
	sb.WriteString(`Respond ONLY with a JSON object in this format:
{
  "suggestions": [
    {
      "type": "spelling|grammar|punctuation|style|clarity|vocabulary|tone",
      "category": "specific category",
      "original_text": "exact text to be changed, copied verbatim",
      "suggested_text": "improved version",
      "explanation": "why this change improves the writing",
      "confidence": 0.85
    }
  ]
}`)
	return sb.String()
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// NewGenerator builds the Generator for a provider name. An empty provider
// means augmentation is off and returns a nil Generator.
func NewGenerator(provider, apiKey, baseURL, model string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "":
		return nil, nil
	case "openai":
		if apiKey == "" {
			return nil, errors.New("API key is required for the openai provider")
		}
		return NewOpenAI(apiKey, baseURL, model), nil
	case "anthropic":
		if apiKey == "" {
			return nil, errors.New("API key is required for the anthropic provider")
		}
		return NewAnthropic(apiKey, baseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown augmentation provider %q", provider)
	}
}
