// Package pipeline wires the rule analyzers, the augmentation adapter, the
// aggregator, the metrics calculator and the similarity estimator into the
// two operations callers use: GenerateSuggestions and EstimateSimilarity.
//
// An Engine is built once at startup and shared; it holds no per-request
// state and is safe for concurrent use.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/writewatch/internal/augment"
	"github.com/blackwell-systems/writewatch/internal/logging"
	"github.com/blackwell-systems/writewatch/internal/metrics"
	"github.com/blackwell-systems/writewatch/internal/similarity"
	"github.com/blackwell-systems/writewatch/internal/suggest"
)

// Defaults applied to empty Request fields.
const (
	DefaultGoal     = "clarity"
	DefaultTone     = "professional"
	DefaultAudience = "general"
)

// Config tunes the rule stage, ranking and metrics.
type Config struct {
	LongSentenceWords int
	Rank              suggest.RankOptions
	Metrics           metrics.Options
}

// Request is one GenerateSuggestions call.
type Request struct {
	Content  string `json:"content"`
	Goal     string `json:"goal,omitempty"`
	Tone     string `json:"tone,omitempty"`
	Audience string `json:"audience,omitempty"`
}

func (r Request) withDefaults() Request {
	if strings.TrimSpace(r.Goal) == "" {
		r.Goal = DefaultGoal
	}
	if strings.TrimSpace(r.Tone) == "" {
		r.Tone = DefaultTone
	}
	if strings.TrimSpace(r.Audience) == "" {
		r.Audience = DefaultAudience
	}
	return r
}

// Response is the result of GenerateSuggestions. ProcessingTime is in
// seconds.
type Response struct {
	Suggestions    []suggest.Suggestion `json:"suggestions" yaml:"suggestions"`
	Metrics        metrics.Metrics      `json:"metrics" yaml:"metrics"`
	Score          int                  `json:"score" yaml:"score"`
	ProcessingTime float64              `json:"processing_time" yaml:"processing_time"`
	Augmentation   augment.Outcome      `json:"augmentation" yaml:"augmentation"`
}

// Engine is the analysis context shared by every request handler.
type Engine struct {
	cfg        Config
	rules      *suggest.Engine
	formal     *suggest.Engine
	adapter    *augment.Adapter
	similarity *similarity.Estimator
	logger     *slog.Logger
}

// New builds an Engine. adapter and sim may be nil: a nil adapter disables
// augmentation and a nil estimator uses local TF-IDF only.
func New(cfg Config, adapter *augment.Adapter, sim *similarity.Estimator, logger *slog.Logger) *Engine {
	logger = logging.OrDiscard(logger)
	if adapter == nil {
		adapter = augment.New(nil, augment.Options{Logger: logger})
	}
	if sim == nil {
		sim = similarity.New(similarity.Options{Logger: logger})
	}
	return &Engine{
		cfg:        cfg,
		rules:      suggest.NewEngine(suggest.Options{LongSentenceWords: cfg.LongSentenceWords}),
		formal:     suggest.NewEngine(suggest.Options{LongSentenceWords: cfg.LongSentenceWords, Tone: "formal"}),
		adapter:    adapter,
		similarity: sim,
		logger:     logger,
	}
}

// GenerateSuggestions analyzes req.Content. Rule scanning, augmentation and
// metrics run concurrently and join before aggregation. A slow or failing
// augmentation service only ever removes its own suggestions.
func (e *Engine) GenerateSuggestions(ctx context.Context, req Request) Response {
	start := time.Now()
	req = req.withDefaults()

	rules := e.rules
	if strings.EqualFold(strings.TrimSpace(req.Tone), "formal") {
		rules = e.formal
	}

	var (
		ruleOut, augOut []suggest.Suggestion
		outcome         augment.Outcome
		m               metrics.Metrics
	)
	var g errgroup.Group
	g.Go(func() error {
		ruleOut = rules.Run(req.Content)
		return nil
	})
	g.Go(func() error {
		augOut, outcome = e.adapter.Suggest(ctx, augment.Request{
			Content:  req.Content,
			Goal:     req.Goal,
			Tone:     req.Tone,
			Audience: req.Audience,
		})
		return nil
	})
	g.Go(func() error {
		m = metrics.Compute(req.Content, e.cfg.Metrics)
		return nil
	})
	_ = g.Wait()

	if ctx.Err() != nil && len(augOut) > 0 {
		augOut = nil
	}

	candidates := make([]suggest.Suggestion, 0, len(ruleOut)+len(augOut))
	candidates = append(candidates, ruleOut...)
	candidates = append(candidates, augOut...)

	resp := Response{
		Suggestions:    suggest.Aggregate(req.Content, candidates, e.cfg.Rank),
		Metrics:        m,
		Score:          metrics.Score(m),
		ProcessingTime: time.Since(start).Seconds(),
		Augmentation:   outcome,
	}

	analysesTotal.WithLabelValues(string(outcome)).Inc()
	augmentOutcomes.WithLabelValues(string(outcome)).Inc()
	analysisDuration.Observe(resp.ProcessingTime)
	for _, s := range resp.Suggestions {
		suggestionsEmitted.WithLabelValues(string(s.Type)).Inc()
	}

	e.logger.Debug("analysis complete",
		"words", m.Lexical.WordCount,
		"rule_candidates", len(ruleOut),
		"augment_candidates", len(augOut),
		"suggestions", len(resp.Suggestions),
		"score", resp.Score,
		"augmentation", string(outcome),
		"elapsed", time.Since(start),
	)
	return resp
}

// EstimateSimilarity compares content with reference, or with the built-in
// reference corpus when reference is empty.
func (e *Engine) EstimateSimilarity(ctx context.Context, content, reference string) similarity.Result {
	r := e.similarity.Estimate(ctx, content, reference)
	similarityEstimates.WithLabelValues(string(r.Method)).Inc()
	return r
}

// ComputeMetrics returns the metrics and composite score for text.
func (e *Engine) ComputeMetrics(text string) (metrics.Metrics, int) {
	m := metrics.Compute(text, e.cfg.Metrics)
	return m, metrics.Score(m)
}
