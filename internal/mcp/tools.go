package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/writewatch/internal/metrics"
	"github.com/blackwell-systems/writewatch/internal/pipeline"
	"github.com/blackwell-systems/writewatch/internal/similarity"
)

// Engine is the analysis surface the tools call. *pipeline.Engine
// satisfies it.
type Engine interface {
	GenerateSuggestions(ctx context.Context, req pipeline.Request) pipeline.Response
	EstimateSimilarity(ctx context.Context, content, reference string) similarity.Result
	ComputeMetrics(text string) (metrics.Metrics, int)
}

// MetricsResult is the compute_metrics payload.
type MetricsResult struct {
	Metrics metrics.Metrics `json:"metrics"`
	Score   int             `json:"score"`
}

var (
	suggestionsSchema = json.RawMessage(`{"type":"object","properties":{` +
		`"content":{"type":"string","description":"Text to analyze"},` +
		`"goal":{"type":"string","description":"Writing goal (default clarity)"},` +
		`"tone":{"type":"string","description":"Target tone; \"formal\" also flags contractions (default professional)"},` +
		`"audience":{"type":"string","description":"Intended audience (default general)"}},` +
		`"required":["content"],"additionalProperties":false}`)
	similaritySchema = json.RawMessage(`{"type":"object","properties":{` +
		`"content":{"type":"string","description":"Text to check"},` +
		`"reference":{"type":"string","description":"Optional text to compare against; omitted means the built-in reference corpus"}},` +
		`"required":["content"],"additionalProperties":false}`)
	metricsSchema = json.RawMessage(`{"type":"object","properties":{` +
		`"content":{"type":"string","description":"Text to measure"}},` +
		`"required":["content"],"additionalProperties":false}`)
)

// addTools registers the writing tools on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "generate_suggestions",
		Description: "Ranked, position-anchored grammar, style, clarity, vocabulary and tone suggestions plus metrics and a 0-100 score.",
		InputSchema: suggestionsSchema,
		Handler:     s.handleGenerateSuggestions,
	})
	s.registerTool(toolDef{
		Name:        "estimate_similarity",
		Description: "Approximate similarity (0-100) of a text against a reference text or a small built-in corpus, with matched spans and a risk level.",
		InputSchema: similaritySchema,
		Handler:     s.handleEstimateSimilarity,
	})
	s.registerTool(toolDef{
		Name:        "compute_metrics",
		Description: "Readability scores, tone vector, lexical statistics and the composite quality score of a text.",
		InputSchema: metricsSchema,
		Handler:     s.handleComputeMetrics,
	})
}

var errContentRequired = errors.New("content is required")

// decodeArgs unmarshals args into v and checks that content was supplied.
func decodeArgs(args json.RawMessage, v any, content **string) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if *content == nil {
		return errContentRequired
	}
	return nil
}

func (s *Server) handleGenerateSuggestions(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Content  *string `json:"content"`
		Goal     string  `json:"goal"`
		Tone     string  `json:"tone"`
		Audience string  `json:"audience"`
	}
	if err := decodeArgs(args, &params, &params.Content); err != nil {
		return nil, err
	}
	return s.engine.GenerateSuggestions(ctx, pipeline.Request{
		Content:  *params.Content,
		Goal:     params.Goal,
		Tone:     params.Tone,
		Audience: params.Audience,
	}), nil
}

func (s *Server) handleEstimateSimilarity(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Content   *string `json:"content"`
		Reference string  `json:"reference"`
	}
	if err := decodeArgs(args, &params, &params.Content); err != nil {
		return nil, err
	}
	return s.engine.EstimateSimilarity(ctx, *params.Content, params.Reference), nil
}

func (s *Server) handleComputeMetrics(_ context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Content *string `json:"content"`
	}
	if err := decodeArgs(args, &params, &params.Content); err != nil {
		return nil, err
	}
	m, score := s.engine.ComputeMetrics(*params.Content)
	return MetricsResult{Metrics: m, Score: score}, nil
}
