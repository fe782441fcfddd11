package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/writewatch/internal/pipeline"
	"github.com/blackwell-systems/writewatch/internal/similarity"
	"github.com/blackwell-systems/writewatch/internal/suggest"
)

// callTool finds the named tool on s and invokes its handler.
func callTool(s *Server, name string, args json.RawMessage) (any, error) {
	for _, tool := range s.tools {
		if tool.Name == name {
			return tool.Handler(context.Background(), args)
		}
	}
	return nil, nil
}

func TestAddTools_RegistersWritingTools(t *testing.T) {
	s := newEmptyServer()
	names := make([]string, 0, len(s.tools))
	for _, tool := range s.tools {
		names = append(names, tool.Name)
		assert.True(t, json.Valid(tool.InputSchema), tool.Name)
	}
	assert.Equal(t, []string{"generate_suggestions", "estimate_similarity", "compute_metrics"}, names)
}

func TestGenerateSuggestions_FindsIssues(t *testing.T) {
	s := newEmptyServer()
	out, err := callTool(s, "generate_suggestions", json.RawMessage(`{"content":"He have a very good idea. i think so."}`))
	require.NoError(t, err)

	resp, ok := out.(pipeline.Response)
	require.True(t, ok)
	assert.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, "disabled", string(resp.Augmentation))

	types := map[suggest.Type]bool{}
	for _, sg := range resp.Suggestions {
		types[sg.Type] = true
	}
	assert.True(t, types[suggest.TypeGrammar])
	assert.True(t, types[suggest.TypeVocabulary])
}

func TestGenerateSuggestions_FormalTone(t *testing.T) {
	s := newEmptyServer()
	out, err := callTool(s, "generate_suggestions", json.RawMessage(`{"content":"We don't agree.","tone":"formal"}`))
	require.NoError(t, err)

	resp := out.(pipeline.Response)
	var found bool
	for _, sg := range resp.Suggestions {
		if sg.SuggestedText == "do not" {
			found = true
		}
	}
	assert.True(t, found, "expected contraction suggestion, got %+v", resp.Suggestions)
}

func TestGenerateSuggestions_MissingContent(t *testing.T) {
	s := newEmptyServer()
	_, err := callTool(s, "generate_suggestions", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, errContentRequired)

	_, err = callTool(s, "generate_suggestions", json.RawMessage(`{"content":5}`))
	assert.Error(t, err)
}

func TestEstimateSimilarity_WithReference(t *testing.T) {
	s := newEmptyServer()
	text := "The quick brown fox jumps over the lazy dog."
	args, _ := json.Marshal(map[string]string{"content": text, "reference": text})

	out, err := callTool(s, "estimate_similarity", args)
	require.NoError(t, err)

	r := out.(similarity.Result)
	assert.Equal(t, similarity.MethodTFIDF, r.Method)
	assert.InDelta(t, 100, r.Score, 0.01)
}

func TestComputeMetrics_Score(t *testing.T) {
	s := newEmptyServer()
	out, err := callTool(s, "compute_metrics", json.RawMessage(`{"content":"The cat sat. The dog ran."}`))
	require.NoError(t, err)

	res := out.(MetricsResult)
	assert.Equal(t, 2, res.Metrics.Lexical.SentenceCount)
	assert.Equal(t, 65, res.Score)
}

func TestComputeMetrics_EmptyContent(t *testing.T) {
	s := newEmptyServer()
	out, err := callTool(s, "compute_metrics", json.RawMessage(`{"content":""}`))
	require.NoError(t, err)
	assert.Equal(t, 0, out.(MetricsResult).Score)
}
