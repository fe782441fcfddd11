package similarity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vecs  [][]float32
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	return f.vecs, f.err
}

const sample = "The committee reviewed the proposal carefully. It approved the budget for next year."

func TestEstimate_IdenticalTextNearHundred(t *testing.T) {
	r := New(Options{}).Estimate(context.Background(), sample, sample)
	assert.InDelta(t, 100.0, r.Score, 0.01)
	assert.Equal(t, MethodTFIDF, r.Method)
	assert.Equal(t, RiskHigh, r.RiskLevel)
	assert.True(t, r.ParaphraseDetected)
}

func TestEstimate_UnrelatedTextLow(t *testing.T) {
	r := New(Options{}).Estimate(context.Background(), sample, "Penguins waddle across frozen beaches.")
	assert.Less(t, r.Score, 10.0)
	assert.Equal(t, RiskLow, r.RiskLevel)
	assert.False(t, r.ParaphraseDetected)
}

func TestEstimate_EmptyContent(t *testing.T) {
	emb := &fakeEmbedder{}
	e := New(Options{Embedder: emb})
	for _, ref := range []string{"", "some reference"} {
		r := e.Estimate(context.Background(), "   ", ref)
		assert.Equal(t, 0.0, r.Score)
		assert.NotNil(t, r.Matches)
		assert.Empty(t, r.Matches)
	}
	assert.Equal(t, 0, emb.calls, "empty content must not reach the embedder")
}

func TestEstimate_Deterministic(t *testing.T) {
	e := New(Options{})
	a := e.Estimate(context.Background(), sample, "The committee approved a budget.")
	for i := 0; i < 10; i++ {
		require.Equal(t, a, e.Estimate(context.Background(), sample, "The committee approved a budget."))
	}
}

func TestEstimate_UsesEmbedder(t *testing.T) {
	emb := &fakeEmbedder{vecs: [][]float32{{1, 0}, {1, 1}}}
	r := New(Options{Embedder: emb}).Estimate(context.Background(), "alpha", "beta")
	assert.Equal(t, MethodEmbedding, r.Method)
	assert.InDelta(t, 70.71, r.Score, 0.01)
	assert.Equal(t, embeddingConfidence, r.Confidence)
}

func TestEstimate_EmbedderFailureFallsBack(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("boom")}
	r := New(Options{Embedder: emb}).Estimate(context.Background(), sample, sample)
	assert.Equal(t, 1, emb.calls)
	assert.Equal(t, MethodTFIDF, r.Method)
	assert.InDelta(t, 100.0, r.Score, 0.01)
}

func TestEstimate_MalformedEmbeddingsFallBack(t *testing.T) {
	for _, vecs := range [][][]float32{
		{{1, 0}},
		{{1, 0}, {1, 0, 0}},
		{{0, 0}, {1, 1}},
	} {
		r := New(Options{Embedder: &fakeEmbedder{vecs: vecs}}).Estimate(context.Background(), sample, sample)
		assert.Equal(t, MethodTFIDF, r.Method)
	}
}

func TestEstimate_NegativeCosineIsZero(t *testing.T) {
	emb := &fakeEmbedder{vecs: [][]float32{{1, 0}, {-1, 0}}}
	r := New(Options{Embedder: emb}).Estimate(context.Background(), "up", "down")
	assert.Equal(t, MethodEmbedding, r.Method)
	assert.Equal(t, 0.0, r.Score)
}

func TestEstimate_PhraseMatch(t *testing.T) {
	content := "All the world's a stage, they said."
	r := New(Options{}).Estimate(context.Background(), content, "")
	require.NotEmpty(t, r.Matches)
	m := r.Matches[0]
	assert.Equal(t, "web", m.SourceLabel)
	assert.InDelta(t, 65.71, m.Similarity, 0.01)
	assert.Equal(t, "All the world's a stage", m.MatchedText)
	assert.Equal(t, 0, m.MatchedSpan.Start)
	assert.Equal(t, webConfidence, m.Confidence)
	assert.Equal(t, MethodCorpus, r.Method)
	assert.InDelta(t, 65.71, r.Score, 0.01)
	assert.Equal(t, RiskMedium, r.RiskLevel)
}

func TestEstimate_PhraseCaseInsensitive(t *testing.T) {
	r := New(Options{}).Estimate(context.Background(), "this study demonstrates it", "")
	require.NotEmpty(t, r.Matches)
	assert.Equal(t, "academic", r.Matches[0].SourceLabel)
	assert.Equal(t, academicConfidence, r.Matches[0].Confidence)
}

func TestEstimate_PhraseBelowFloorIgnored(t *testing.T) {
	content := "This study demonstrates. " + strings.Repeat("Unrelated filler words appear here. ", 20)
	r := New(Options{}).Estimate(context.Background(), content, "")
	for _, m := range r.Matches {
		assert.NotEqual(t, "academic", m.SourceLabel)
	}
}

func TestEstimate_ReferenceCorpus(t *testing.T) {
	content := "Four score and seven years ago our fathers brought forth a new nation conceived in liberty."
	r := New(Options{}).Estimate(context.Background(), content, "")
	require.NotEmpty(t, r.Matches)
	assert.Equal(t, "reference:gettysburg-address", r.Matches[0].SourceLabel)
	assert.Greater(t, r.Score, 50.0)
}

func TestEstimate_OriginalTextNoMatches(t *testing.T) {
	r := New(Options{}).Estimate(context.Background(), "Quarterly widget throughput exceeded forecasts.", "")
	assert.Empty(t, r.Matches)
	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, RiskLow, r.RiskLevel)
}

func TestEstimate_ParaphraseMatches(t *testing.T) {
	content := "The budget was approved by the committee. Penguins are birds."
	reference := "The committee approved the budget yesterday."
	r := New(Options{}).Estimate(context.Background(), content, reference)
	assert.True(t, r.ParaphraseDetected)
	var found bool
	for _, m := range r.Matches {
		if m.SourceLabel == "paraphrase" {
			found = true
			assert.Equal(t, "The budget was approved by the committee", m.MatchedText)
		}
	}
	assert.True(t, found)
}

func TestRiskFor(t *testing.T) {
	assert.Equal(t, RiskLow, RiskFor(50))
	assert.Equal(t, RiskMedium, RiskFor(50.1))
	assert.Equal(t, RiskMedium, RiskFor(80))
	assert.Equal(t, RiskHigh, RiskFor(80.1))
}

func TestTokenize_KeepsStopwordsWhenNothingElse(t *testing.T) {
	assert.Equal(t, []string{"to", "be", "or", "not", "to", "be"}, tokenize("To be or not to be"))
	assert.Equal(t, []string{"committee", "met"}, tokenize("The committee met"))
}

func TestOpenAIEmbedder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  "text-embedding-3-small",
			"data": []map[string]any{
				{"object": "embedding", "index": 1, "embedding": []float32{0, 1}},
				{"object": "embedding", "index": 0, "embedding": []float32{1, 0}},
			},
		})
	}))
	defer srv.Close()

	emb := NewOpenAIEmbedder("test-key", srv.URL+"/v1", "")
	vecs, err := emb.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, vecs)

	r := New(Options{Embedder: emb}).Estimate(context.Background(), "a", "b")
	assert.Equal(t, MethodEmbedding, r.Method)
	assert.Equal(t, 0.0, r.Score)
}

func TestOpenAIEmbedder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"nope"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	emb := NewOpenAIEmbedder("k", srv.URL+"/v1", "")
	_, err := emb.Embed(context.Background(), []string{"a", "b"})
	assert.Error(t, err)

	r := New(Options{Embedder: emb}).Estimate(context.Background(), sample, sample)
	assert.Equal(t, MethodTFIDF, r.Method)
}
