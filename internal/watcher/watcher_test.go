package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/writewatch/internal/metrics"
	"github.com/blackwell-systems/writewatch/internal/pipeline"
	"github.com/blackwell-systems/writewatch/internal/suggest"
)

// fakeAnalyzer scores text by keyword so tests can steer the state.
type fakeAnalyzer struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeAnalyzer) GenerateSuggestions(_ context.Context, req pipeline.Request) pipeline.Response {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	resp := pipeline.Response{Score: 90}
	resp.Metrics.Readability.FleschReadingEase = 75
	resp.Metrics.Lexical.WordCount = len(strings.Fields(req.Content))
	if strings.Contains(req.Content, "bad") {
		resp.Score = 40
		resp.Metrics.Readability.FleschReadingEase = 25
		resp.Suggestions = []suggest.Suggestion{{
			Type:         suggest.TypeGrammar,
			OriginalText: "he have",
			Explanation:  "Subject-verb agreement",
			Severity:     suggest.SeverityHigh,
		}}
	}
	return resp
}

func (f *fakeAnalyzer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func state(score int, ease float64, high ...suggest.Suggestion) *WatchState {
	resp := pipeline.Response{Score: score, Suggestions: high}
	resp.Metrics = metrics.Metrics{Readability: metrics.Readability{FleschReadingEase: ease}}
	return newState(resp)
}

func grammarIssue(text string) suggest.Suggestion {
	return suggest.Suggestion{Type: suggest.TypeGrammar, OriginalText: text, Severity: suggest.SeverityHigh}
}

func writeDoc(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
}

func TestCompare_IdenticalStates(t *testing.T) {
	prev := state(70, 65, grammarIssue("its"))
	curr := state(70, 65, grammarIssue("its"))
	assert.Empty(t, Compare(prev, curr, 5))
}

func TestCompare_ScoreDrop(t *testing.T) {
	alerts := Compare(state(80, 65), state(74, 65), 5)
	require.Len(t, alerts, 1)
	assert.Equal(t, "critical", alerts[0].Level)
	assert.Equal(t, "Score dropped", alerts[0].Title)

	assert.Empty(t, Compare(state(80, 65), state(77, 65), 5))
}

func TestCompare_ScoreImproved(t *testing.T) {
	alerts := Compare(state(60, 65), state(70, 65), 5)
	require.Len(t, alerts, 1)
	assert.Equal(t, "info", alerts[0].Level)
}

func TestCompare_NewHighSeverity(t *testing.T) {
	prev := state(70, 65, grammarIssue("its"))
	curr := state(70, 65, grammarIssue("its"), grammarIssue("your"))

	alerts := Compare(prev, curr, 5)
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0].Level)
	assert.Contains(t, alerts[0].Message, `"your"`)
}

func TestCompare_ReadabilityBandDrop(t *testing.T) {
	alerts := Compare(state(70, 72), state(70, 55), 5)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Readability dropped", alerts[0].Title)

	// Same band.
	assert.Empty(t, Compare(state(70, 79), state(70, 71), 5))
}

func TestCompare_Resolved(t *testing.T) {
	alerts := Compare(state(70, 65, grammarIssue("its")), state(70, 65), 5)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Issues resolved", alerts[0].Title)
}

func TestNew_RejectsUnsupported(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.png"), &fakeAnalyzer{}, Options{}, nil)
	assert.Error(t, err)
}

func TestCheck_DedupsRepeatedAlerts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	writeDoc(t, path, "good text")

	w, err := New(path, &fakeAnalyzer{}, Options{}, nil)
	require.NoError(t, err)
	_, err = w.Prime(context.Background())
	require.NoError(t, err)

	writeDoc(t, path, "bad text")
	first := w.Check(context.Background())
	assert.NotEmpty(t, first)

	// Unchanged file: no new alerts.
	assert.Empty(t, w.Check(context.Background()))
}

func TestPrime_SetsBaselineOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	writeDoc(t, path, "good text here")

	fa := &fakeAnalyzer{}
	w, err := New(path, fa, Options{Debounce: 10 * time.Millisecond}, nil)
	require.NoError(t, err)

	base, err := w.Prime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 90, base.Score)
	assert.Equal(t, 3, base.WordCount)
	assert.Equal(t, 1, fa.Calls())

	// Run reuses the primed baseline.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Run(ctx), context.DeadlineExceeded)
	assert.Equal(t, 1, fa.Calls())
}

func TestCheck_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")
	w, err := New(path, &fakeAnalyzer{}, Options{}, nil)
	require.NoError(t, err)

	alerts := w.Check(context.Background())
	require.Len(t, alerts, 1)
	assert.Equal(t, "Analysis failed", alerts[0].Title)
}

func TestRun_AlertsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.md")
	writeDoc(t, path, "good text")

	alerts := make(chan Alert, 16)
	fa := &fakeAnalyzer{}
	w, err := New(path, fa, Options{Debounce: 20 * time.Millisecond}, func(a Alert) { alerts <- a })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Wait for the initial snapshot before editing.
	require.Eventually(t, func() bool { return fa.Calls() >= 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	writeDoc(t, path, "bad text")

	var got []Alert
	timeout := time.After(5 * time.Second)
collect:
	for {
		select {
		case a := <-alerts:
			got = append(got, a)
			if a.Level == "critical" {
				break collect
			}
		case <-timeout:
			break collect
		}
	}
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	titles := make([]string, 0, len(got))
	for _, a := range got {
		titles = append(titles, a.Title)
	}
	assert.Contains(t, titles, "Score dropped")
}
