// Package watcher re-analyzes a document whenever it changes on disk and
// emits alerts when its quality regresses.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/writewatch/internal/ingest"
	"github.com/blackwell-systems/writewatch/internal/logging"
	"github.com/blackwell-systems/writewatch/internal/metrics"
	"github.com/blackwell-systems/writewatch/internal/pipeline"
	"github.com/blackwell-systems/writewatch/internal/suggest"
)

// Analyzer runs the suggestion pipeline. *pipeline.Engine satisfies it.
type Analyzer interface {
	GenerateSuggestions(ctx context.Context, req pipeline.Request) pipeline.Response
}

// WatchState captures one analysis of the watched document.
type WatchState struct {
	Timestamp       time.Time
	Score           int
	WordCount       int
	Readability     float64 // Flesch reading ease
	Band            string
	BandLevel       int
	SuggestionCount int
	Augmentation    string

	// High-severity findings keyed by type and original text.
	highSeverity map[string]suggest.Suggestion
}

// HighSeverityCount returns the number of high-severity suggestions.
func (s *WatchState) HighSeverityCount() int {
	return len(s.highSeverity)
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Options configures a Watcher.
type Options struct {
	// Debounce waits this long after the last change before re-analyzing.
	Debounce time.Duration
	// ScoreDrop is the score decrease that raises a critical alert.
	ScoreDrop int
	// Request fields other than Content are passed through to the analyzer.
	Request pipeline.Request
	Logger  *slog.Logger
	// OnSnapshot, when set, is called after every successful analysis.
	OnSnapshot func(*WatchState, pipeline.Response)
}

// Watcher monitors one document and emits alerts when notable changes are
// detected.
type Watcher struct {
	path          string
	analyzer      Analyzer
	opts          Options
	logger        *slog.Logger
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
}

// New creates a Watcher for the document at path.
func New(path string, analyzer Analyzer, opts Options, alertFn func(Alert)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if !ingest.Supported(abs) {
		return nil, fmt.Errorf("%w: %s", ingest.ErrUnsupported, path)
	}
	if opts.ScoreDrop <= 0 {
		opts.ScoreDrop = 5
	}
	return &Watcher{
		path:          abs,
		analyzer:      analyzer,
		opts:          opts,
		logger:        logging.OrDiscard(opts.Logger),
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
	}, nil
}

// Prime takes the baseline snapshot later checks are compared against.
func (w *Watcher) Prime(ctx context.Context) (*WatchState, error) {
	initial, err := w.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	w.previous = initial
	return initial, nil
}

// Run primes the watcher if needed, then re-analyzes the document each time
// it is written, once changes have settled for the debounce interval. Blocks
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.previous == nil {
		if _, err := w.Prime(ctx); err != nil {
			return fmt.Errorf("initial snapshot: %w", err)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	// Watch the directory: editors often replace the file on save.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err, "path", w.path)

		case <-fire:
			fire = nil
			for _, a := range w.Check(ctx) {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying state changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.Snapshot(ctx)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Analysis failed",
			Message: fmt.Sprintf("Could not read %s: %v", filepath.Base(w.path), err),
			Time:    time.Now(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr, w.opts.ScoreDrop)
	}

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot reads the document and runs the full pipeline over it.
func (w *Watcher) Snapshot(ctx context.Context) (*WatchState, error) {
	doc, err := ingest.File(w.path)
	if err != nil {
		return nil, err
	}

	req := w.opts.Request
	req.Content = doc.Text
	resp := w.analyzer.GenerateSuggestions(ctx, req)

	state := newState(resp)
	if w.opts.OnSnapshot != nil {
		w.opts.OnSnapshot(state, resp)
	}
	return state, nil
}

func newState(resp pipeline.Response) *WatchState {
	ease := resp.Metrics.Readability.FleschReadingEase
	band, level := metrics.Band(ease)
	state := &WatchState{
		Timestamp:       time.Now(),
		Score:           resp.Score,
		WordCount:       resp.Metrics.Lexical.WordCount,
		Readability:     ease,
		Band:            band,
		BandLevel:       level,
		SuggestionCount: len(resp.Suggestions),
		Augmentation:    string(resp.Augmentation),
		highSeverity:    make(map[string]suggest.Suggestion),
	}
	for _, s := range resp.Suggestions {
		if s.Severity == suggest.SeverityHigh {
			state.highSeverity[string(s.Type)+":"+s.OriginalText] = s
		}
	}
	return state
}
