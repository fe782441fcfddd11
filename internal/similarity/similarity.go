// Package similarity estimates how closely a text matches a reference text
// or a small built-in reference corpus. Estimates never fail: an
// unavailable embedding service degrades to local TF-IDF.
package similarity

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/writewatch/internal/logging"
	"github.com/blackwell-systems/writewatch/internal/textstat"
)

// Method names how a score was computed.
type Method string

const (
	MethodEmbedding Method = "embedding"
	MethodTFIDF     Method = "tfidf"
	MethodCorpus    Method = "corpus"
)

// Confidence attached to each method.
const (
	embeddingConfidence = 0.8
	tfidfConfidence     = 0.6
	corpusConfidence    = 0.5
)

// Defaults for Options.
const (
	DefaultFloor               = 10
	DefaultParaphraseThreshold = 30
	DefaultEmbedTimeout        = 10 * time.Second
)

// Risk buckets a similarity score.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// RiskFor maps a score onto a risk level: above 80 is high, above 50 medium.
func RiskFor(score float64) Risk {
	switch {
	case score > 80:
		return RiskHigh
	case score > 50:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Match is one piece of evidence behind a score.
type Match struct {
	SourceLabel string        `json:"source_label" yaml:"source_label"`
	Similarity  float64       `json:"similarity" yaml:"similarity"`
	MatchedSpan textstat.Span `json:"matched_span" yaml:"matched_span"`
	MatchedText string        `json:"matched_text" yaml:"matched_text"`
	Confidence  float64       `json:"confidence" yaml:"confidence"`
}

// Result is the outcome of one estimate.
type Result struct {
	Score              float64 `json:"score" yaml:"score"`
	Method             Method  `json:"method" yaml:"method"`
	Confidence         float64 `json:"confidence" yaml:"confidence"`
	RiskLevel          Risk    `json:"risk_level" yaml:"risk_level"`
	ParaphraseDetected bool    `json:"paraphrase_detected" yaml:"paraphrase_detected"`
	Matches            []Match `json:"matches" yaml:"matches"`
}

// Embedder turns texts into vectors, one per input, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Options configures an Estimator.
type Options struct {
	// Embedder is optional. When nil only TF-IDF is used.
	Embedder Embedder
	// EmbedTimeout bounds a single embedding call.
	EmbedTimeout time.Duration
	// Floor is the minimum similarity, in percent, for a corpus match.
	Floor float64
	// ParaphraseThreshold is the sentence similarity above which a sentence
	// pair is reported as a paraphrase.
	ParaphraseThreshold float64
	Corpus              *Corpus
	Logger              *slog.Logger
}

// Estimator computes similarity results. It is safe for concurrent use.
type Estimator struct {
	embedder     Embedder
	embedTimeout time.Duration
	floor        float64
	paraphrase   float64
	corpus       *Corpus
	logger       *slog.Logger
}

// New creates an Estimator, filling unset options with defaults.
func New(opts Options) *Estimator {
	e := &Estimator{
		embedder:     opts.Embedder,
		embedTimeout: opts.EmbedTimeout,
		floor:        opts.Floor,
		paraphrase:   opts.ParaphraseThreshold,
		corpus:       opts.Corpus,
		logger:       opts.Logger,
	}
	if e.embedTimeout <= 0 {
		e.embedTimeout = DefaultEmbedTimeout
	}
	if e.floor <= 0 {
		e.floor = DefaultFloor
	}
	if e.paraphrase <= 0 {
		e.paraphrase = DefaultParaphraseThreshold
	}
	if e.corpus == nil {
		e.corpus = DefaultCorpus()
	}
	e.logger = logging.OrDiscard(e.logger)
	return e
}

// Estimate compares content with reference, or with the built-in corpus when
// reference is empty.
func (e *Estimator) Estimate(ctx context.Context, content, reference string) Result {
	var r Result
	if strings.TrimSpace(reference) == "" {
		r = e.againstCorpus(content)
	} else {
		r = e.againstReference(ctx, content, reference)
	}
	r.Score = round2(r.Score)
	r.RiskLevel = RiskFor(r.Score)
	sortMatches(r.Matches)
	if r.Matches == nil {
		r.Matches = []Match{}
	}
	return r
}

func (e *Estimator) againstReference(ctx context.Context, content, reference string) Result {
	r := Result{Method: MethodTFIDF, Confidence: tfidfConfidence}
	if strings.TrimSpace(content) == "" {
		return r
	}

	if score, ok := e.embeddingScore(ctx, content, reference); ok {
		r.Score, r.Method, r.Confidence = score, MethodEmbedding, embeddingConfidence
	} else {
		r.Score = tfidfSimilarity(tokenize(content), tokenize(reference))
	}

	r.Matches = append(r.Matches, Match{
		SourceLabel: "reference",
		Similarity:  round2(r.Score),
		MatchedSpan: textstat.Span{Start: 0, End: len(content)},
		MatchedText: textstat.Truncate(strings.TrimSpace(content), 80),
		Confidence:  r.Confidence,
	})

	paraphrases := e.paraphrases(content, reference)
	r.ParaphraseDetected = len(paraphrases) > 0
	r.Matches = append(r.Matches, paraphrases...)
	return r
}

// embeddingScore asks the embedder for both vectors. Any failure is logged
// and reported as !ok so the caller falls back to TF-IDF.
func (e *Estimator) embeddingScore(ctx context.Context, a, b string) (float64, bool) {
	if e.embedder == nil {
		return 0, false
	}
	ctx, cancel := context.WithTimeout(ctx, e.embedTimeout)
	defer cancel()

	vecs, err := e.embedder.Embed(ctx, []string{a, b})
	if err != nil {
		e.logger.Warn("embedding unavailable, using tf-idf", "error", err, "reason", "remote_unavailable")
		return 0, false
	}
	if len(vecs) != 2 {
		e.logger.Warn("embedding response malformed, using tf-idf", "vectors", len(vecs), "reason", "parse_failure")
		return 0, false
	}
	cos := cosine32(vecs[0], vecs[1])
	if math.IsNaN(cos) {
		e.logger.Warn("embedding vectors unusable, using tf-idf", "reason", "parse_failure")
		return 0, false
	}
	return scale(cos), true
}

// paraphrases pairs each content sentence with its closest reference
// sentence and reports pairs above the paraphrase threshold.
func (e *Estimator) paraphrases(content, reference string) []Match {
	refSentences := textstat.Sentences(reference)
	refTerms := make([][]string, len(refSentences))
	for i, s := range refSentences {
		refTerms[i] = tokenize(reference[s.Start:s.End])
	}

	var out []Match
	for _, s := range textstat.Sentences(content) {
		terms := tokenize(content[s.Start:s.End])
		best := 0.0
		for _, rt := range refTerms {
			best = math.Max(best, tfidfSimilarity(terms, rt))
		}
		if best > e.paraphrase {
			out = append(out, Match{
				SourceLabel: "paraphrase",
				Similarity:  round2(best),
				MatchedSpan: s,
				MatchedText: content[s.Start:s.End],
				Confidence:  tfidfConfidence,
			})
		}
	}
	return out
}

func (e *Estimator) againstCorpus(content string) Result {
	r := Result{Method: MethodCorpus, Confidence: corpusConfidence}
	if strings.TrimSpace(content) == "" {
		return r
	}

	for _, p := range e.corpus.phrases {
		loc := p.re.FindStringIndex(content)
		if loc == nil {
			continue
		}
		sim := float64(len(p.Text)) / float64(len(content)) * 100
		if sim <= e.floor {
			continue
		}
		r.Matches = append(r.Matches, Match{
			SourceLabel: p.Label,
			Similarity:  round2(math.Min(100, sim)),
			MatchedSpan: textstat.Span{Start: loc[0], End: loc[1]},
			MatchedText: content[loc[0]:loc[1]],
			Confidence:  phraseConfidence(p.Label),
		})
	}

	terms := tokenize(content)
	for _, d := range e.corpus.docs {
		sim := tfidfSimilarity(terms, d.terms)
		if sim <= e.floor {
			continue
		}
		r.Matches = append(r.Matches, Match{
			SourceLabel: d.label,
			Similarity:  round2(sim),
			MatchedSpan: textstat.Span{Start: 0, End: len(content)},
			MatchedText: textstat.Truncate(strings.TrimSpace(content), 80),
			Confidence:  tfidfConfidence,
		})
	}

	for _, m := range r.Matches {
		if m.Similarity > r.Score {
			r.Score, r.Confidence = m.Similarity, m.Confidence
		}
	}
	return r
}

func sortMatches(ms []Match) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Similarity != ms[j].Similarity {
			return ms[i].Similarity > ms[j].Similarity
		}
		return ms[i].MatchedSpan.Start < ms[j].MatchedSpan.Start
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
