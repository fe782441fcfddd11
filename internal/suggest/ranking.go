package suggest

import (
	"sort"
	"strconv"
)

// DefaultMaxSuggestions caps the number of suggestions returned.
const DefaultMaxSuggestions = 20

// DefaultDedupOverlap is the fraction of the shorter span two same-type
// suggestions must share to count as duplicates.
const DefaultDedupOverlap = 0.5

// RankOptions controls Aggregate.
type RankOptions struct {
	// Max is the global cap. Zero means DefaultMaxSuggestions.
	Max int
	// PerTypeCap limits suggestions of any single type. Zero disables it.
	PerTypeCap int
	// Overlap is the dedup threshold. Zero means DefaultDedupOverlap.
	Overlap float64
}

func (o RankOptions) withDefaults() RankOptions {
	if o.Max <= 0 {
		o.Max = DefaultMaxSuggestions
	}
	if o.Overlap <= 0 {
		o.Overlap = DefaultDedupOverlap
	}
	return o
}

type candidate struct {
	Suggestion
	order int
}

// Aggregate turns raw candidates into the final suggestion list for text.
//
// Candidates are expected in discovery order: rule-table output first, then
// adapter output. Adapter suggestions get their positions resolved against
// text. Same-type suggestions whose spans overlap beyond the threshold are
// collapsed onto the highest-confidence one, the list is cut to the most
// confident Max entries, re-sorted by position and numbered s-1, s-2, ...
func Aggregate(text string, candidates []Suggestion, opts RankOptions) []Suggestion {
	opts = opts.withDefaults()
	if len(candidates) == 0 {
		return []Suggestion{}
	}

	pool := make([]candidate, 0, len(candidates))
	for i, s := range candidates {
		if s.Source == SourceAugment {
			s.Position, _ = ResolvePosition(text, s.OriginalText)
		}
		if !s.Type.Valid() {
			s.Type = ParseType(string(s.Type))
		}
		s.Position = clampPosition(s.Position, len(text))
		s.Confidence = clampConfidence(s.Confidence)
		s.Severity = SeverityFor(s.Type)
		pool = append(pool, candidate{Suggestion: s, order: i})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Confidence != pool[j].Confidence {
			return pool[i].Confidence > pool[j].Confidence
		}
		return pool[i].order < pool[j].order
	})

	var kept []candidate
	perType := make(map[Type]int)
	for _, c := range pool {
		if len(kept) == opts.Max {
			break
		}
		if opts.PerTypeCap > 0 && perType[c.Type] >= opts.PerTypeCap {
			continue
		}
		if duplicates(kept, c, opts.Overlap) {
			continue
		}
		kept = append(kept, c)
		perType[c.Type]++
	}

	sort.Slice(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Position.Start != b.Position.Start {
			return a.Position.Start < b.Position.Start
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Position.End != b.Position.End {
			return a.Position.End < b.Position.End
		}
		return a.order < b.order
	})

	out := make([]Suggestion, len(kept))
	for i, c := range kept {
		c.ID = "s-" + strconv.Itoa(i+1)
		out[i] = c.Suggestion
	}
	return out
}

func duplicates(kept []candidate, c candidate, threshold float64) bool {
	for _, k := range kept {
		if k.Type == c.Type && Overlaps(k.Position, c.Position, threshold) {
			return true
		}
	}
	return false
}

// Overlaps reports whether a and b share more than threshold of the
// shorter span. An empty span overlaps any span starting at the same offset.
func Overlaps(a, b Position, threshold float64) bool {
	shorter := min(a.Len(), b.Len())
	if shorter <= 0 {
		return a.Start == b.Start
	}
	shared := min(a.End, b.End) - max(a.Start, b.Start)
	if shared <= 0 {
		return false
	}
	return float64(shared) > threshold*float64(shorter)
}
