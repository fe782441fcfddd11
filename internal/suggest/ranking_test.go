package suggest

import (
	"fmt"
	"testing"
)

func sugg(typ Type, start, end int, conf float64, cat string) Suggestion {
	return Suggestion{Type: typ, Category: cat, Position: Position{Start: start, End: end}, Confidence: conf, Source: SourceRules}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate("text", nil, RankOptions{})
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestAggregate_DedupKeepsHigherConfidence(t *testing.T) {
	text := "0123456789abcdef"
	got := Aggregate(text, []Suggestion{
		sugg(TypeGrammar, 2, 10, 0.5, "low"),
		sugg(TypeGrammar, 0, 10, 0.9, "high"),
	}, RankOptions{})
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion after dedup, got %d", len(got))
	}
	if got[0].Category != "high" {
		t.Errorf("expected the higher-confidence suggestion, got %s", got[0].Category)
	}
}

func TestAggregate_DedupTieKeepsEarlier(t *testing.T) {
	text := "0123456789"
	got := Aggregate(text, []Suggestion{
		sugg(TypeStyle, 0, 6, 0.7, "first"),
		sugg(TypeStyle, 1, 6, 0.7, "second"),
	}, RankOptions{})
	if len(got) != 1 || got[0].Category != "first" {
		t.Errorf("expected the earlier suggestion to win the tie, got %+v", got)
	}
}

func TestAggregate_SmallOverlapKept(t *testing.T) {
	text := "0123456789"
	got := Aggregate(text, []Suggestion{
		sugg(TypeStyle, 0, 4, 0.7, "a"),
		sugg(TypeStyle, 3, 7, 0.7, "b"),
	}, RankOptions{})
	if len(got) != 2 {
		t.Errorf("expected 25%% overlap to survive dedup, got %d", len(got))
	}
}

func TestAggregate_DifferentTypesNotDeduplicated(t *testing.T) {
	text := "very good"
	got := Aggregate(text, []Suggestion{
		sugg(TypeStyle, 0, 9, 0.55, "intensifier"),
		sugg(TypeVocabulary, 0, 9, 0.8, "word_choice"),
	}, RankOptions{})
	if len(got) != 2 {
		t.Fatalf("expected both suggestions, got %d", len(got))
	}
	if got[0].Type != TypeStyle {
		t.Errorf("expected type order at equal start, got %s first", got[0].Type)
	}
}

func TestAggregate_SortedByPositionWithIDs(t *testing.T) {
	text := "abcdefghijklmnopqrstuvwxyz"
	got := Aggregate(text, []Suggestion{
		sugg(TypeTone, 20, 22, 0.6, ""),
		sugg(TypeGrammar, 5, 7, 0.9, ""),
		sugg(TypeSpelling, 0, 2, 0.95, ""),
	}, RankOptions{})
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}
	for i, s := range got {
		if want := fmt.Sprintf("s-%d", i+1); s.ID != want {
			t.Errorf("expected id %s, got %s", want, s.ID)
		}
		if i > 0 && got[i-1].Position.Start > s.Position.Start {
			t.Errorf("not sorted by start at index %d", i)
		}
	}
}

func TestAggregate_TruncatesLowestConfidence(t *testing.T) {
	text := make([]byte, 200)
	for i := range text {
		text[i] = 'x'
	}
	var in []Suggestion
	for i := 0; i < 25; i++ {
		in = append(in, sugg(TypeStyle, i*5, i*5+3, float64(i+1)/100, ""))
	}
	got := Aggregate(string(text), in, RankOptions{})
	if len(got) != DefaultMaxSuggestions {
		t.Fatalf("expected %d suggestions, got %d", DefaultMaxSuggestions, len(got))
	}
	for _, s := range got {
		if s.Confidence < 0.06 {
			t.Errorf("low-confidence suggestion %v survived truncation", s.Confidence)
		}
	}
	if got[0].Position.Start != 25 {
		t.Errorf("expected first surviving start 25, got %d", got[0].Position.Start)
	}
}

func TestAggregate_PerTypeCap(t *testing.T) {
	text := "0123456789012345678901234567890"
	in := []Suggestion{
		sugg(TypeStyle, 0, 2, 0.9, ""),
		sugg(TypeStyle, 5, 7, 0.8, ""),
		sugg(TypeStyle, 10, 12, 0.7, ""),
		sugg(TypeGrammar, 20, 22, 0.6, ""),
	}
	got := Aggregate(text, in, RankOptions{PerTypeCap: 2})
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions with a per-type cap of 2, got %d", len(got))
	}
	if len(findByType(got, TypeStyle)) != 2 {
		t.Errorf("expected 2 style suggestions, got %d", len(findByType(got, TypeStyle)))
	}
}

func TestAggregate_ResolvesAdapterPositions(t *testing.T) {
	text := "Hello world."
	got := Aggregate(text, []Suggestion{
		{Type: TypeStyle, OriginalText: "world", Confidence: 0.8, Source: SourceAugment},
		{Type: TypeGrammar, OriginalText: "missing", Confidence: 0.8, Source: SourceAugment},
	}, RankOptions{})
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if got[0].Position != (Position{Start: 0, End: len(text)}) {
		t.Errorf("expected fallback position, got %+v", got[0].Position)
	}
	if got[1].Position != (Position{Start: 6, End: 11}) {
		t.Errorf("expected resolved position, got %+v", got[1].Position)
	}
	if got[0].Confidence != 0.8 {
		t.Errorf("fallback must not change confidence, got %v", got[0].Confidence)
	}
}

func TestAggregate_ClampsAndDerivesSeverity(t *testing.T) {
	text := "abc"
	got := Aggregate(text, []Suggestion{
		{Type: "word_choice", Position: Position{Start: -4, End: 99}, Confidence: 7, Severity: SeverityHigh},
	}, RankOptions{})
	s := got[0]
	if s.Position != (Position{Start: 0, End: 3}) {
		t.Errorf("expected clamped position, got %+v", s.Position)
	}
	if s.Confidence != 1 {
		t.Errorf("expected clamped confidence, got %v", s.Confidence)
	}
	if s.Type != TypeVocabulary || s.Severity != SeverityLow {
		t.Errorf("expected vocabulary/low, got %s/%s", s.Type, s.Severity)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		a, b Position
		want bool
	}{
		{Position{0, 10}, Position{0, 10}, true},
		{Position{0, 10}, Position{4, 10}, true},
		{Position{0, 10}, Position{8, 12}, false},
		{Position{0, 4}, Position{4, 8}, false},
		{Position{3, 3}, Position{3, 9}, true},
		{Position{3, 3}, Position{4, 9}, false},
	}
	for _, c := range cases {
		if got := Overlaps(c.a, c.b, DefaultDedupOverlap); got != c.want {
			t.Errorf("Overlaps(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestResolvePosition(t *testing.T) {
	text := "Case matters. case"
	if p, ok := ResolvePosition(text, "case"); !ok || p.Start != 14 {
		t.Errorf("expected case-sensitive match at 14, got %+v %v", p, ok)
	}
	if p, ok := ResolvePosition(text, ""); ok || p.End != len(text) {
		t.Errorf("expected fallback for empty snippet, got %+v %v", p, ok)
	}
	long := make([]byte, 80)
	if p, _ := ResolvePosition(string(long), "zzz"); p.End != 50 {
		t.Errorf("expected fallback span of 50, got %+v", p)
	}
}
