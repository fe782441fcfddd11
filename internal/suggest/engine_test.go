package suggest

import (
	"reflect"
	"strings"
	"testing"
)

// --- Engine.Run ---

func TestEngineRun_EmptyText(t *testing.T) {
	engine := NewEngine(Options{})
	for _, text := range []string{"", "   ", "\n\t\n"} {
		if got := engine.Run(text); len(got) != 0 {
			t.Errorf("expected no suggestions for %q, got %d", text, len(got))
		}
	}
}

func TestEngineRun_CollectsAllAnalyzers(t *testing.T) {
	engine := NewEngine(Options{})
	text := "She have a very good idea. Maybe the plan was approved."
	got := engine.Run(text)
	seen := make(map[Type]bool)
	for _, s := range got {
		seen[s.Type] = true
	}
	for _, want := range []Type{TypeGrammar, TypeVocabulary, TypeTone, TypeStyle} {
		if !seen[want] {
			t.Errorf("expected a %s suggestion", want)
		}
	}
}

func TestEngineRun_Deterministic(t *testing.T) {
	engine := NewEngine(Options{})
	text := "Its going very well. We is happy. We is here. We is there, and it was finished."
	first := engine.Run(text)
	for i := 0; i < 10; i++ {
		if again := engine.Run(text); !reflect.DeepEqual(first, again) {
			t.Fatal("engine output changed between runs")
		}
	}
}

func TestEngineRun_FormalToneAddsContractions(t *testing.T) {
	text := "We don't agree."
	casual := NewEngine(Options{Tone: "friendly"}).Run(text)
	formal := NewEngine(Options{Tone: "Formal"}).Run(text)
	if len(findByType(casual, TypeTone)) != 0 {
		t.Error("expected no tone suggestions without formal tone")
	}
	if len(findByType(formal, TypeTone)) != 1 {
		t.Errorf("expected 1 contraction suggestion, got %d", len(findByType(formal, TypeTone)))
	}
}

func TestEngineRun_CustomAnalyzer(t *testing.T) {
	custom := func(text string) []Suggestion {
		return []Suggestion{{Type: TypeStyle, Category: "custom", OriginalText: text}}
	}
	engine := NewEngineWith(custom, custom)
	got := engine.Run("hello")
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if got[0].Category != "custom" {
		t.Errorf("expected custom category, got %s", got[0].Category)
	}
}

func TestEngineRun_PositionsInBounds(t *testing.T) {
	engine := NewEngine(Options{Tone: "formal"})
	texts := []string{
		"She have a car.",
		"Ünïcödé text, very good , really nice!! Dr Who?",
		strings.Repeat("The report was finished by the team and it was reviewed, ", 5),
		"i think teh the plan is kind of very bad...",
	}
	for _, text := range texts {
		for _, s := range engine.Run(text) {
			if s.Position.Start < 0 || s.Position.Start > s.Position.End || s.Position.End > len(text) {
				t.Errorf("%q: position out of bounds: %+v", text, s.Position)
			}
			if s.Confidence < 0 || s.Confidence > 1 {
				t.Errorf("%q: confidence out of range: %v", text, s.Confidence)
			}
		}
	}
}
