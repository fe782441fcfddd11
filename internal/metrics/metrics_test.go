package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Empty(t *testing.T) {
	for _, text := range []string{"", "   \n\t"} {
		m := Compute(text, Options{})
		assert.Equal(t, Metrics{}, m, "expected zero metrics for %q", text)
		assert.Equal(t, 0, Score(m))
	}
}

func TestCompute_SimpleSentences(t *testing.T) {
	m := Compute("The cat sat. The dog ran.", Options{})

	assert.Equal(t, 6, m.Lexical.WordCount)
	assert.Equal(t, 2, m.Lexical.SentenceCount)
	assert.Equal(t, 1, m.Lexical.ParagraphCount)
	assert.Equal(t, 25, m.Lexical.CharCount)
	assert.Equal(t, 5, m.Lexical.UniqueWords)
	assert.Equal(t, 1, m.Lexical.ReadingTimeMinutes)
	assert.InDelta(t, 3.0, m.Lexical.AvgSentenceLength, 0.001)
	assert.InDelta(t, 3.0, m.Lexical.AvgWordLength, 0.001)

	assert.Equal(t, 100.0, m.Readability.FleschReadingEase)
	assert.Equal(t, 0.0, m.Readability.FleschKincaidGrade)
	assert.Equal(t, 0.0, m.Readability.AutomatedReadabilityIndex)
	assert.Equal(t, 100.0, m.Readability.Overall)
	assert.InDelta(t, 1.2, m.Readability.GunningFog, 0.001)
	assert.InDelta(t, 3.13, m.Readability.SMOG, 0.001)

	assert.InDelta(t, 83.33, m.VocabularyDiversity, 0.001)
	assert.Equal(t, 65, Score(m))
}

func TestCompute_Deterministic(t *testing.T) {
	text := "The cat sat. The dog ran."
	first := Compute(text, Options{})
	for i := 0; i < 20; i++ {
		require.Equal(t, first, Compute(text, Options{}))
	}
}

func TestCompute_ReadingTime(t *testing.T) {
	text := strings.Repeat("word ", 401)
	assert.Equal(t, 3, Compute(text, Options{}).Lexical.ReadingTimeMinutes)
	assert.Equal(t, 5, Compute(text, Options{WordsPerMinute: 100}).Lexical.ReadingTimeMinutes)
}

func TestCompute_Paragraphs(t *testing.T) {
	m := Compute("First paragraph here.\n\nSecond one.\n\n\nThird.", Options{})
	assert.Equal(t, 3, m.Lexical.ParagraphCount)
}

func TestCompute_Tone(t *testing.T) {
	m := Compute("Therefore we will definitely succeed.", Options{})
	assert.Equal(t, 100.0, m.Tone.Formal)
	assert.Equal(t, 100.0, m.Tone.Confident)
	assert.Equal(t, 0.0, m.Tone.Analytical)
	assert.Equal(t, float64(BaselineFriendly), m.Tone.Friendly)
	assert.Equal(t, float64(BaselineAssertive), m.Tone.Assertive)
}

func TestCompute_ToneScalesWithLength(t *testing.T) {
	text := "moreover " + strings.Repeat("plain ", 199)
	m := Compute(text, Options{})
	assert.InDelta(t, 50.0, m.Tone.Formal, 0.001)
}

func TestCompute_PassiveRatio(t *testing.T) {
	m := Compute("The ball was kicked. The cat ran.", Options{})
	assert.InDelta(t, 50.0, m.PassiveVoiceRatio, 0.001)
}

func TestCompute_PassiveRatioCountsEveryConstruction(t *testing.T) {
	m := Compute("The cake was baked and the bread was cooked and the pie was sliced.", Options{})
	assert.Equal(t, 1, m.Lexical.SentenceCount)
	assert.Equal(t, 300.0, m.PassiveVoiceRatio)
}

func TestCompute_SentenceVariety(t *testing.T) {
	m := Compute("One two three four. Five six.", Options{})
	assert.InDelta(t, 50.0, m.SentenceVariety, 0.001)
	assert.Equal(t, 0.0, Compute("Only one sentence here.", Options{}).SentenceVariety)
}

func TestCompute_Sentiment(t *testing.T) {
	m := Compute("good bad day today", Options{})
	assert.InDelta(t, 25.0, m.Sentiment.Positive, 0.001)
	assert.InDelta(t, 25.0, m.Sentiment.Negative, 0.001)
	assert.InDelta(t, 50.0, m.Sentiment.Neutral, 0.001)
}

func TestCompute_AdverbsAndPunctuation(t *testing.T) {
	m := Compute("He quickly and quietly left? Yes! Wow!", Options{})
	assert.Equal(t, 1, m.QuestionCount)
	assert.Equal(t, 2, m.ExclamationCount)
	assert.InDelta(t, 2.0/7*100, m.AdverbPercentage, 0.01)
	assert.Equal(t, 30.0, Engagement(m))
}

func TestReadabilityFormulas_Clamped(t *testing.T) {
	assert.Equal(t, 0.0, FleschReadingEase(100, 5))
	assert.Equal(t, 100.0, FleschReadingEase(1, 1))
	assert.Equal(t, 0.0, FleschKincaidGrade(1, 1))
	assert.Equal(t, 0.0, AutomatedReadabilityIndex(1, 1))
	assert.Equal(t, 0.0, ColemanLiau(3, 0))
	assert.Equal(t, 0.0, GunningFog(10, 0, 0))
	assert.Equal(t, 0.0, SMOG(3, 0))
	assert.Equal(t, 0.0, OverallReadability(0, 50))
	assert.Equal(t, 100.0, OverallReadability(100, 0))
}

func TestCompute_HardText(t *testing.T) {
	text := "Notwithstanding considerable institutional reluctance, the administration " +
		"systematically reorganized interdepartmental communication infrastructure " +
		"throughout the subsequent organizational transformation."
	m := Compute(text, Options{})
	assert.Less(t, m.Readability.FleschReadingEase, 20.0)
	assert.Greater(t, m.Readability.FleschKincaidGrade, 15.0)
	assert.Greater(t, m.Readability.GunningFog, 15.0)
	assert.Less(t, m.Readability.Overall, 20.0)
}

func TestScore_Bounds(t *testing.T) {
	m := Metrics{
		Readability:         Readability{Overall: 100},
		VocabularyDiversity: 100,
		QuestionCount:       50,
	}
	assert.Equal(t, 100, Score(m))
	assert.Equal(t, 0, Score(Metrics{}))
}

func TestBand(t *testing.T) {
	name, level := Band(95)
	assert.Equal(t, "very easy", name)
	assert.Equal(t, 6, level)

	name, level = Band(60)
	assert.Equal(t, "standard", name)
	assert.Equal(t, 3, level)

	_, level = Band(0)
	assert.Equal(t, 0, level)
}
