package augment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/writewatch/internal/suggest"
)

func TestParse_Object(t *testing.T) {
	got, err := Parse(validReply)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "She has", got[0].SuggestedText)
	assert.Equal(t, 0.9, got[0].Confidence)
	assert.Equal(t, suggest.SeverityHigh, got[0].Severity)
}

func TestParse_ObjectWithProse(t *testing.T) {
	got, err := Parse("Sure! Here you go:\n" + validReply + "\nLet me know if you need more.")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestParse_FencedJSON(t *testing.T) {
	got, err := Parse("```json\n" + validReply + "\n```")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestParse_BareArrayWithAlternateFields(t *testing.T) {
	reply := `Here are the errors:
[
  {"error_type": "spelling", "original": "recieve", "correction": "receive", "explanation": "i before e", "position": {"start": 0, "end": 7}}
]`
	got, err := Parse(reply)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, suggest.TypeSpelling, got[0].Type)
	assert.Equal(t, "recieve", got[0].OriginalText)
	assert.Equal(t, "receive", got[0].SuggestedText)
	assert.Equal(t, defaultConfidence, got[0].Confidence)
	assert.Equal(t, "spelling", got[0].Category)
}

func TestParse_LineFormat(t *testing.T) {
	reply := `Suggestions:
- Type: tense
- Issue: I goes
- Suggestion: I go
- Explanation: verb form

- Type: engagement
- Issue: The end
- Suggestion: A strong close
- Explanation: more vivid
- Confidence: 70`
	got, err := Parse(reply)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, suggest.TypeGrammar, got[0].Type)
	assert.Equal(t, "I goes", got[0].OriginalText)
	assert.Equal(t, "I go", got[0].SuggestedText)
	assert.Equal(t, suggest.TypeStyle, got[1].Type)
	assert.InDelta(t, 0.7, got[1].Confidence, 1e-9)
}

func TestParse_PercentConfidence(t *testing.T) {
	got, err := Parse(`[{"type":"style","original_text":"a","suggested_text":"b","confidence":85},
		{"type":"style","original_text":"c","suggested_text":"d","confidence":"90%"},
		{"type":"style","original_text":"e","suggested_text":"f","confidence":-3},
		{"type":"style","original_text":"g","suggested_text":"h","confidence":"high"}]`)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.InDelta(t, 0.85, got[0].Confidence, 1e-9)
	assert.InDelta(t, 0.9, got[1].Confidence, 1e-9)
	assert.Equal(t, 0.0, got[2].Confidence)
	assert.Equal(t, defaultConfidence, got[3].Confidence)
}

func TestParse_EmptySuggestionList(t *testing.T) {
	got, err := Parse(`{"suggestions": []}`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParse_Failures(t *testing.T) {
	for _, reply := range []string{
		"",
		"no json here",
		`{"unrelated": true}`,
		`{"suggestions": [`,
		`[{"type": "grammar"}]`,
	} {
		_, err := Parse(reply)
		assert.ErrorIs(t, err, ErrNoSuggestions, "reply %q", reply)
	}
}
