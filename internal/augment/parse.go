package augment

import (
	"bufio"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/blackwell-systems/writewatch/internal/suggest"
)

// defaultConfidence applies when a record carries no usable confidence.
const defaultConfidence = 0.8

// ErrNoSuggestions means a reply held no locatable suggestion records.
var ErrNoSuggestions = errors.New("no suggestion records found in reply")

// record accepts the field spellings models commonly use.
type record struct {
	Type          string `json:"type"`
	ErrorType     string `json:"error_type"`
	Category      string `json:"category"`
	OriginalText  string `json:"original_text"`
	Original      string `json:"original"`
	Issue         string `json:"issue"`
	SuggestedText string `json:"suggested_text"`
	Correction    string `json:"correction"`
	Suggestion    string `json:"suggestion"`
	Explanation   string `json:"explanation"`
	Confidence    any    `json:"confidence"`
}

type envelope struct {
	Suggestions []record `json:"suggestions"`
}

// Parse extracts suggestions from a model reply. It tries, in order, a JSON
// object with a "suggestions" array, a bare JSON array, and the line format
//
//	- Type: grammar
//	- Issue: she have
//	- Suggestion: she has
//	- Explanation: ...
//
// Markdown code fences around JSON are ignored.
func Parse(reply string) ([]suggest.Suggestion, error) {
	text := stripFences(reply)

	if recs, ok := parseObject(text); ok {
		return convert(recs)
	}
	if recs, ok := parseArray(text); ok {
		return convert(recs)
	}
	if recs := parseLines(text); len(recs) > 0 {
		return convert(recs)
	}
	return nil, ErrNoSuggestions
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
		s = s[nl+1:]
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

func parseObject(text string) ([]record, bool) {
	start, end := strings.IndexByte(text, '{'), strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, false
	}
	if arr := strings.IndexByte(text, '['); arr >= 0 && arr < start {
		return nil, false
	}
	var env envelope
	if err := json.Unmarshal([]byte(text[start:end+1]), &env); err != nil || env.Suggestions == nil {
		return nil, false
	}
	return env.Suggestions, true
}

func parseArray(text string) ([]record, bool) {
	start, end := strings.IndexByte(text, '['), strings.LastIndexByte(text, ']')
	if start < 0 || end <= start {
		return nil, false
	}
	var recs []record
	if err := json.Unmarshal([]byte(text[start:end+1]), &recs); err != nil {
		return nil, false
	}
	return recs, true
}

func parseLines(text string) []record {
	var recs []record
	var cur *record
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		line = strings.TrimSpace(strings.TrimLeft(line, "-*•"))
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "type":
			recs = append(recs, record{Type: value})
			cur = &recs[len(recs)-1]
		case "issue", "original", "original text":
			if cur != nil {
				cur.Issue = value
			}
		case "suggestion", "correction", "suggested text":
			if cur != nil {
				cur.Suggestion = value
			}
		case "explanation":
			if cur != nil {
				cur.Explanation = value
			}
		case "category":
			if cur != nil {
				cur.Category = value
			}
		case "confidence":
			if cur != nil {
				cur.Confidence = value
			}
		}
	}
	return recs
}

func convert(recs []record) ([]suggest.Suggestion, error) {
	out := make([]suggest.Suggestion, 0, len(recs))
	for _, r := range recs {
		original := firstNonEmpty(r.OriginalText, r.Original, r.Issue)
		suggested := firstNonEmpty(r.SuggestedText, r.Correction, r.Suggestion)
		if original == "" && suggested == "" {
			continue
		}
		typ := suggest.ParseType(firstNonEmpty(r.Type, r.ErrorType))
		category := r.Category
		if category == "" {
			category = string(typ)
		}
		out = append(out, suggest.Suggestion{
			Type:          typ,
			Category:      category,
			OriginalText:  original,
			SuggestedText: suggested,
			Explanation:   r.Explanation,
			Confidence:    confidence(r.Confidence),
			Severity:      suggest.SeverityFor(typ),
			Source:        suggest.SourceAugment,
		})
	}
	if len(out) == 0 && len(recs) > 0 {
		return nil, ErrNoSuggestions
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// confidence normalizes a number, numeric string or percentage into [0, 1].
// Values above 1 are read as percentages.
func confidence(v any) float64 {
	var c float64
	switch x := v.(type) {
	case float64:
		c = x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(x), "%"), 64)
		if err != nil {
			return defaultConfidence
		}
		c = f
	default:
		return defaultConfidence
	}
	if c > 1 {
		c /= 100
	}
	return max(0, min(1, c))
}
