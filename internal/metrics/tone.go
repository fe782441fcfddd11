package metrics

// Friendly and assertive have no keyword lists; they report fixed baselines
// for any non-empty text.
const (
	BaselineFriendly  = 70
	BaselineAssertive = 65
)

var toneKeywords = map[string][]string{
	"formal":     {"therefore", "furthermore", "consequently", "moreover"},
	"confident":  {"will", "definitely", "certainly"},
	"optimistic": {"excellent", "great", "wonderful"},
	"analytical": {"analyze", "evaluate", "assess"},
}

var (
	positiveWords = wordSet("good", "great", "excellent", "wonderful", "happy", "positive",
		"success", "successful", "love", "best", "amazing", "benefit", "improve", "improved")
	negativeWords = wordSet("bad", "terrible", "poor", "sad", "negative", "failure",
		"fail", "hate", "worst", "problem", "difficult", "risk", "wrong", "awful")
)

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// toneScore scales keyword hits per hundred words into [0, 100].
func toneScore(hits, words int) float64 {
	per := max(float64(words)/100, 1)
	return clamp(float64(hits)/per*100, 0, 100)
}

// tone scores terms, the cleaned lower-cased tokens of a text.
func tone(terms []string, words int) ToneVector {
	if words == 0 {
		return ToneVector{}
	}
	hits := make(map[string]int)
	for category, keywords := range toneKeywords {
		set := wordSet(keywords...)
		for _, t := range terms {
			if set[t] {
				hits[category]++
			}
		}
	}
	return ToneVector{
		Formal:     round2(toneScore(hits["formal"], words)),
		Confident:  round2(toneScore(hits["confident"], words)),
		Optimistic: round2(toneScore(hits["optimistic"], words)),
		Analytical: round2(toneScore(hits["analytical"], words)),
		Friendly:   BaselineFriendly,
		Assertive:  BaselineAssertive,
	}
}

func sentiment(terms []string, words int) Sentiment {
	if words == 0 {
		return Sentiment{}
	}
	var pos, neg int
	for _, t := range terms {
		switch {
		case positiveWords[t]:
			pos++
		case negativeWords[t]:
			neg++
		}
	}
	p := float64(pos) / float64(words) * 100
	n := float64(neg) / float64(words) * 100
	return Sentiment{
		Positive: round2(p),
		Negative: round2(n),
		Neutral:  round2(clamp(100-p-n, 0, 100)),
	}
}
