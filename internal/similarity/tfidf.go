package similarity

import (
	"math"

	"github.com/blackwell-systems/writewatch/internal/textstat"
)

var stopwords = func() map[string]bool {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
		"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
		"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing",
		"down", "during", "each", "few", "for", "from", "further", "had", "has", "have",
		"having", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
		"i", "if", "in", "into", "is", "it", "its", "itself", "just", "me", "more", "most",
		"my", "myself", "no", "nor", "not", "now", "of", "off", "on", "once", "only", "or",
		"other", "our", "ours", "ourselves", "out", "over", "own", "same", "she", "should",
		"so", "some", "such", "than", "that", "the", "their", "theirs", "them", "themselves",
		"then", "there", "these", "they", "this", "those", "through", "to", "too", "under",
		"until", "up", "very", "was", "we", "were", "what", "when", "where", "which", "while",
		"who", "whom", "why", "will", "with", "would", "you", "your", "yours", "yourself",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()

// tokenize returns the terms TF-IDF weighs: cleaned words of two or more
// characters, minus English stopwords. When every term is a stopword the
// stopwords are kept so that short texts still compare.
func tokenize(text string) []string {
	var all, content []string
	for _, t := range textstat.Terms(text) {
		if len([]rune(t)) < 2 {
			continue
		}
		all = append(all, t)
		if !stopwords[t] {
			content = append(content, t)
		}
	}
	if len(content) == 0 {
		return all
	}
	return content
}

type vector map[string]float64

// vectorize builds L2-normalized TF-IDF vectors over docs using smoothed
// inverse document frequency: ln((1+n)/(1+df)) + 1.
func vectorize(docs ...[]string) []vector {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, t := range doc {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}
	n := float64(len(docs))
	out := make([]vector, len(docs))
	for i, doc := range docs {
		v := make(vector, len(doc))
		for _, t := range doc {
			v[t]++
		}
		var norm float64
		for t, tf := range v {
			w := tf * (math.Log((1+n)/(1+float64(df[t]))) + 1)
			v[t] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for t := range v {
				v[t] /= norm
			}
		}
		out[i] = v
	}
	return out
}

func dot(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for t, w := range a {
		sum += w * b[t]
	}
	return sum
}

// tfidfSimilarity compares two token lists as a two-document corpus and
// returns cosine similarity scaled to [0, 100].
func tfidfSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	v := vectorize(a, b)
	return scale(dot(v[0], v[1]))
}

// scale maps a cosine in [-1, 1] onto [0, 100]; anti-correlation is 0.
func scale(cos float64) float64 {
	if math.IsNaN(cos) || cos <= 0 {
		return 0
	}
	return math.Min(100, cos*100)
}

func cosine32(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.NaN()
	}
	var dotp, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dotp += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return math.NaN()
	}
	return dotp / (math.Sqrt(na) * math.Sqrt(nb))
}
