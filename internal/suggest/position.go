package suggest

import "strings"

// fallbackSpan is the width of the span assigned to a snippet that cannot
// be located in the text.
const fallbackSpan = 50

// ResolvePosition finds snippet in text with a case-sensitive
// first-occurrence search. When the snippet is empty or absent it returns
// {0, min(50, len(text))} and false.
func ResolvePosition(text, snippet string) (Position, bool) {
	if snippet != "" {
		if i := strings.Index(text, snippet); i >= 0 {
			return Position{Start: i, End: i + len(snippet)}, true
		}
	}
	return Position{Start: 0, End: min(fallbackSpan, len(text))}, false
}

// clampPosition forces p inside [0, n] with Start <= End.
func clampPosition(p Position, n int) Position {
	p.Start = max(0, min(p.Start, n))
	p.End = max(p.Start, min(p.End, n))
	return p
}

func clampConfidence(c float64) float64 {
	switch {
	case c != c: // NaN
		return 0
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
