package metrics

import "math"

// counts are the lexical inputs every readability formula draws on.
type counts struct {
	words     int
	sentences int
	syllables int
	letters   int
	complex   int // words of three or more syllables
}

func (c counts) avgSentenceLength() float64 {
	return float64(c.words) / float64(max(c.sentences, 1))
}

func (c counts) avgSyllables() float64 {
	return float64(c.syllables) / float64(max(c.words, 1))
}

func (c counts) avgLetters() float64 {
	return float64(c.letters) / float64(max(c.words, 1))
}

// FleschReadingEase returns 206.835 - 1.015*L - 84.6*S, clamped to [0, 100].
func FleschReadingEase(avgSentenceLen, avgSyllables float64) float64 {
	return clamp(206.835-1.015*avgSentenceLen-84.6*avgSyllables, 0, 100)
}

// FleschKincaidGrade returns 0.39*L + 11.8*S - 15.59, floored at 0.
func FleschKincaidGrade(avgSentenceLen, avgSyllables float64) float64 {
	return math.Max(0, 0.39*avgSentenceLen+11.8*avgSyllables-15.59)
}

// AutomatedReadabilityIndex returns 4.71*C + 0.5*L - 21.43, floored at 0.
func AutomatedReadabilityIndex(avgLetters, avgSentenceLen float64) float64 {
	return math.Max(0, 4.71*avgLetters+0.5*avgSentenceLen-21.43)
}

// ColemanLiau returns 0.0588*Lp - 0.296*Sp - 15.8 where Lp is letters per
// hundred words and Sp sentences per hundred words, floored at 0.
func ColemanLiau(avgLetters, avgSentenceLen float64) float64 {
	if avgSentenceLen == 0 {
		return 0
	}
	return math.Max(0, 0.0588*(avgLetters*100)-0.296*(100/avgSentenceLen)-15.8)
}

// GunningFog returns 0.4 * (L + 100 * complexWords/words), floored at 0.
func GunningFog(avgSentenceLen float64, complexWords, words int) float64 {
	if words == 0 {
		return 0
	}
	return math.Max(0, 0.4*(avgSentenceLen+100*float64(complexWords)/float64(words)))
}

// SMOG returns 1.0430 * sqrt(polysyllables * 30 / sentences) + 3.1291.
func SMOG(polysyllables, sentences int) float64 {
	if sentences == 0 {
		return 0
	}
	return math.Max(0, 1.0430*math.Sqrt(float64(polysyllables)*30/float64(sentences))+3.1291)
}

// OverallReadability averages Flesch Reading Ease with a grade-inverted
// term, 100 - 10*grade, and clamps the result to [0, 100].
func OverallReadability(flesch, grade float64) float64 {
	return clamp((flesch+(100-grade*10))/2, 0, 100)
}

// Band names the Flesch reading-ease band of ease. Level orders the bands,
// higher meaning easier to read.
func Band(ease float64) (name string, level int) {
	switch {
	case ease >= 90:
		return "very easy", 6
	case ease >= 80:
		return "easy", 5
	case ease >= 70:
		return "fairly easy", 4
	case ease >= 60:
		return "standard", 3
	case ease >= 50:
		return "fairly difficult", 2
	case ease >= 30:
		return "difficult", 1
	}
	return "very difficult", 0
}

func readability(c counts) Readability {
	if c.words == 0 {
		return Readability{}
	}
	l, s, ch := c.avgSentenceLength(), c.avgSyllables(), c.avgLetters()
	flesch := FleschReadingEase(l, s)
	grade := FleschKincaidGrade(l, s)
	return Readability{
		FleschReadingEase:         round2(flesch),
		FleschKincaidGrade:        round2(grade),
		AutomatedReadabilityIndex: round2(AutomatedReadabilityIndex(ch, l)),
		ColemanLiau:               round2(ColemanLiau(ch, l)),
		GunningFog:                round2(GunningFog(l, c.complex, c.words)),
		SMOG:                      round2(SMOG(c.complex, c.sentences)),
		Overall:                   round2(OverallReadability(flesch, grade)),
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
