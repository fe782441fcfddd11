package suggest

var hedges = map[string]string{
	"maybe":    "",
	"perhaps":  "",
	"possibly": "",
	"kind of":  "",
	"sort of":  "",
	"i think":  "",
	"i guess":  "",
	"somewhat": "",
}

var contractions = map[string]string{
	"can't":     "cannot",
	"won't":     "will not",
	"don't":     "do not",
	"doesn't":   "does not",
	"didn't":    "did not",
	"isn't":     "is not",
	"aren't":    "are not",
	"wasn't":    "was not",
	"weren't":   "were not",
	"couldn't":  "could not",
	"shouldn't": "should not",
	"wouldn't":  "would not",
	"it's":      "it is",
	"i'm":       "I am",
	"we're":     "we are",
	"they're":   "they are",
	"you're":    "you are",
	"let's":     "let us",
}

// confidentHint is offered in place of a hedge; there is no one-word rewrite.
const confidentHint = "Consider using more confident language"

// Tone flags hedging language that undercuts the writer's confidence.
var Tone = Table([]Rule{hedgeRule()})

func hedgeRule() Rule {
	r := phraseRule("hedge", TypeTone, "hedging",
		`"{match}" hedges the statement and reduces confidence.`, 0.65, hedges)
	r.Correct = func(string) string { return confidentHint }
	return r
}
