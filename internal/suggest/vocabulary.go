package suggest

var vocabularyUpgrades = map[string]string{
	"very good":      "excellent",
	"very bad":       "terrible",
	"very big":       "enormous",
	"very small":     "tiny",
	"very happy":     "delighted",
	"very tired":     "exhausted",
	"very important": "crucial",
	"very large":     "huge",
	"very quick":     "rapid",
	"a lot of":       "many",
	"thing":          "item",
	"things":         "items",
}

// Vocabulary suggests precise replacements for vague phrases.
var Vocabulary = Table([]Rule{
	phraseRule("vocabulary-upgrade", TypeVocabulary, "word_choice",
		`"{suggested}" is more precise than "{match}".`, 0.8, vocabularyUpgrades),
})
