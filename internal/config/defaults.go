// Package config provides configuration loading and defaults for writewatch.
package config

import "time"

// DefaultConfigDir is the default location for writewatch configuration.
const DefaultConfigDir = "~/.config/writewatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "writewatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultUserID owns documents when no user is configured.
const DefaultUserID = "default"

// EnvPrefix prefixes every environment override, e.g. WRITEWATCH_LOG_LEVEL.
const EnvPrefix = "WRITEWATCH"

// DefaultSuggestions holds the default ranking limits.
var DefaultSuggestions = Suggestions{
	Max:               20,
	PerTypeCap:        0,
	LongSentenceWords: 25,
	DedupOverlap:      0.5,
}

// DefaultAugment leaves augmentation off until a provider is chosen.
var DefaultAugment = Augment{
	Provider:      "",
	Timeout:       20 * time.Second,
	MaxInputChars: 2000,
}

// DefaultEmbedding holds the default embedding settings.
var DefaultEmbedding = Embedding{
	Enabled: false,
	Model:   "text-embedding-3-small",
	Timeout: 10 * time.Second,
}

// DefaultSimilarity holds the default similarity thresholds, in percent.
var DefaultSimilarity = Similarity{
	Floor:               10,
	ParaphraseThreshold: 30,
}

// DefaultMetrics holds the default metrics settings.
var DefaultMetrics = Metrics{
	WordsPerMinute: 200,
}

// DefaultLog writes info and above as text.
var DefaultLog = Log{
	Level:  "info",
	Format: "text",
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// DefaultWatch holds the default watcher settings.
var DefaultWatch = Watch{
	Debounce:  500 * time.Millisecond,
	ScoreDrop: 5,
}
