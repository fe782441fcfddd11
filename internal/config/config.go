package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the top-level writewatch configuration.
type Config struct {
	DatabasePath string      `mapstructure:"database_path" validate:"required"`
	UserID       string      `mapstructure:"user_id" validate:"required"`
	Suggestions  Suggestions `mapstructure:"suggestions"`
	Augment      Augment     `mapstructure:"augment"`
	Embedding    Embedding   `mapstructure:"embedding"`
	Similarity   Similarity  `mapstructure:"similarity"`
	Metrics      Metrics     `mapstructure:"metrics"`
	Log          Log         `mapstructure:"log"`
	Output       Output      `mapstructure:"output"`
	Watch        Watch       `mapstructure:"watch"`
}

// Suggestions controls the rule stage and ranking.
type Suggestions struct {
	Max               int     `mapstructure:"max" validate:"gte=1,lte=500"`
	PerTypeCap        int     `mapstructure:"per_type_cap" validate:"gte=0"`
	LongSentenceWords int     `mapstructure:"long_sentence_words" validate:"gte=1"`
	DedupOverlap      float64 `mapstructure:"dedup_overlap" validate:"gt=0,lte=1"`
}

// Augment configures the optional remote suggestion service.
type Augment struct {
	// Provider is "openai" or "anthropic". Any other value leaves
	// augmentation off.
	Provider      string        `mapstructure:"provider"`
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url" validate:"omitempty,url"`
	Model         string        `mapstructure:"model"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxInputChars int           `mapstructure:"max_input_chars" validate:"gte=1"`
}

// Embedding configures the optional embedding service used for similarity.
type Embedding struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// Similarity holds similarity thresholds in percent.
type Similarity struct {
	Floor               float64 `mapstructure:"floor" validate:"gte=0,lte=100"`
	ParaphraseThreshold float64 `mapstructure:"paraphrase_threshold" validate:"gt=0,lte=100"`
}

// Metrics configures the metrics calculator.
type Metrics struct {
	WordsPerMinute int `mapstructure:"words_per_minute" validate:"gte=1"`
}

// Log configures the structured logger.
type Log struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width" validate:"gte=20"`
}

// Watch configures the file watcher.
type Watch struct {
	Debounce  time.Duration `mapstructure:"debounce" validate:"gte=0"`
	ScoreDrop int           `mapstructure:"score_drop" validate:"gte=1,lte=100"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("user_id", DefaultUserID)
	v.SetDefault("suggestions.max", DefaultSuggestions.Max)
	v.SetDefault("suggestions.per_type_cap", DefaultSuggestions.PerTypeCap)
	v.SetDefault("suggestions.long_sentence_words", DefaultSuggestions.LongSentenceWords)
	v.SetDefault("suggestions.dedup_overlap", DefaultSuggestions.DedupOverlap)
	v.SetDefault("augment.provider", DefaultAugment.Provider)
	v.SetDefault("augment.api_key", "")
	v.SetDefault("augment.base_url", "")
	v.SetDefault("augment.model", "")
	v.SetDefault("augment.timeout", DefaultAugment.Timeout)
	v.SetDefault("augment.max_input_chars", DefaultAugment.MaxInputChars)
	v.SetDefault("embedding.enabled", DefaultEmbedding.Enabled)
	v.SetDefault("embedding.api_key", "")
	v.SetDefault("embedding.base_url", "")
	v.SetDefault("embedding.model", DefaultEmbedding.Model)
	v.SetDefault("embedding.timeout", DefaultEmbedding.Timeout)
	v.SetDefault("similarity.floor", DefaultSimilarity.Floor)
	v.SetDefault("similarity.paraphrase_threshold", DefaultSimilarity.ParaphraseThreshold)
	v.SetDefault("metrics.words_per_minute", DefaultMetrics.WordsPerMinute)
	v.SetDefault("log.level", DefaultLog.Level)
	v.SetDefault("log.format", DefaultLog.Format)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("watch.debounce", DefaultWatch.Debounce)
	v.SetDefault("watch.score_drop", DefaultWatch.ScoreDrop)
}

// Load reads configuration from the given path (or the default location),
// applies WRITEWATCH_* environment overrides and validates the result.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.DatabasePath = expandPath(cfg.DatabasePath)
	cfg.applyKeyFallbacks()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyKeyFallbacks fills empty credentials from the providers' conventional
// environment variables.
func (c *Config) applyKeyFallbacks() {
	if c.Augment.APIKey == "" {
		switch c.Augment.Provider {
		case "openai":
			c.Augment.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			c.Augment.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
