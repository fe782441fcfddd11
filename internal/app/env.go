package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/writewatch/internal/augment"
	"github.com/blackwell-systems/writewatch/internal/config"
	"github.com/blackwell-systems/writewatch/internal/ingest"
	"github.com/blackwell-systems/writewatch/internal/logging"
	"github.com/blackwell-systems/writewatch/internal/metrics"
	"github.com/blackwell-systems/writewatch/internal/output"
	"github.com/blackwell-systems/writewatch/internal/pipeline"
	"github.com/blackwell-systems/writewatch/internal/similarity"
	"github.com/blackwell-systems/writewatch/internal/store"
	"github.com/blackwell-systems/writewatch/internal/suggest"
)

// env is what every command needs after flag parsing.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	format output.Format
	out    io.Writer
}

// setup loads config, configures color and builds the logger.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return nil, err
	}
	if flagJSON {
		format = output.FormatJSON
	}

	wantColor := cfg.Output.Color && !flagNoColor
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		wantColor = output.ShouldColor(f, wantColor)
	} else {
		wantColor = false
	}
	output.SetNoColor(!wantColor)
	output.Width = cfg.Output.Width

	level := cfg.Log.Level
	if flagVerbose {
		level = "debug"
	}

	return &env{
		cfg:    cfg,
		logger: logging.New(cmd.ErrOrStderr(), level, cfg.Log.Format),
		format: format,
		out:    cmd.OutOrStdout(),
	}, nil
}

// encode writes v in the selected format, using text for the human view.
func (e *env) encode(v any, text func(io.Writer) error) error {
	return output.Encode(e.out, e.format, v, text)
}

// engine wires the pipeline from config: the optional generator, the
// optional embedder and the ranking limits.
func (e *env) engine() *pipeline.Engine {
	cfg := e.cfg

	// A misconfigured provider disables augmentation rather than failing
	// the command.
	gen, err := augment.NewGenerator(cfg.Augment.Provider, cfg.Augment.APIKey, cfg.Augment.BaseURL, cfg.Augment.Model)
	if err != nil {
		e.logger.Warn("augmentation disabled", "error", err, "provider", cfg.Augment.Provider)
		gen = nil
	}
	e.logger.Debug("augmentation configured",
		"provider", cfg.Augment.Provider,
		"key_present", cfg.Augment.APIKey != "",
		"timeout", cfg.Augment.Timeout,
	)
	adapter := augment.New(gen, augment.Options{
		Timeout:       cfg.Augment.Timeout,
		MaxInputChars: cfg.Augment.MaxInputChars,
		Logger:        e.logger,
	})

	simOpts := similarity.Options{
		EmbedTimeout:        cfg.Embedding.Timeout,
		Floor:               cfg.Similarity.Floor,
		ParaphraseThreshold: cfg.Similarity.ParaphraseThreshold,
		Logger:              e.logger,
	}
	if cfg.Embedding.Enabled && cfg.Embedding.APIKey != "" {
		simOpts.Embedder = similarity.NewOpenAIEmbedder(cfg.Embedding.APIKey, cfg.Embedding.BaseURL, cfg.Embedding.Model)
	}
	e.logger.Debug("embedding configured", "enabled", cfg.Embedding.Enabled, "key_present", cfg.Embedding.APIKey != "")

	return pipeline.New(pipeline.Config{
		LongSentenceWords: cfg.Suggestions.LongSentenceWords,
		Rank: suggest.RankOptions{
			Max:        cfg.Suggestions.Max,
			PerTypeCap: cfg.Suggestions.PerTypeCap,
			Overlap:    cfg.Suggestions.DedupOverlap,
		},
		Metrics: metrics.Options{WordsPerMinute: cfg.Metrics.WordsPerMinute},
	}, adapter, similarity.New(simOpts), e.logger)
}

// readInput returns the text to analyze and a title for it: the --text
// value, stdin for "-" or no argument, or the extracted text of a file.
func (e *env) readInput(cmd *cobra.Command, args []string, text string) (title, content string, err error) {
	switch {
	case text != "":
		return "inline", text, nil
	case len(args) == 0 || args[0] == "-":
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "stdin", string(raw), nil
	}
	doc, err := ingest.File(args[0])
	if err != nil {
		return "", "", err
	}
	return doc.Title, doc.Text, nil
}

// openStore opens the configured database.
func (e *env) openStore() (*store.DB, error) {
	db, err := store.Open(e.cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", e.cfg.DatabasePath, err)
	}
	return db, nil
}
