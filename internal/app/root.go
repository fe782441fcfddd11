// Package app contains the Cobra command tree for writewatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
	flagFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "writewatch",
	Short: "Writing suggestions, readability metrics and similarity checks",
	Long: `writewatch analyzes prose. It flags grammar, style, clarity, vocabulary
and tone issues with exact positions, computes readability and tone metrics
and a 0-100 quality score, estimates similarity against a reference text,
and tracks your documents and progress over time.

An optional language-model provider (OpenAI-compatible or Anthropic) adds
suggestions on top of the built-in rules; the rules work without it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "writewatch", appVersion)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Use a subcommand:")
		fmt.Fprintln(out, "  analyze     Suggestions, metrics and score for a text")
		fmt.Fprintln(out, "  metrics     Readability, tone and lexical metrics only")
		fmt.Fprintln(out, "  similarity  Approximate similarity against a reference or the built-in corpus")
		fmt.Fprintln(out, "  import      Import .txt/.md/.docx/.pdf files as documents")
		fmt.Fprintln(out, "  docs        List, show, update and delete stored documents")
		fmt.Fprintln(out, "  insights    Writing statistics, streaks and achievements")
		fmt.Fprintln(out, "  watch       Re-analyze a file on save and alert on regressions")
		fmt.Fprintln(out, "  mcp         Serve the engine over MCP stdio")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/writewatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON (same as --format json)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}
