package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/writewatch/internal/ingest"
	"github.com/blackwell-systems/writewatch/internal/output"
	"github.com/blackwell-systems/writewatch/internal/similarity"
)

var (
	similarityText      string
	similarityReference string
)

var similarityCmd = &cobra.Command{
	Use:   "similarity [file|-]",
	Short: "Approximate similarity against a reference or the built-in corpus",
	Long: `Estimate how similar a text is to a reference file, or, without
--reference, to a small built-in corpus of well-known passages and common
phrases. The score is approximate and its confidence is reported; this is
not a web-scale plagiarism check.

With an embedding service enabled the reference comparison uses vector
similarity and falls back to TF-IDF when the service is unavailable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimilarity,
}

func init() {
	similarityCmd.Flags().StringVar(&similarityText, "text", "", "Check this text instead of a file")
	similarityCmd.Flags().StringVar(&similarityReference, "reference", "", "Reference file to compare against")
	rootCmd.AddCommand(similarityCmd)
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	_, content, err := e.readInput(cmd, args, similarityText)
	if err != nil {
		return err
	}

	var reference string
	if similarityReference != "" {
		ref, err := ingest.File(similarityReference)
		if err != nil {
			return fmt.Errorf("reading reference: %w", err)
		}
		reference = ref.Text
	}

	r := e.engine().EstimateSimilarity(cmd.Context(), content, reference)
	return e.encode(r, func(w io.Writer) error {
		renderSimilarity(w, r)
		return nil
	})
}

func renderSimilarity(w io.Writer, r similarity.Result) {
	fmt.Fprintln(w, output.Section("Similarity"))

	risk := output.StyleSuccess
	switch r.RiskLevel {
	case similarity.RiskHigh:
		risk = output.StyleError
	case similarity.RiskMedium:
		risk = output.StyleWarning
	}
	fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render("Score"), output.StyleValue.Render(fmt.Sprintf("%.1f%%", r.Score)))
	fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render("Risk"), risk.Render(string(r.RiskLevel)))
	fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render("Method"), fmt.Sprintf("%s (confidence %.1f)", r.Method, r.Confidence))
	if r.ParaphraseDetected {
		fmt.Fprintf(w, " %s\n", output.StyleWarning.Render("Paraphrased passages detected."))
	}

	if len(r.Matches) == 0 {
		return
	}
	fmt.Fprintln(w, output.Section(fmt.Sprintf("Matches (%d)", len(r.Matches))))
	tbl := output.NewTable("Source", "Similarity", "Span", "Text")
	for _, m := range r.Matches {
		tbl.AddRow(
			m.SourceLabel,
			fmt.Sprintf("%.1f%%", m.Similarity),
			fmt.Sprintf("%d-%d", m.MatchedSpan.Start, m.MatchedSpan.End),
			clip(m.MatchedText, 40),
		)
	}
	fmt.Fprintln(w)
	_, _ = tbl.WriteTo(w)
}
