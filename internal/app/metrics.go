package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/writewatch/internal/metrics"
	"github.com/blackwell-systems/writewatch/internal/output"
)

var metricsText string

var metricsCmd = &cobra.Command{
	Use:   "metrics [file|-]",
	Short: "Readability, tone and lexical metrics only",
	Long: `Compute readability formulas, the tone vector, sentiment shares and
lexical statistics for a text, plus the composite 0-100 score. No
suggestions are generated and no remote service is contacted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().StringVar(&metricsText, "text", "", "Measure this text instead of a file")
	rootCmd.AddCommand(metricsCmd)
}

// metricsOutput is the serializable output for the metrics command.
type metricsOutput struct {
	Metrics metrics.Metrics `json:"metrics" yaml:"metrics"`
	Score   int             `json:"score" yaml:"score"`
}

func runMetrics(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	_, content, err := e.readInput(cmd, args, metricsText)
	if err != nil {
		return err
	}

	m, score := e.engine().ComputeMetrics(content)
	out := metricsOutput{Metrics: m, Score: score}
	return e.encode(out, func(w io.Writer) error {
		renderMetrics(w, out)
		return nil
	})
}

func renderMetrics(w io.Writer, out metricsOutput) {
	m := out.Metrics
	fmt.Fprintln(w, output.Section("Writing Score"))
	fmt.Fprintf(w, " %s\n", output.ScoreBar(float64(out.Score), 30))

	renderMetricsSummary(w, m)

	fmt.Fprintln(w, output.Section("Readability"))
	tbl := output.NewTable("Formula", "Score")
	tbl.AddRow("Flesch reading ease", fmt.Sprintf("%.2f", m.Readability.FleschReadingEase))
	tbl.AddRow("Flesch-Kincaid grade", fmt.Sprintf("%.2f", m.Readability.FleschKincaidGrade))
	tbl.AddRow("Automated readability", fmt.Sprintf("%.2f", m.Readability.AutomatedReadabilityIndex))
	tbl.AddRow("Coleman-Liau", fmt.Sprintf("%.2f", m.Readability.ColemanLiau))
	tbl.AddRow("Gunning fog", fmt.Sprintf("%.2f", m.Readability.GunningFog))
	tbl.AddRow("SMOG", fmt.Sprintf("%.2f", m.Readability.SMOG))
	tbl.AddRow("Overall", fmt.Sprintf("%.2f", m.Readability.Overall))
	fmt.Fprintln(w)
	_, _ = tbl.WriteTo(w)

	fmt.Fprintln(w, output.Section("Tone"))
	tone := []struct {
		name  string
		value float64
	}{
		{"Formal", m.Tone.Formal},
		{"Confident", m.Tone.Confident},
		{"Optimistic", m.Tone.Optimistic},
		{"Analytical", m.Tone.Analytical},
		{"Friendly", m.Tone.Friendly},
		{"Assertive", m.Tone.Assertive},
	}
	for _, t := range tone {
		fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render(t.name), output.ScoreBar(t.value, 20))
	}

	fmt.Fprintln(w, output.Section("Style"))
	fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render("Adverbs"), output.StyleValue.Render(fmt.Sprintf("%.1f%%", m.AdverbPercentage)))
	fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render("Sentence variety"), output.StyleValue.Render(fmt.Sprintf("%.0f%%", m.SentenceVariety)))
	fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render("Questions / exclamations"), output.StyleValue.Render(fmt.Sprintf("%d / %d", m.QuestionCount, m.ExclamationCount)))
	fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render("Sentiment +/-/="), output.StyleValue.Render(fmt.Sprintf("%.0f/%.0f/%.0f", m.Sentiment.Positive, m.Sentiment.Negative, m.Sentiment.Neutral)))
}
