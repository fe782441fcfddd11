package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/writewatch/internal/metrics"
	"github.com/blackwell-systems/writewatch/internal/output"
	"github.com/blackwell-systems/writewatch/internal/pipeline"
	"github.com/blackwell-systems/writewatch/internal/store"
	"github.com/blackwell-systems/writewatch/internal/suggest"
)

var (
	analyzeText     string
	analyzeGoal     string
	analyzeTone     string
	analyzeAudience string
	analyzeType     string
	analyzeSave     bool
	analyzeTitle    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|-]",
	Short: "Suggestions, metrics and score for a text",
	Long: `Run the full analysis on a file (.txt, .md, .docx, .pdf), stdin, or
--text. Prints ranked suggestions with their positions, the metrics summary
and the 0-100 score.

Examples:
  writewatch analyze essay.md
  cat draft.txt | writewatch analyze --tone formal
  writewatch analyze --text "He have a very good idea." --format yaml
  writewatch analyze report.docx --save --title "Q3 report"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Analyze this text instead of a file")
	analyzeCmd.Flags().StringVar(&analyzeGoal, "goal", "", "Writing goal passed to the augmentation service (default clarity)")
	analyzeCmd.Flags().StringVar(&analyzeTone, "tone", "", "Target tone; \"formal\" also flags contractions (default professional)")
	analyzeCmd.Flags().StringVar(&analyzeAudience, "audience", "", "Intended audience (default general)")
	analyzeCmd.Flags().StringVar(&analyzeType, "type", "", "Only show suggestions of this type")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store the text and its analysis as a new document")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "Title for --save (default: file name)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	title, content, err := e.readInput(cmd, args, analyzeText)
	if err != nil {
		return err
	}

	if analyzeType != "" && !suggest.Type(analyzeType).Valid() {
		return fmt.Errorf("unknown suggestion type %q", analyzeType)
	}

	resp := e.engine().GenerateSuggestions(cmd.Context(), pipeline.Request{
		Content:  content,
		Goal:     analyzeGoal,
		Tone:     analyzeTone,
		Audience: analyzeAudience,
	})
	if analyzeType != "" {
		resp.Suggestions = filterByType(resp.Suggestions, suggest.Type(analyzeType))
	}

	if analyzeSave {
		if analyzeTitle != "" {
			title = analyzeTitle
		}
		db, err := e.openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		doc, err := saveDocument(db, e.cfg.UserID, title, content, resp)
		if err != nil {
			return err
		}
		e.logger.Info("document saved", "id", doc.ID, "title", doc.Title)
	}

	return e.encode(resp, func(w io.Writer) error {
		renderAnalysis(w, content, resp)
		return nil
	})
}

// saveDocument stores content with its score and records the analysis.
func saveDocument(db *store.DB, userID, title, content string, resp pipeline.Response) (*store.Document, error) {
	doc, err := db.SaveDocument(store.Document{
		UserID:    userID,
		Title:     title,
		Content:   content,
		WordCount: resp.Metrics.Lexical.WordCount,
		Score:     resp.Score,
	})
	if err != nil {
		return nil, err
	}
	if _, err := recordAnalysis(db, doc.ID, resp); err != nil {
		return nil, err
	}
	return doc, nil
}

// recordAnalysis stores resp against an existing document.
func recordAnalysis(db *store.DB, docID string, resp pipeline.Response) (*store.Analysis, error) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis: %w", err)
	}
	return db.SaveAnalysis(store.Analysis{
		DocumentID:      docID,
		Score:           resp.Score,
		Readability:     resp.Metrics.Readability.FleschReadingEase,
		WordCount:       resp.Metrics.Lexical.WordCount,
		SuggestionCount: len(resp.Suggestions),
		Augmentation:    string(resp.Augmentation),
		Payload:         string(payload),
	})
}

func filterByType(in []suggest.Suggestion, t suggest.Type) []suggest.Suggestion {
	out := make([]suggest.Suggestion, 0, len(in))
	for _, s := range in {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

func renderAnalysis(w io.Writer, content string, resp pipeline.Response) {
	fmt.Fprintln(w, output.Section("Writing Score"))
	fmt.Fprintf(w, " %s\n", output.ScoreBar(float64(resp.Score), 30))
	fmt.Fprintf(w, " %s\n", output.StyleMuted.Render(fmt.Sprintf("augmentation: %s  (%.2fs)", resp.Augmentation, resp.ProcessingTime)))

	renderMetricsSummary(w, resp.Metrics)
	renderSuggestions(w, content, resp.Suggestions)
}

func renderMetricsSummary(w io.Writer, m metrics.Metrics) {
	band, _ := metrics.Band(m.Readability.FleschReadingEase)
	fmt.Fprintln(w, output.Section("Metrics"))
	row := func(label, value string) {
		fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render(label), output.StyleValue.Render(value))
	}
	row("Words", fmt.Sprintf("%d", m.Lexical.WordCount))
	row("Sentences", fmt.Sprintf("%d", m.Lexical.SentenceCount))
	row("Reading time", fmt.Sprintf("%d min", m.Lexical.ReadingTimeMinutes))
	row("Reading ease", fmt.Sprintf("%.1f", m.Readability.FleschReadingEase)+"  "+output.StyleMuted.Render(band))
	row("Grade level", fmt.Sprintf("%.1f", m.Readability.FleschKincaidGrade))
	row("Vocabulary diversity", fmt.Sprintf("%.0f%%", m.VocabularyDiversity))
	row("Passive voice", fmt.Sprintf("%.0f%%", m.PassiveVoiceRatio))
}

func renderSuggestions(w io.Writer, content string, suggestions []suggest.Suggestion) {
	fmt.Fprintln(w, output.Section(fmt.Sprintf("Suggestions (%d)", len(suggestions))))
	if len(suggestions) == 0 {
		fmt.Fprintf(w, " %s\n", output.StyleSuccess.Render("No issues found."))
		return
	}

	tbl := output.NewTable("Line", "Severity", "Type", "Original", "Suggested")
	for _, s := range suggestions {
		line, col := lineCol(content, s.Position.Start)
		tbl.AddRow(
			fmt.Sprintf("%d:%d", line, col),
			output.SeverityStyle(string(s.Severity)).Render(string(s.Severity)),
			string(s.Type),
			clip(s.OriginalText, 32),
			clip(s.SuggestedText, 32),
		)
	}
	fmt.Fprintln(w)
	_, _ = tbl.WriteTo(w)

	if flagVerbose {
		fmt.Fprintln(w)
		for _, s := range suggestions {
			fmt.Fprintf(w, " %s %s\n", output.StyleBold.Render(s.ID), s.Explanation)
		}
	}
}

// lineCol converts a byte offset into 1-based line and column numbers.
func lineCol(content string, offset int) (int, int) {
	if offset > len(content) {
		offset = len(content)
	}
	before := content[:offset]
	line := strings.Count(before, "\n") + 1
	col := len([]rune(before[strings.LastIndex(before, "\n")+1:])) + 1
	return line, col
}

// clip shortens s to n runes on one line.
func clip(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
