package app

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/writewatch/internal/ingest"
	"github.com/blackwell-systems/writewatch/internal/output"
	"github.com/blackwell-systems/writewatch/internal/pipeline"
)

var importTone string

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Analyze files and store them as documents",
	Long: `Extract the text of each file (.txt, .md, .docx, .pdf), analyze it and
store it as a new document with its score and analysis. Files that cannot
be read are reported and skipped; the command fails only if none were
imported.

Examples:
  writewatch import chapter1.docx chapter2.docx
  writewatch import notes/*.md --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importTone, "tone", "", "Target tone passed to the analysis")
	rootCmd.AddCommand(importCmd)
}

// importResult is one row of the import summary.
type importResult struct {
	Path        string `json:"path" yaml:"path"`
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	WordCount   int    `json:"word_count" yaml:"word_count"`
	Score       int    `json:"score" yaml:"score"`
	Suggestions int    `json:"suggestions" yaml:"suggestions"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	db, err := e.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	engine := e.engine()
	results := make([]importResult, 0, len(args))
	imported := 0
	for _, path := range args {
		r := importResult{Path: path}
		doc, err := ingest.File(path)
		if err != nil {
			r.Error = err.Error()
			e.logger.Warn("import skipped", "path", path, "error", err)
			results = append(results, r)
			continue
		}

		resp := engine.GenerateSuggestions(cmd.Context(), pipeline.Request{Content: doc.Text, Tone: importTone})
		saved, err := saveDocument(db, e.cfg.UserID, doc.Title, doc.Text, resp)
		if err != nil {
			return fmt.Errorf("saving %s: %w", path, err)
		}
		imported++
		r.ID, r.Title = saved.ID, saved.Title
		r.WordCount, r.Score, r.Suggestions = saved.WordCount, saved.Score, len(resp.Suggestions)
		e.logger.Debug("imported", "path", path, "id", saved.ID, "format", doc.Format)
		results = append(results, r)
	}

	if err := e.encode(results, func(w io.Writer) error {
		renderImport(w, results)
		return nil
	}); err != nil {
		return err
	}
	if imported == 0 {
		return fmt.Errorf("no files imported")
	}
	return nil
}

func renderImport(w io.Writer, results []importResult) {
	fmt.Fprintln(w, output.Section("Import"))
	tbl := output.NewTable("File", "ID", "Words", "Score", "Suggestions")
	var failed []importResult
	for _, r := range results {
		if r.Error != "" {
			failed = append(failed, r)
			continue
		}
		tbl.AddRow(
			filepath.Base(r.Path),
			r.ID,
			fmt.Sprintf("%d", r.WordCount),
			output.ScoreStyle(float64(r.Score)).Render(fmt.Sprintf("%d", r.Score)),
			fmt.Sprintf("%d", r.Suggestions),
		)
	}
	fmt.Fprintln(w)
	_, _ = tbl.WriteTo(w)

	for _, r := range failed {
		fmt.Fprintf(w, " %s %s: %s\n", output.StyleError.Render("skipped"), r.Path, r.Error)
	}
}
