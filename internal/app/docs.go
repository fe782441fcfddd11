package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/writewatch/internal/ingest"
	"github.com/blackwell-systems/writewatch/internal/output"
	"github.com/blackwell-systems/writewatch/internal/pipeline"
	"github.com/blackwell-systems/writewatch/internal/store"
)

var (
	docsLimit       int
	docsUser        string
	docsTitle       string
	docsStatus      string
	docsContentFile string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List, show, update and delete stored documents",
	Long: `Manage the documents stored by "analyze --save" and "import".

Examples:
  writewatch docs list --limit 10
  writewatch docs show <id>
  writewatch docs update <id> --status published
  writewatch docs update <id> --content-file draft-v2.md
  writewatch docs delete <id>`,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a document and its latest analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsShow,
}

var docsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a document's title, status or content",
	Long: `Update a stored document. Replacing the content re-runs the analysis
and records it, so the stored score and word count stay current.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocsUpdate,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a document and its analyses",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsDelete,
}

func init() {
	docsListCmd.Flags().IntVar(&docsLimit, "limit", 20, "Maximum documents to list (0 for all)")
	docsListCmd.Flags().StringVar(&docsUser, "user", "", "List another user's documents (default from config)")
	docsUpdateCmd.Flags().StringVar(&docsTitle, "title", "", "New title")
	docsUpdateCmd.Flags().StringVar(&docsStatus, "status", "", "New status: draft, published or archived")
	docsUpdateCmd.Flags().StringVar(&docsContentFile, "content-file", "", "Replace the content with this file's text")

	docsCmd.AddCommand(docsListCmd, docsShowCmd, docsUpdateCmd, docsDeleteCmd)
	rootCmd.AddCommand(docsCmd)
}

// withStore runs fn against the configured database.
func withStore(cmd *cobra.Command, fn func(e *env, db *store.DB) error) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	db, err := e.openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(e, db)
}

func notFound(id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("document %s not found", id)
	}
	return err
}

func runDocsList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(e *env, db *store.DB) error {
		user := docsUser
		if user == "" {
			user = e.cfg.UserID
		}
		docs, err := db.ListDocuments(user, docsLimit)
		if err != nil {
			return err
		}
		return e.encode(docs, func(w io.Writer) error {
			renderDocList(w, docs)
			return nil
		})
	})
}

func renderDocList(w io.Writer, docs []store.Document) {
	fmt.Fprintln(w, output.Section(fmt.Sprintf("Documents (%d)", len(docs))))
	if len(docs) == 0 {
		fmt.Fprintf(w, " %s\n", output.StyleMuted.Render("No documents yet. Try: writewatch analyze <file> --save"))
		return
	}
	tbl := output.NewTable("ID", "Title", "Status", "Words", "Score", "Updated")
	for _, d := range docs {
		tbl.AddRow(
			d.ID,
			clip(d.Title, 30),
			d.Status,
			fmt.Sprintf("%d", d.WordCount),
			output.ScoreStyle(float64(d.Score)).Render(fmt.Sprintf("%d", d.Score)),
			d.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Fprintln(w)
	_, _ = tbl.WriteTo(w)
}

// docDetail is the output of docs show.
type docDetail struct {
	Document *store.Document    `json:"document" yaml:"document"`
	Analysis *pipeline.Response `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Analyzed string             `json:"analyzed_at,omitempty" yaml:"analyzed_at,omitempty"`
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(e *env, db *store.DB) error {
		doc, err := db.GetDocument(args[0])
		if err != nil {
			return notFound(args[0], err)
		}
		detail := docDetail{Document: doc}

		a, err := db.LatestAnalysis(doc.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return err
		default:
			var resp pipeline.Response
			if err := json.Unmarshal([]byte(a.Payload), &resp); err != nil {
				e.logger.Warn("stored analysis unreadable", "document", doc.ID, "analysis", a.ID, "error", err)
			} else {
				detail.Analysis = &resp
				detail.Analyzed = a.CreatedAt.Format(time.RFC3339)
			}
		}

		return e.encode(detail, func(w io.Writer) error {
			renderDocDetail(w, detail)
			return nil
		})
	})
}

func renderDocDetail(w io.Writer, d docDetail) {
	doc := d.Document
	fmt.Fprintln(w, output.Section(doc.Title))
	row := func(label, value string) {
		fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render(label), value)
	}
	row("ID", doc.ID)
	row("Status", doc.Status)
	row("Words", fmt.Sprintf("%d", doc.WordCount))
	row("Score", output.ScoreBar(float64(doc.Score), 20))
	row("Created", doc.CreatedAt.Local().Format("2006-01-02 15:04"))
	row("Updated", doc.UpdatedAt.Local().Format("2006-01-02 15:04"))

	if d.Analysis == nil {
		fmt.Fprintf(w, "\n %s\n", output.StyleMuted.Render("No analysis recorded."))
		return
	}
	renderMetricsSummary(w, d.Analysis.Metrics)
	renderSuggestions(w, doc.Content, d.Analysis.Suggestions)
}

func runDocsUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]
	flags := cmd.Flags()
	if !flags.Changed("title") && !flags.Changed("status") && !flags.Changed("content-file") {
		return fmt.Errorf("nothing to update: pass --title, --status or --content-file")
	}
	if flags.Changed("status") && !store.ValidStatus(docsStatus) {
		return fmt.Errorf("invalid status %q (want draft, published or archived)", docsStatus)
	}

	return withStore(cmd, func(e *env, db *store.DB) error {
		var upd store.DocumentUpdate
		if flags.Changed("title") {
			upd.Title = &docsTitle
		}
		if flags.Changed("status") {
			upd.Status = &docsStatus
		}

		var resp *pipeline.Response
		if flags.Changed("content-file") {
			src, err := ingest.File(docsContentFile)
			if err != nil {
				return err
			}
			r := e.engine().GenerateSuggestions(cmd.Context(), pipeline.Request{Content: src.Text})
			resp = &r
			words := r.Metrics.Lexical.WordCount
			upd.Content, upd.WordCount, upd.Score = &src.Text, &words, &r.Score
		}

		doc, err := db.UpdateDocument(id, upd)
		if err != nil {
			return notFound(id, err)
		}
		if resp != nil {
			if _, err := recordAnalysis(db, id, *resp); err != nil {
				return err
			}
		}
		e.logger.Info("document updated", "id", id)
		return e.encode(doc, func(w io.Writer) error {
			renderDocDetail(w, docDetail{Document: doc, Analysis: resp})
			return nil
		})
	})
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(e *env, db *store.DB) error {
		if err := db.DeleteDocument(args[0]); err != nil {
			return notFound(args[0], err)
		}
		e.logger.Info("document deleted", "id", args[0])
		return e.encode(map[string]string{"deleted": args[0]}, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Deleted %s\n", args[0])
			return err
		})
	})
}
