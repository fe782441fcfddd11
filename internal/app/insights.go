package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/writewatch/internal/insights"
	"github.com/blackwell-systems/writewatch/internal/output"
	"github.com/blackwell-systems/writewatch/internal/store"
)

// insightsWindow is how many recent documents feed the report.
const insightsWindow = 100

var insightsUser string

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Writing statistics, streak, achievements and trends",
	Long: `Summarize your stored documents: totals and averages, writing
frequency, the current streak, week-over-week improvement, a seven-day
activity chart, unlocked achievements and suggested focus areas.`,
	Args: cobra.NoArgs,
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().StringVar(&insightsUser, "user", "", "Report on another user (default from config)")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(e *env, db *store.DB) error {
		user := insightsUser
		if user == "" {
			user = e.cfg.UserID
		}
		docs, err := db.ListDocuments(user, insightsWindow)
		if err != nil {
			return err
		}
		report := insights.Build(docs, time.Now())
		return e.encode(report, func(w io.Writer) error {
			renderInsights(w, report)
			return nil
		})
	})
}

func renderInsights(w io.Writer, r insights.Report) {
	p := r.Performance
	fmt.Fprintln(w, output.Section("Overview"))
	row := func(label, value string) {
		fmt.Fprintf(w, " %s%s\n", output.StyleLabel.Render(label), value)
	}
	row("Documents", output.StyleValue.Render(fmt.Sprintf("%d", p.TotalDocuments)))
	row("Words", output.StyleValue.Render(fmt.Sprintf("%d", p.TotalWords)))
	row("Average score", output.ScoreBar(p.AverageScore, 20))
	row("Best score", output.StyleValue.Render(fmt.Sprintf("%d", p.BestScore)))
	row("Docs per day", output.StyleValue.Render(fmt.Sprintf("%.2f", p.WritingFrequency)))
	row("Minutes per day", output.StyleValue.Render(fmt.Sprintf("%d", p.MinutesPerDay)))
	row("Streak", output.StyleValue.Render(fmt.Sprintf("%d day(s)", r.Streak)))
	row("Week over week", output.TrendArrowPercent(r.ImprovementRate, true))

	fmt.Fprintln(w, output.Section("Last 7 Days"))
	peak := 0
	for _, d := range r.Activity {
		peak = max(peak, d.Words)
	}
	for _, d := range r.Activity {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("█", d.Words*30/peak)
		}
		fmt.Fprintf(w, " %s %s %s\n", d.Date, output.StyleSuccess.Render(fmt.Sprintf("%-30s", bar)), output.StyleMuted.Render(fmt.Sprintf("%d words", d.Words)))
	}

	if len(r.Achievements) > 0 {
		fmt.Fprintln(w, output.Section("Achievements"))
		for _, a := range r.Achievements {
			fmt.Fprintf(w, " %s %s  %s\n", a.Icon, output.StyleBold.Render(a.Title), output.StyleMuted.Render(a.Description))
		}
	}

	if len(r.Insights) > 0 {
		fmt.Fprintln(w, output.Section("Insights"))
		for _, in := range r.Insights {
			fmt.Fprintf(w, " %s %s\n", output.StyleBold.Render(in.Title), output.StyleMuted.Render("("+in.Impact+")"))
			fmt.Fprintf(w, "   %s\n", in.Description)
			fmt.Fprintf(w, "   %s\n", output.StyleSuccess.Render(in.Recommendation))
		}
	}

	if len(r.ImprovementAreas) > 0 {
		fmt.Fprintln(w, output.Section("Focus Areas"))
		for _, a := range r.ImprovementAreas {
			fmt.Fprintf(w, " - %s\n", a)
		}
	}

	if len(r.Recent) > 0 {
		fmt.Fprintln(w, output.Section("Recent"))
		tbl := output.NewTable("Date", "Title", "Words", "Score")
		for _, d := range r.Recent {
			tbl.AddRow(strings.SplitN(d.Date, "T", 2)[0], clip(d.Title, 36), fmt.Sprintf("%d", d.WordCount), fmt.Sprintf("%d", d.Score))
		}
		fmt.Fprintln(w)
		_, _ = tbl.WriteTo(w)
	}
}
