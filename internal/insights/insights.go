package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/blackwell-systems/writewatch/internal/store"
)

// Achievement thresholds.
const (
	WordWarriorWords     = 1000
	ProlificWriterWords  = 5000
	QualityMasterScore   = 80
	ConsistentWriterDocs = 10
)

// DefaultActivityDays is the length of the activity chart.
const DefaultActivityDays = 7

const dateLayout = "2006-01-02"

// Build computes the full report for docs as of now.
func Build(docs []store.Document, now time.Time) Report {
	return Report{
		Performance:      AnalyzePerformance(docs),
		Insights:         Generate(docs),
		ImprovementAreas: ImprovementAreas(docs),
		Achievements:     Achievements(docs),
		Streak:           Streak(docs, now),
		ImprovementRate:  ImprovementRate(docs, now),
		Activity:         Activity(docs, now, DefaultActivityDays),
		Recent:           Recent(docs, 5),
	}
}

func totals(docs []store.Document) (words int, avgScore float64) {
	if len(docs) == 0 {
		return 0, 0
	}
	var scoreSum int
	for _, d := range docs {
		words += d.WordCount
		scoreSum += d.Score
	}
	return words, float64(scoreSum) / float64(len(docs))
}

// AnalyzePerformance computes totals, averages and writing frequency.
func AnalyzePerformance(docs []store.Document) Performance {
	perf := Performance{TotalDocuments: len(docs)}
	if len(docs) == 0 {
		return perf
	}

	words, avg := totals(docs)
	perf.TotalWords = words
	perf.AverageScore = round(avg, 1)
	perf.AverageWordsPerDocument = round(float64(words)/float64(len(docs)), 1)

	earliest, latest := docs[0].UpdatedAt, docs[0].UpdatedAt
	minutes := make(map[string]float64)
	for _, d := range docs {
		if d.Score > perf.BestScore {
			perf.BestScore = d.Score
		}
		if d.UpdatedAt.Before(earliest) {
			earliest = d.UpdatedAt
		}
		if d.UpdatedAt.After(latest) {
			latest = d.UpdatedAt
		}
		// Time between creation and last edit counts as time spent on the
		// day of the edit.
		if d.UpdatedAt.After(d.CreatedAt) {
			minutes[d.UpdatedAt.Format(dateLayout)] += d.UpdatedAt.Sub(d.CreatedAt).Minutes()
		}
	}

	days := int(latest.Sub(earliest).Hours() / 24)
	if days < 1 {
		days = 1
	}
	perf.WritingFrequency = round(float64(len(docs))/float64(days), 2)

	if len(minutes) > 0 {
		var total float64
		for _, m := range minutes {
			total += m
		}
		perf.MinutesPerDay = int(total / float64(len(minutes)))
	}
	return perf
}

// Generate returns observations on volume, quality and consistency.
func Generate(docs []store.Document) []Insight {
	var out []Insight
	if len(docs) == 0 {
		return out
	}
	words, avg := totals(docs)

	if words > WordWarriorWords {
		out = append(out, Insight{
			Type:           "productivity",
			Title:          "High Writing Volume",
			Description:    fmt.Sprintf("You've written %d words across %d documents.", words, len(docs)),
			Impact:         "This shows strong writing consistency and dedication to your craft.",
			Recommendation: "Consider setting daily writing goals to maintain this momentum.",
		})
	}
	if avg > QualityMasterScore {
		out = append(out, Insight{
			Type:           "quality",
			Title:          "Excellent Writing Quality",
			Description:    fmt.Sprintf("Your average document score is %.1f/100.", avg),
			Impact:         "Your writing demonstrates high quality and attention to detail.",
			Recommendation: "Focus on maintaining this high standard while exploring new writing styles.",
		})
	}
	if len(docs) >= 3 {
		out = append(out, Insight{
			Type:           "consistency",
			Title:          "Consistent Writing Habit",
			Description:    "You've been writing regularly with good consistency.",
			Impact:         "Regular writing practice improves skills and builds momentum.",
			Recommendation: "Try to maintain this consistency and consider daily writing sessions.",
		})
	}
	return out
}

// ImprovementAreas lists what the user should work on.
func ImprovementAreas(docs []store.Document) []string {
	var areas []string
	if len(docs) == 0 {
		return areas
	}
	words, avg := totals(docs)
	if avg < 70 {
		areas = append(areas, "Overall writing quality needs improvement")
	}
	if float64(words)/float64(len(docs)) < 100 {
		areas = append(areas, "Consider writing longer, more detailed content")
	}
	if len(docs) < 5 {
		areas = append(areas, "Increase writing frequency for better skill development")
	}
	return areas
}

// Achievements returns the milestones docs have unlocked.
func Achievements(docs []store.Document) []Achievement {
	var out []Achievement
	if len(docs) == 0 {
		return out
	}
	words, avg := totals(docs)

	if words >= WordWarriorWords {
		out = append(out, Achievement{Title: "Word Warrior", Description: fmt.Sprintf("Wrote %d words", words), Icon: "📝"})
	}
	if words >= ProlificWriterWords {
		out = append(out, Achievement{Title: "Prolific Writer", Description: fmt.Sprintf("Wrote %d words", words), Icon: "✍️"})
	}
	if avg >= QualityMasterScore {
		out = append(out, Achievement{Title: "Quality Master", Description: fmt.Sprintf("Average score: %.1f/100", avg), Icon: "🏆"})
	}
	if len(docs) >= ConsistentWriterDocs {
		out = append(out, Achievement{Title: "Consistent Writer", Description: fmt.Sprintf("Created %d documents", len(docs)), Icon: "📚"})
	}
	return out
}

// Streak counts consecutive days, ending today, on which at least one
// document was edited. Days are taken in now's location.
func Streak(docs []store.Document, now time.Time) int {
	days := make(map[string]bool, len(docs))
	for _, d := range docs {
		days[d.UpdatedAt.In(now.Location()).Format(dateLayout)] = true
	}
	streak := 0
	for day := startOfDay(now); days[day.Format(dateLayout)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// ImprovementRate is the percent change in words written this week
// (starting Monday) against the previous week. With no words last week it
// is 100 when anything was written this week and 0 otherwise.
func ImprovementRate(docs []store.Document, now time.Time) float64 {
	today := startOfDay(now)
	offset := (int(today.Weekday()) + 6) % 7
	thisWeek := today.AddDate(0, 0, -offset)
	nextWeek := thisWeek.AddDate(0, 0, 7)
	lastWeek := thisWeek.AddDate(0, 0, -7)

	var cur, prev int
	for _, d := range docs {
		t := d.UpdatedAt.In(now.Location())
		switch {
		case !t.Before(thisWeek) && t.Before(nextWeek):
			cur += d.WordCount
		case !t.Before(lastWeek) && t.Before(thisWeek):
			prev += d.WordCount
		}
	}
	switch {
	case prev > 0:
		return round(float64(cur-prev)/float64(prev)*100, 1)
	case cur > 0:
		return 100
	}
	return 0
}

// Activity returns one entry per day for the last days days, oldest first,
// keyed by creation date. Days without documents are zero.
func Activity(docs []store.Document, now time.Time, days int) []DayActivity {
	if days <= 0 {
		return nil
	}
	type agg struct {
		words, docs, scoreSum int
	}
	byDay := make(map[string]*agg)
	for _, d := range docs {
		key := d.CreatedAt.In(now.Location()).Format(dateLayout)
		a := byDay[key]
		if a == nil {
			a = &agg{}
			byDay[key] = a
		}
		a.words += d.WordCount
		a.docs++
		a.scoreSum += d.Score
	}

	out := make([]DayActivity, 0, days)
	first := startOfDay(now).AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		key := first.AddDate(0, 0, i).Format(dateLayout)
		entry := DayActivity{Date: key}
		if a := byDay[key]; a != nil {
			entry.Words = a.words
			entry.Documents = a.docs
			entry.Score = round(float64(a.scoreSum)/float64(a.docs), 1)
		}
		out = append(out, entry)
	}
	return out
}

// Recent returns up to n documents, most recently edited first.
func Recent(docs []store.Document, n int) []RecentDocument {
	sorted := make([]store.Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]RecentDocument, 0, len(sorted))
	for _, d := range sorted {
		out = append(out, RecentDocument{
			ID:        d.ID,
			Title:     d.Title,
			WordCount: d.WordCount,
			Score:     d.Score,
			Date:      d.UpdatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
