// Package stats contains practice statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alice-yql/bearwithme/internal/model"
	"github.com/alice-yql/bearwithme/internal/session"
)

const sparkChars = " .:-=+*#%@"

// DayTotals groups practice records into per-day totals, oldest first.
func DayTotals(records []model.PracticeRecord) []model.DayAggregate {
	byDay := map[string]*model.DayAggregate{}
	for _, rec := range records {
		year, month, day := rec.StartedAt.Date()
		dayStart := time.Date(year, month, day, 0, 0, 0, 0, rec.StartedAt.Location())
		key := dayStart.Format("2006-01-02")
		agg, ok := byDay[key]
		if !ok {
			agg = &model.DayAggregate{Day: dayStart}
			byDay[key] = agg
		}
		agg.TotalMs += rec.DurationMs
	}
	out := make([]model.DayAggregate, 0, len(byDay))
	for _, agg := range byDay {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints overall practice totals.
func RenderSummary(w io.Writer, aggs []model.WordAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No words found.")
		return err
	}
	var totalMs int64
	var totalSessions int
	practiced := 0
	most := aggs[0]
	for _, agg := range aggs {
		totalMs += agg.TotalMs
		totalSessions += agg.Sessions
		if agg.TotalMs > 0 {
			practiced++
		}
		if agg.TotalMs > most.TotalMs {
			most = agg
		}
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Words: %d\n", len(aggs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Practiced: %d\n", practiced); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", totalSessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total time: %s\n", session.FormatElapsed(totalMs)); err != nil {
		return err
	}
	if most.TotalMs > 0 {
		if _, err := fmt.Fprintf(w, "Most practiced: %s (%s)\n", most.Text, session.FormatElapsed(most.TotalMs)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderWordTable prints per-word practice totals, most practiced first.
func RenderWordTable(w io.Writer, aggs []model.WordAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	rows := make([]model.WordAggregate, len(aggs))
	copy(rows, aggs)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalMs > rows[j].TotalMs
	})

	if _, err := fmt.Fprintln(w, "Per-Word"); err != nil {
		return err
	}
	headers := []string{"Word", "Status", "Time", "Sessions", "Last practiced"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		last := "never"
		if !r.LastPracticed.IsZero() {
			last = r.LastPracticed.Local().Format("2006-01-02 15:04")
		}
		tableRows = append(tableRows, []string{
			r.Text,
			string(r.Status),
			session.FormatElapsed(r.TotalMs),
			fmt.Sprintf("%d", r.Sessions),
			last,
		})
	}
	rightAlign := map[int]bool{2: true, 3: true}
	lines := formatTable(headers, tableRows, rightAlign)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderDaily prints a per-day practice time sparkline sized to width.
func RenderDaily(w io.Writer, days []model.DayAggregate, width int) error {
	if len(days) == 0 {
		return nil
	}
	if width < minSparkWidth {
		width = minSparkWidth
	}
	if len(days) > width {
		days = days[len(days)-width:]
	}
	values := make([]float64, len(days))
	minMs := days[0].TotalMs
	maxMs := days[0].TotalMs
	for i, d := range days {
		values[i] = float64(d.TotalMs)
		if d.TotalMs < minMs {
			minMs = d.TotalMs
		}
		if d.TotalMs > maxMs {
			maxMs = d.TotalMs
		}
	}
	if _, err := fmt.Fprintln(w, "Daily practice"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", days[0].Day.Format("2006-01-02"), Sparkline(values)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "min %s · max %s\n", session.FormatElapsed(minMs), session.FormatElapsed(maxMs)); err != nil {
		return err
	}
	return nil
}
