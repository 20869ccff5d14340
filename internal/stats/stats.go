// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/crackle/internal/model"
)

const (
	sparkChars   = " .:-=+*#%@"
	outcomeFound = "found"
	hiddenMarker = "(hidden)"
)

// Rate returns attempts per second for a session.
func Rate(attempts int64, durationMs int64) float64 {
	if durationMs <= 0 || attempts <= 0 {
		return 0
	}
	return float64(attempts) / (float64(durationMs) / 1000.0)
}

// FormatRate renders a rate with thousands separators, rounded to one decimal.
func FormatRate(rate float64) string {
	return humanize.CommafWithDigits(math.Round(rate*10)/10, 1) + "/s"
}

// FormatDuration renders a duration rounded for display.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	return minVal, maxVal
}

// RenderSummary prints a summary block for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalAttempts, totalMs int64
	var found int
	bestRate := 0.0
	for _, s := range sessions {
		totalAttempts += s.Attempts
		totalMs += s.DurationMs
		if s.Outcome == outcomeFound {
			found++
		}
		bestRate = max(bestRate, Rate(s.Attempts, s.DurationMs))
	}
	count := len(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", count),
		fmt.Sprintf("Cracked: %d (%.0f%%)", found, float64(found)/float64(count)*100),
		fmt.Sprintf("Total attempts: %s", humanize.Comma(totalAttempts)),
		fmt.Sprintf("Avg rate: %s", FormatRate(Rate(totalAttempts, totalMs))),
		fmt.Sprintf("Best rate: %s", FormatRate(bestRate)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSessionTable prints one row per session. Recovered passwords are
// masked unless reveal is set.
func RenderSessionTable(w io.Writer, sessions []model.SessionAggregate, reveal bool) error {
	if len(sessions) == 0 {
		return nil
	}
	headers := []string{"Ended", "Algorithm", "Outcome", "Password", "Attempts", "Rate", "Duration"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		password := s.Password
		if password != "" && !reveal {
			password = hiddenMarker
		}
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			s.Algorithm,
			s.Outcome,
			password,
			humanize.Comma(s.Attempts),
			FormatRate(Rate(s.Attempts, s.DurationMs)),
			FormatDuration(time.Duration(s.DurationMs) * time.Millisecond),
		})
	}
	rightAlign := map[int]bool{4: true, 5: true, 6: true}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRateTrend prints a smoothed sparkline of per-session rates.
func RenderRateTrend(w io.Writer, sessions []model.SessionAggregate, window int) error {
	if len(sessions) < 2 {
		return nil
	}
	rates := make([]float64, len(sessions))
	for i, s := range sessions {
		rates[i] = Rate(s.Attempts, s.DurationMs)
	}
	rates = MovingAverage(rates, window)
	lo, hi := minMax(rates)
	if _, err := fmt.Fprintf(w, "Rate trend: [%s]\n", Sparkline(rates)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "min=%s max=%s\n\n", FormatRate(lo), FormatRate(hi))
	return err
}

// RenderOriginTable prints attempts per candidate origin.
func RenderOriginTable(w io.Writer, aggs []model.OriginAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No origin stats found.")
		return err
	}
	ranked := TopOrigins(aggs, len(aggs))
	var total int64
	for _, agg := range ranked {
		total += agg.Attempts
	}
	if _, err := fmt.Fprintln(w, "Candidates by Origin"); err != nil {
		return err
	}
	headers := []string{"Origin", "Attempts", "Share", "Sessions"}
	rows := make([][]string, 0, len(ranked))
	for _, agg := range ranked {
		share := 0.0
		if total > 0 {
			share = float64(agg.Attempts) / float64(total)
		}
		rows = append(rows, []string{
			agg.Origin,
			humanize.Comma(agg.Attempts),
			fmt.Sprintf("%.2f%%", share*100),
			fmt.Sprintf("%d", agg.Sessions),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
