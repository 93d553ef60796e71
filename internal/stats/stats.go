// Package stats contains round statistics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/wps/internal/model"
)

const (
	sparkChars   = " .:-=+*#%@"
	smoothWindow = 3
)

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
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
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

// WPMSeries extracts round WPM values, keeping at most the last width values
// when width > 0.
func WPMSeries(rounds []model.RoundAggregate, width int) []float64 {
	if width > 0 && len(rounds) > width {
		rounds = rounds[len(rounds)-width:]
	}
	out := make([]float64, len(rounds))
	for i, r := range rounds {
		out[i] = float64(r.WPM)
	}
	return out
}

// Summary holds totals across rounds.
type Summary struct {
	Rounds   int
	AvgWPM   float64
	BestWPM  int
	LastWPM  int
	Chars    int
	Duration time.Duration
}

// Summarize computes totals across rounds.
func Summarize(rounds []model.RoundAggregate) Summary {
	var s Summary
	if len(rounds) == 0 {
		return s
	}
	total := 0
	for _, r := range rounds {
		total += r.WPM
		s.BestWPM = max(s.BestWPM, r.WPM)
		s.Chars += r.Chars
		s.Duration += time.Duration(r.DurationMs) * time.Millisecond
	}
	s.Rounds = len(rounds)
	s.AvgWPM = float64(total) / float64(len(rounds))
	s.LastWPM = rounds[len(rounds)-1].WPM
	return s
}

// RenderSummary prints totals for the rounds.
func RenderSummary(w io.Writer, rounds []model.RoundAggregate, sparkWidth int) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds completed.")
		return err
	}
	s := Summarize(rounds)
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", s.Rounds),
		fmt.Sprintf("Avg WPM: %.1f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %d", s.BestWPM),
		fmt.Sprintf("Characters: %d", s.Chars),
		fmt.Sprintf("Typing time: %s", s.Duration.Round(time.Second)),
	}
	if len(rounds) > 1 {
		series := WPMSeries(rounds, sparkWidth)
		lines = append(lines, fmt.Sprintf("Trend: %s", Sparkline(series)))
		if len(series) > smoothWindow {
			lines = append(lines, fmt.Sprintf("Smoothed: %s", Sparkline(MovingAverage(series, smoothWindow))))
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRoundTable prints one row per round.
func RenderRoundTable(w io.Writer, rounds []model.RoundAggregate) error {
	if len(rounds) == 0 {
		return nil
	}
	headers := []string{"Round", "WPM", "Time (s)", "Chars"}
	rows := make([][]string, 0, len(rounds))
	for _, r := range rounds {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Round),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%.1f", float64(r.DurationMs)/1000),
			fmt.Sprintf("%d", r.Chars),
		})
	}
	return writeTable(w, "Rounds", headers, rows, map[int]bool{0: true, 1: true, 2: true, 3: true})
}

// RenderCharTable prints per-character accuracy, weakest first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	sorted := sortByAccuracy(aggs)
	headers := []string{"Char", "Accuracy", "Correct", "Incorrect"}
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		rows = append(rows, []string{
			agg.Char,
			fmt.Sprintf("%.2f%%", accuracy(agg)*100),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	return writeTable(w, "Per-Character", headers, rows, map[int]bool{1: true, 2: true, 3: true})
}

func writeTable(w io.Writer, title string, headers []string, rows [][]string, rightAlign map[int]bool) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
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
