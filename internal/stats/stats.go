// Package stats summarises the win log.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/tuibingo/internal/model"
)

const sparkChars = " .:-=+*#%@"

var kindOrder = []model.PatternKind{
	model.PatternHorizontal,
	model.PatternVertical,
	model.PatternDiagonalMain,
	model.PatternDiagonalAnti,
	model.PatternFull,
}

// Summary aggregates logged wins.
type Summary struct {
	Wins         int
	ByKind       map[model.PatternKind]int
	ByCard       map[string]int
	AvgDraws     float64
	FewestDraws  int
	MostDraws    int
	DrawsOverRun []float64
}

// Summarize aggregates records. Order of records does not matter; the
// DrawsOverRun series is oldest first.
func Summarize(records []model.WinRecord) Summary {
	s := Summary{
		ByKind: map[model.PatternKind]int{},
		ByCard: map[string]int{},
	}
	if len(records) == 0 {
		return s
	}
	sorted := make([]model.WinRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})

	total := 0
	s.FewestDraws = math.MaxInt
	for _, rec := range sorted {
		s.Wins++
		s.ByKind[rec.Kind]++
		s.ByCard[rec.CardID]++
		total += rec.DrawCount
		if rec.DrawCount < s.FewestDraws {
			s.FewestDraws = rec.DrawCount
		}
		if rec.DrawCount > s.MostDraws {
			s.MostDraws = rec.DrawCount
		}
		s.DrawsOverRun = append(s.DrawsOverRun, float64(rec.DrawCount))
	}
	s.AvgDraws = float64(total) / float64(s.Wins)
	return s
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

// RenderSummary prints totals, draws-to-win figures, and per-pattern counts.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Wins == 0 {
		_, err := fmt.Fprintln(w, "No wins recorded.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Wins: %d", s.Wins),
		fmt.Sprintf("Cards that won: %d", len(s.ByCard)),
		fmt.Sprintf("Avg draws to win: %.1f", s.AvgDraws),
		fmt.Sprintf("Fewest draws: %d", s.FewestDraws),
		fmt.Sprintf("Most draws: %d", s.MostDraws),
		fmt.Sprintf("Draws per win: %s", Sparkline(s.DrawsOverRun)),
		"",
	}
	rows := make([][]string, 0, len(kindOrder))
	for _, kind := range kindOrder {
		count := s.ByKind[kind]
		if count == 0 {
			continue
		}
		share := float64(count) / float64(s.Wins) * 100
		rows = append(rows, []string{string(kind), fmt.Sprintf("%d", count), fmt.Sprintf("%.1f%%", share)})
	}
	lines = append(lines, formatTable([]string{"Pattern", "Wins", "Share"}, rows, map[int]bool{1: true, 2: true})...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
