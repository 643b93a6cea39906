package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuibingo/internal/model"
)

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []model.WinRecord{
		{CardID: "b", Kind: model.PatternFull, DrawCount: 40, RecordedAt: base.Add(2 * time.Minute)},
		{CardID: "a", Kind: model.PatternHorizontal, DrawCount: 10, RecordedAt: base},
		{CardID: "a", Kind: model.PatternHorizontal, DrawCount: 16, RecordedAt: base.Add(time.Minute)},
	}
	s := Summarize(records)
	if s.Wins != 3 {
		t.Fatalf("expected 3 wins, got %d", s.Wins)
	}
	if s.ByKind[model.PatternHorizontal] != 2 || s.ByKind[model.PatternFull] != 1 {
		t.Fatalf("unexpected per-kind counts %v", s.ByKind)
	}
	if len(s.ByCard) != 2 {
		t.Fatalf("expected 2 cards, got %v", s.ByCard)
	}
	if s.AvgDraws != 22 || s.FewestDraws != 10 || s.MostDraws != 40 {
		t.Fatalf("unexpected draw figures %+v", s)
	}
	want := []float64{10, 16, 40}
	for i, v := range want {
		if s.DrawsOverRun[i] != v {
			t.Fatalf("expected oldest-first series %v, got %v", want, s.DrawsOverRun)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("flat series: got %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Summary{}); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No wins recorded." {
		t.Fatalf("unexpected empty output %q", buf.String())
	}

	buf.Reset()
	s := Summarize([]model.WinRecord{
		{CardID: "a", Kind: model.PatternVertical, DrawCount: 12},
		{CardID: "b", Kind: model.PatternDiagonalMain, DrawCount: 8},
	})
	if err := RenderSummary(&buf, s); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Wins: 2", "Avg draws to win: 10.0", "Vertical", "Diagonal-Main", "50.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Horizontal") {
		t.Fatalf("patterns without wins should be omitted:\n%s", out)
	}
}
