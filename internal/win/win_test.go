package win

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tuibingo/internal/model"
)

// standardCard has column c holding c*15+1 .. c*15+5 top to bottom.
func standardCard() model.Grid {
	var g model.Grid
	for row := 0; row < model.GridSize; row++ {
		for col := 0; col < model.GridSize; col++ {
			g[row][col] = col*15 + row + 1
		}
	}
	g[model.FreeRow][model.FreeCol] = model.FreeSpace
	return g
}

func drawnSet(numbers ...int) map[int]struct{} {
	out := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		out[n] = struct{}{}
	}
	return out
}

func cellsOf(g model.Grid, p model.Pattern) []int {
	var out []int
	for _, c := range p.Cells() {
		if model.IsFree(c[0], c[1]) {
			continue
		}
		out = append(out, g[c[0]][c[1]])
	}
	return out
}

func TestScenarioRowZero(t *testing.T) {
	g := standardCard()
	drawn := drawnSet(1, 16, 31, 46, 61)
	p, ok := CheckLine(g, drawn)
	if !ok {
		t.Fatalf("expected a win")
	}
	if p.Kind != model.PatternHorizontal || p.Index != 0 {
		t.Fatalf("expected Horizontal row 0, got %+v", p)
	}
}

func TestHorizontalBeatsVerticalAndDiagonal(t *testing.T) {
	g := standardCard()
	var numbers []int
	numbers = append(numbers, cellsOf(g, model.Pattern{Kind: model.PatternHorizontal, Index: 0})...)
	numbers = append(numbers, cellsOf(g, model.Pattern{Kind: model.PatternVertical, Index: 0})...)
	numbers = append(numbers, cellsOf(g, model.Pattern{Kind: model.PatternDiagonalMain})...)
	p, ok := CheckLine(g, drawnSet(numbers...))
	if !ok || p.Kind != model.PatternHorizontal || p.Index != 0 {
		t.Fatalf("expected Horizontal row 0 first, got %+v ok=%v", p, ok)
	}
}

func TestLineKinds(t *testing.T) {
	g := standardCard()
	tests := []model.Pattern{
		{Kind: model.PatternHorizontal, Index: 2},
		{Kind: model.PatternVertical, Index: 2},
		{Kind: model.PatternVertical, Index: 4},
		{Kind: model.PatternDiagonalMain},
		{Kind: model.PatternDiagonalAnti},
	}
	for _, want := range tests {
		t.Run(want.Describe(), func(t *testing.T) {
			p, ok := CheckLine(g, drawnSet(cellsOf(g, want)...))
			if !ok {
				t.Fatalf("expected win")
			}
			if p != want {
				t.Fatalf("expected %+v, got %+v", want, p)
			}
		})
	}
}

func TestFreeSpaceCountsAsMarked(t *testing.T) {
	g := standardCard()
	// Middle row has only four real numbers.
	row := cellsOf(g, model.Pattern{Kind: model.PatternHorizontal, Index: 2})
	if len(row) != 4 {
		t.Fatalf("expected 4 numbers on the middle row, got %d", len(row))
	}
	p, ok := CheckLine(g, drawnSet(row...))
	if !ok || p.Kind != model.PatternHorizontal || p.Index != 2 {
		t.Fatalf("expected middle row win, got %+v ok=%v", p, ok)
	}
}

func TestNoWin(t *testing.T) {
	g := standardCard()
	if _, ok := CheckLine(g, drawnSet(1, 16, 31, 46)); ok {
		t.Fatalf("unexpected win with incomplete row")
	}
	if _, ok := CheckLine(g, nil); ok {
		t.Fatalf("unexpected win with nothing drawn")
	}
}

func TestFullMode(t *testing.T) {
	g := standardCard()
	all := g.Values()
	drawn := drawnSet(all...)
	if p, ok := Check(g, drawn, model.WinModeFull); !ok || p.Kind != model.PatternFull {
		t.Fatalf("expected full win, got %+v ok=%v", p, ok)
	}
	for _, n := range all {
		delete(drawn, n)
		if _, ok := Check(g, drawn, model.WinModeFull); ok {
			t.Fatalf("expected no win after removing %d", n)
		}
		drawn[n] = struct{}{}
	}
}

func TestFullModeIgnoresLines(t *testing.T) {
	g := standardCard()
	drawn := drawnSet(1, 16, 31, 46, 61)
	if _, ok := Check(g, drawn, model.WinModeFull); ok {
		t.Fatalf("full mode must ignore completed lines")
	}
	if _, ok := Check(g, drawn, model.WinModeLine); !ok {
		t.Fatalf("line mode should see the completed row")
	}
}

func TestFirstWinnerReportsFirstCardOnly(t *testing.T) {
	g := standardCard()
	cards := []model.Card{
		{ID: "none", Numbers: shift(g, 100)},
		{ID: "a", Numbers: g},
		{ID: "b", Numbers: g},
	}
	w, ok := FirstWinner(cards, drawnSet(1, 16, 31, 46, 61), model.WinModeLine)
	if !ok {
		t.Fatalf("expected a winner")
	}
	if w.CardID != "a" {
		t.Fatalf("expected card a, got %s", w.CardID)
	}
	if _, ok := FirstWinner(nil, drawnSet(1), model.WinModeLine); ok {
		t.Fatalf("no cards cannot win")
	}
}

func TestNotification(t *testing.T) {
	n := Notification(model.Win{CardID: "7", Pattern: model.Pattern{Kind: model.PatternVertical, Index: 1}})
	if n.Title != "BINGO!" {
		t.Fatalf("unexpected title %q", n.Title)
	}
	if !strings.Contains(n.Message, "card #7") || !strings.Contains(n.Message, "Vertical (column 2)") {
		t.Fatalf("unexpected message %q", n.Message)
	}
}

func shift(g model.Grid, by int) model.Grid {
	for row := 0; row < model.GridSize; row++ {
		for col := 0; col < model.GridSize; col++ {
			if !model.IsFree(row, col) {
				g[row][col] += by
			}
		}
	}
	return g
}
