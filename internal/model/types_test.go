package model

import "testing"

func TestGridValuesSkipsFreeSpace(t *testing.T) {
	var g Grid
	n := 1
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			g[row][col] = n
			n++
		}
	}
	values := g.Values()
	if len(values) != 24 {
		t.Fatalf("expected 24 values, got %d", len(values))
	}
	for _, v := range values {
		if v == 13 {
			t.Fatalf("free cell value leaked into values")
		}
	}
}

func TestParseSortModeAliases(t *testing.T) {
	cases := map[string]SortMode{
		"history":   SortHistory,
		"asc":       SortAscending,
		"Ascending": SortAscending,
	}
	for in, want := range cases {
		got, err := ParseSortMode(in)
		if err != nil {
			t.Fatalf("ParseSortMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseSortMode(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseSortMode("desc"); err == nil {
		t.Fatalf("expected error for unknown sort mode")
	}
}

func TestParseWinMode(t *testing.T) {
	if m, err := ParseWinMode(" FULL "); err != nil || m != WinModeFull {
		t.Fatalf("unexpected result %q, %v", m, err)
	}
	if _, err := ParseWinMode("corners"); err == nil {
		t.Fatalf("expected error for unknown win mode")
	}
}

func TestPatternCellsAndDescribe(t *testing.T) {
	tests := []struct {
		p     Pattern
		cells int
		first [2]int
		desc  string
	}{
		{Pattern{Kind: PatternHorizontal, Index: 0}, 5, [2]int{0, 0}, "Horizontal (row 1)"},
		{Pattern{Kind: PatternVertical, Index: 3}, 5, [2]int{0, 3}, "Vertical (column 4)"},
		{Pattern{Kind: PatternDiagonalMain}, 5, [2]int{0, 0}, "Diagonal (main)"},
		{Pattern{Kind: PatternDiagonalAnti}, 5, [2]int{0, 4}, "Diagonal (anti)"},
		{Pattern{Kind: PatternFull}, 25, [2]int{0, 0}, "Full card"},
	}
	for _, tt := range tests {
		cells := tt.p.Cells()
		if len(cells) != tt.cells {
			t.Fatalf("%s: expected %d cells, got %d", tt.p.Kind, tt.cells, len(cells))
		}
		if cells[0] != tt.first {
			t.Fatalf("%s: expected first cell %v, got %v", tt.p.Kind, tt.first, cells[0])
		}
		if got := tt.p.Describe(); got != tt.desc {
			t.Fatalf("%s: expected %q, got %q", tt.p.Kind, tt.desc, got)
		}
	}
}
