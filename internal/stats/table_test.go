package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Pattern", "Wins", "Share"}
	rows := [][]string{
		{"Horizontal", "12", "60.0%"},
		{"Full", "3", "15.0%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Pattern    Wins Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Horizontal   12 60.0%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Full          3 15.0%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("番号"); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
}
