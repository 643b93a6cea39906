// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// GridSize is the number of rows and columns on a card.
	GridSize = 5
	// FreeRow and FreeCol locate the free space.
	FreeRow = 2
	FreeCol = 2
	// FreeSpace is the value stored in the free cell.
	FreeSpace = 0

	DefaultMaxNumber = 75
	MinMaxNumber     = 25
	MaxMaxNumber     = 99
)

// Grid is a 5x5 card matrix indexed [row][col].
type Grid [GridSize][GridSize]int

// IsFree reports whether (row, col) is the free space.
func IsFree(row, col int) bool {
	return row == FreeRow && col == FreeCol
}

// Values returns the 24 non-free cells in row-major order.
func (g Grid) Values() []int {
	out := make([]int, 0, GridSize*GridSize-1)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if IsFree(row, col) {
				continue
			}
			out = append(out, g[row][col])
		}
	}
	return out
}

// Card is a tracked bingo card.
type Card struct {
	ID      string
	Numbers Grid
}

// WinMode selects which patterns count as a win.
type WinMode string

const (
	WinModeLine WinMode = "line"
	WinModeFull WinMode = "full"
)

// ParseWinMode validates a win mode string.
func ParseWinMode(s string) (WinMode, error) {
	switch WinMode(strings.ToLower(strings.TrimSpace(s))) {
	case WinModeLine:
		return WinModeLine, nil
	case WinModeFull:
		return WinModeFull, nil
	}
	return "", fmt.Errorf("unknown win mode %q (want line or full)", s)
}

// SortMode orders the draw history for display only.
type SortMode string

const (
	SortHistory   SortMode = "history"
	SortAscending SortMode = "asc"
)

// ParseSortMode validates a sort mode string. "ascending" is accepted as an alias.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SortHistory):
		return SortHistory, nil
	case string(SortAscending), "ascending":
		return SortAscending, nil
	}
	return "", fmt.Errorf("unknown sort mode %q (want history or asc)", s)
}

// Config defines game settings.
type Config struct {
	MaxNumber int
	WinMode   WinMode
	SortMode  SortMode
}

// DefaultConfig returns the 75-ball line game.
func DefaultConfig() Config {
	return Config{
		MaxNumber: DefaultMaxNumber,
		WinMode:   WinModeLine,
		SortMode:  SortHistory,
	}
}

// PatternKind names a winning pattern.
type PatternKind string

const (
	PatternHorizontal   PatternKind = "Horizontal"
	PatternVertical     PatternKind = "Vertical"
	PatternDiagonalMain PatternKind = "Diagonal-Main"
	PatternDiagonalAnti PatternKind = "Diagonal-Anti"
	PatternFull         PatternKind = "Full"
)

// Pattern identifies a winning line. Index is the row or column for
// Horizontal/Vertical and 0 otherwise.
type Pattern struct {
	Kind  PatternKind
	Index int
}

// Cells returns the (row, col) positions covered by the pattern.
func (p Pattern) Cells() [][2]int {
	cells := make([][2]int, 0, GridSize*GridSize)
	switch p.Kind {
	case PatternHorizontal:
		for col := 0; col < GridSize; col++ {
			cells = append(cells, [2]int{p.Index, col})
		}
	case PatternVertical:
		for row := 0; row < GridSize; row++ {
			cells = append(cells, [2]int{row, p.Index})
		}
	case PatternDiagonalMain:
		for i := 0; i < GridSize; i++ {
			cells = append(cells, [2]int{i, i})
		}
	case PatternDiagonalAnti:
		for i := 0; i < GridSize; i++ {
			cells = append(cells, [2]int{i, GridSize - 1 - i})
		}
	case PatternFull:
		for row := 0; row < GridSize; row++ {
			for col := 0; col < GridSize; col++ {
				cells = append(cells, [2]int{row, col})
			}
		}
	}
	return cells
}

// Describe renders the pattern for people; rows and columns are 1-based.
func (p Pattern) Describe() string {
	switch p.Kind {
	case PatternHorizontal:
		return fmt.Sprintf("Horizontal (row %d)", p.Index+1)
	case PatternVertical:
		return fmt.Sprintf("Vertical (column %d)", p.Index+1)
	case PatternDiagonalMain:
		return "Diagonal (main)"
	case PatternDiagonalAnti:
		return "Diagonal (anti)"
	case PatternFull:
		return "Full card"
	}
	return string(p.Kind)
}

// Win is the first winning card found by the detector.
type Win struct {
	CardID  string
	Pattern Pattern
}

// Notification is the payload a UI shows when a win is detected.
type Notification struct {
	Title   string
	Message string
}

// DrawnEntry pairs a drawn number with its position in the draw history.
type DrawnEntry struct {
	Index  int
	Number int
}

// WinRecord is a logged win.
type WinRecord struct {
	ID         string
	CardID     string
	Kind       PatternKind
	Index      int
	WinMode    WinMode
	DrawCount  int
	LastNumber int
	RecordedAt time.Time
}
