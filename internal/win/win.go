// Package win detects winning patterns on bingo cards.
package win

import (
	"fmt"

	"github.com/verte-zerg/tuibingo/internal/model"
)

// lineOrder is the fixed evaluation order for line mode: rows, columns,
// main diagonal, anti diagonal.
var lineOrder = buildLineOrder()

func buildLineOrder() []model.Pattern {
	order := make([]model.Pattern, 0, 2*model.GridSize+2)
	for row := 0; row < model.GridSize; row++ {
		order = append(order, model.Pattern{Kind: model.PatternHorizontal, Index: row})
	}
	for col := 0; col < model.GridSize; col++ {
		order = append(order, model.Pattern{Kind: model.PatternVertical, Index: col})
	}
	order = append(order,
		model.Pattern{Kind: model.PatternDiagonalMain},
		model.Pattern{Kind: model.PatternDiagonalAnti},
	)
	return order
}

// IsMarked reports whether a cell value counts as marked.
func IsMarked(value int, drawn map[int]struct{}) bool {
	if value == model.FreeSpace {
		return true
	}
	_, ok := drawn[value]
	return ok
}

func complete(grid model.Grid, cells [][2]int, drawn map[int]struct{}) bool {
	for _, cell := range cells {
		row, col := cell[0], cell[1]
		if model.IsFree(row, col) {
			continue
		}
		if !IsMarked(grid[row][col], drawn) {
			return false
		}
	}
	return true
}

// CheckLine returns the first complete line in evaluation order.
func CheckLine(grid model.Grid, drawn map[int]struct{}) (model.Pattern, bool) {
	for _, p := range lineOrder {
		if complete(grid, p.Cells(), drawn) {
			return p, true
		}
	}
	return model.Pattern{}, false
}

// CheckFull reports a win when every non-free cell is drawn.
func CheckFull(grid model.Grid, drawn map[int]struct{}) (model.Pattern, bool) {
	full := model.Pattern{Kind: model.PatternFull}
	if complete(grid, full.Cells(), drawn) {
		return full, true
	}
	return model.Pattern{}, false
}

// Check evaluates a card under the given win mode.
func Check(grid model.Grid, drawn map[int]struct{}, mode model.WinMode) (model.Pattern, bool) {
	if mode == model.WinModeFull {
		return CheckFull(grid, drawn)
	}
	return CheckLine(grid, drawn)
}

// FirstWinner checks cards in order and returns only the first winner.
// Simultaneous winners on later cards are not reported.
func FirstWinner(cards []model.Card, drawn map[int]struct{}, mode model.WinMode) (model.Win, bool) {
	for _, card := range cards {
		if p, ok := Check(card.Numbers, drawn, mode); ok {
			return model.Win{CardID: card.ID, Pattern: p}, true
		}
	}
	return model.Win{}, false
}

// Notification builds the message shown to the player for a win.
func Notification(w model.Win) model.Notification {
	return model.Notification{
		Title:   "BINGO!",
		Message: fmt.Sprintf("Bingo on card #%s!\nType: %s", w.CardID, w.Pattern.Describe()),
	}
}
