// Package board renders cards, draws, and the win log for terminals.
package board

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/tuibingo/internal/model"
	"github.com/verte-zerg/tuibingo/internal/win"
)

const (
	cellWidth           = 6
	cardGap             = 2
	terminalWidthBackup = 80
)

var headerLetters = [model.GridSize]string{"B", "I", "N", "G", "O"}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	markedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	winStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true).Underline(true)
	freeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	chipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	cardBorder   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	winningBorder = cardBorder.Copy().BorderForeground(lipgloss.Color("#C89A3A"))
	bannerStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.DoubleBorder(), true).
			BorderForeground(lipgloss.Color("#FF4D4F"))
)

type cellState int

const (
	cellPending cellState = iota
	cellMarked
	cellWinning
	cellFree
)

// RenderCard draws a single card. Drawn numbers are marked and, when pattern
// is non-nil, its cells are emphasised. Without color, marked cells are
// wrapped in parentheses and winning cells in brackets.
func RenderCard(card model.Card, drawn map[int]struct{}, pattern *model.Pattern, color bool) string {
	winning := map[[2]int]bool{}
	if pattern != nil {
		for _, cell := range pattern.Cells() {
			winning[cell] = true
		}
	}

	lines := make([]string, 0, model.GridSize+2)
	title := fmt.Sprintf("Card #%s", card.ID)
	if color {
		title = titleStyle.Render(title)
	}
	lines = append(lines, title)

	var header strings.Builder
	for _, letter := range headerLetters {
		cell := center(letter, cellWidth)
		if color {
			cell = headerStyle.Render(cell)
		}
		header.WriteString(cell)
	}
	lines = append(lines, header.String())

	for row := 0; row < model.GridSize; row++ {
		var b strings.Builder
		for col := 0; col < model.GridSize; col++ {
			value := card.Numbers[row][col]
			state := cellPending
			switch {
			case model.IsFree(row, col):
				state = cellFree
				if winning[[2]int{row, col}] {
					state = cellWinning
				}
			case winning[[2]int{row, col}]:
				state = cellWinning
			case win.IsMarked(value, drawn):
				state = cellMarked
			}
			b.WriteString(renderCell(value, state, model.IsFree(row, col), color))
		}
		lines = append(lines, b.String())
	}
	body := strings.Join(lines, "\n")
	if !color {
		return body
	}
	if pattern != nil {
		return winningBorder.Render(body)
	}
	return cardBorder.Render(body)
}

func renderCell(value int, state cellState, free, color bool) string {
	label := fmt.Sprintf("%d", value)
	if free {
		label = "FREE"
	}
	if !color {
		switch state {
		case cellMarked:
			label = "(" + label + ")"
		case cellWinning:
			label = "[" + label + "]"
		}
		return center(label, cellWidth)
	}
	cell := center(label, cellWidth)
	switch state {
	case cellMarked:
		return markedStyle.Render(cell)
	case cellWinning:
		return winStyle.Render(cell)
	case cellFree:
		return freeStyle.Render(cell)
	default:
		return pendingStyle.Render(cell)
	}
}

// RenderCards lays cards out side by side, wrapping to new rows when width
// is exceeded. The winning card, if any, gets its pattern highlighted.
func RenderCards(cards []model.Card, drawn map[int]struct{}, w *model.Win, width int, color bool) string {
	if len(cards) == 0 {
		return "No cards yet."
	}
	if width <= 0 {
		width = terminalWidthBackup
	}
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		var pattern *model.Pattern
		if w != nil && w.CardID == card.ID {
			p := w.Pattern
			pattern = &p
		}
		rendered = append(rendered, RenderCard(card, drawn, pattern, color))
	}

	var rows []string
	var row []string
	rowWidth := 0
	for _, block := range rendered {
		blockWidth := lipgloss.Width(block)
		next := rowWidth + blockWidth
		if len(row) > 0 {
			next += cardGap
		}
		if len(row) > 0 && next > width {
			rows = append(rows, joinRow(row))
			row = nil
			next = blockWidth
		}
		row = append(row, block)
		rowWidth = next
	}
	if len(row) > 0 {
		rows = append(rows, joinRow(row))
	}
	return strings.Join(rows, "\n\n")
}

func joinRow(blocks []string) string {
	spaced := make([]string, 0, len(blocks)*2)
	gap := strings.Repeat(" ", cardGap)
	for i, block := range blocks {
		if i > 0 {
			spaced = append(spaced, gap)
		}
		spaced = append(spaced, block)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}

// RenderDraws lists drawn numbers as #index:number chips with 1-based indexes.
func RenderDraws(entries []model.DrawnEntry, color bool) string {
	if len(entries) == 0 {
		if color {
			return mutedStyle.Render("No numbers drawn yet.")
		}
		return "No numbers drawn yet."
	}
	return strings.Join(DrawChips(entries, color), "  ")
}

// DrawChips renders each entry as a #index:number chip.
func DrawChips(entries []model.DrawnEntry, color bool) []string {
	chips := make([]string, 0, len(entries))
	for _, entry := range entries {
		chip := fmt.Sprintf("#%d:%d", entry.Index+1, entry.Number)
		if color {
			chip = chipStyle.Render(chip)
		}
		chips = append(chips, chip)
	}
	return chips
}

// RenderNotification draws the win banner.
func RenderNotification(n model.Notification, color bool) string {
	body := n.Title + "\n" + n.Message
	if !color {
		return body
	}
	return bannerStyle.Render(body)
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// TerminalWidth returns the stdout width or a fallback of 80.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + runewidth.FillRight(s, width-left)
}
