package board

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/verte-zerg/tuibingo/internal/model"
)

const timeLayout = "2006-01-02 15:04"

var (
	tableBorder      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	tableHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8")).Padding(0, 1)
)

// WinRows converts win records into table rows: when, card, pattern, mode,
// draws, and the last number drawn.
func WinRows(records []model.WinRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		pattern := model.Pattern{Kind: rec.Kind, Index: rec.Index}
		rows = append(rows, []string{
			rec.RecordedAt.Local().Format(timeLayout),
			"#" + rec.CardID,
			pattern.Describe(),
			string(rec.WinMode),
			fmt.Sprintf("%d", rec.DrawCount),
			fmt.Sprintf("%d", rec.LastNumber),
		})
	}
	return rows
}

// WinHeaders are the column titles used by RenderWins.
var WinHeaders = []string{"When", "Card", "Pattern", "Mode", "Draws", "Last"}

// RenderWins renders the win log as a bordered table.
func RenderWins(records []model.WinRecord) string {
	if len(records) == 0 {
		return "No wins recorded."
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		BorderHeader(true).
		BorderRow(false).
		Headers(WinHeaders...).
		Rows(WinRows(records)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	return t.Render()
}
