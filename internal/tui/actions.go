package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/tuibingo/internal/board"
	"github.com/verte-zerg/tuibingo/internal/errs"
	"github.com/verte-zerg/tuibingo/internal/game"
	"github.com/verte-zerg/tuibingo/internal/model"
	"github.com/verte-zerg/tuibingo/internal/win"
)

func (m *Model) apply(act action, value string) {
	m.status = ""
	m.errMsg = ""
	switch act {
	case actionMark:
		m.mark(value)
	case actionEditDraw:
		m.editDraw(value)
	case actionAddAuto:
		m.addAuto(value)
	case actionAddManual:
		m.addManual(value)
	case actionEditCard:
		m.editCard(value)
	}
}

func (m *Model) draw() {
	m.status = ""
	m.errMsg = ""
	res, err := m.state.DrawRandom()
	if err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("Drew %d.", res.Number)
	m.logger.Debug().Int("number", res.Number).Msg("drew number")
	m.afterDraw(res.Number, res.Win)
}

func (m *Model) mark(value string) {
	n, err := strconv.Atoi(value)
	if err != nil {
		m.errMsg = "Enter a whole number."
		return
	}
	res, err := m.state.MarkNumber(n)
	if err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("Marked %d.", res.Number)
	m.logger.Debug().Int("number", res.Number).Msg("marked number")
	m.afterDraw(res.Number, res.Win)
}

func (m *Model) editDraw(value string) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		m.errMsg = "Enter <index> <value>."
		return
	}
	index, err := strconv.Atoi(fields[0])
	if err != nil {
		m.errMsg = "Index must be a whole number."
		return
	}
	number, err := strconv.Atoi(fields[1])
	if err != nil {
		m.errMsg = "Value must be a whole number."
		return
	}
	res, err := m.state.EditDrawn(index-1, number)
	if err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("Draw #%d changed from %d to %d.", index, res.Previous, res.Number)
	m.logger.Info().Int("index", index).Int("previous", res.Previous).Int("number", res.Number).Msg("edited draw")
	m.afterDraw(res.Number, res.Win)
}

func (m *Model) addAuto(id string) {
	card, err := m.state.AddCardAuto(id)
	if err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("Added card #%s.", card.ID)
	m.save()
}

func (m *Model) addManual(value string) {
	id, grid, err := parseCardInput(value)
	if err != nil {
		m.fail(err)
		return
	}
	card, err := m.state.AddCardManual(id, grid)
	if err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("Added card #%s.", card.ID)
	m.save()
}

func (m *Model) editCard(value string) {
	id, grid, err := parseCardInput(value)
	if err != nil {
		m.fail(err)
		return
	}
	card, err := m.state.EditCard(id, grid)
	if err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("Updated card #%s.", card.ID)
	if m.win != nil && m.win.CardID == card.ID {
		m.win = nil
	}
	m.save()
}

func (m *Model) deleteCard(id string) {
	if err := m.state.DeleteCard(id); err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("Deleted card #%s.", id)
	if m.win != nil && m.win.CardID == id {
		m.win = nil
		m.notification = nil
	}
	m.save()
}

func (m *Model) resetGame() {
	m.state.ResetGame()
	m.win = nil
	m.lastLogged = nil
	m.notification = nil
	m.status = "Game reset."
	m.logger.Info().Msg("game reset")
	m.save()
}

func (m *Model) toggleWinMode() {
	cfg := m.state.Config()
	next := model.WinModeFull
	if cfg.WinMode == model.WinModeFull {
		next = model.WinModeLine
	}
	if _, err := m.state.SetConfig(cfg.MaxNumber, next); err != nil {
		m.fail(err)
		return
	}
	m.win = nil
	m.status = fmt.Sprintf("Win mode: %s.", next)
	m.save()
}

func (m *Model) toggleSortMode() {
	next := model.SortAscending
	if m.state.Config().SortMode == model.SortAscending {
		next = model.SortHistory
	}
	if err := m.state.SetSortMode(next); err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("Sort: %s.", next)
	m.save()
}

func (m *Model) afterDraw(number int, w *model.Win) {
	m.save()
	if w == nil {
		m.win = nil
		return
	}
	m.announce(*w, number)
}

func (m *Model) announce(w model.Win, lastNumber int) {
	m.win = &w
	n := win.Notification(w)
	m.notification = &n
	if m.lastLogged != nil && *m.lastLogged == w {
		return
	}
	m.lastLogged = &w
	rec := model.WinRecord{
		CardID:     w.CardID,
		Kind:       w.Pattern.Kind,
		Index:      w.Pattern.Index,
		WinMode:    m.state.Config().WinMode,
		DrawCount:  len(m.state.History()),
		LastNumber: lastNumber,
		RecordedAt: time.Now(),
	}
	m.logger.Info().
		Str("card", w.CardID).
		Str("pattern", w.Pattern.Describe()).
		Int("draws", rec.DrawCount).
		Msg("bingo")
	if m.store == nil {
		return
	}
	if _, err := m.store.RecordWin(context.Background(), rec); err != nil {
		m.logger.Error().Err(err).Msg("failed to record win")
		m.errMsg = "Failed to record win."
		return
	}
	m.loadWins()
}

func (m *Model) save() {
	if m.store == nil {
		return
	}
	data, err := game.Marshal(m.state)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to encode game")
		m.errMsg = "Failed to save game."
		return
	}
	if err := m.store.SaveState(context.Background(), game.StateKey, data); err != nil {
		m.logger.Error().Err(err).Msg("failed to save game")
		m.errMsg = "Failed to save game."
	}
}

func (m *Model) loadWins() {
	if m.store == nil {
		return
	}
	wins, err := m.store.ListWins(context.Background(), winsLimit)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to load wins")
		m.errMsg = "Failed to load wins."
		return
	}
	m.wins = wins
	m.winsTable.SetRows(winRows(wins))
}

func (m *Model) fail(err error) {
	m.errMsg = userMessage(err)
	m.logger.Debug().Err(err).Str("code", string(errs.CodeOf(err))).Msg("action rejected")
}

func (m *Model) refreshContent() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	sections := make([]string, 0, 4)
	if m.notification != nil {
		sections = append(sections, board.RenderNotification(*m.notification, m.color))
	}
	sections = append(sections, board.RenderCards(m.state.Cards(), m.state.Drawn(), m.win, width, m.color))
	entries := m.state.DrawnEntries()
	drawsTitle := fmt.Sprintf("Drawn numbers (%d)", len(entries))
	if len(entries) == 0 {
		sections = append(sections, drawsTitle+"\n"+board.RenderDraws(nil, m.color))
	} else {
		sections = append(sections, drawsTitle+"\n"+wrapChips(board.DrawChips(entries, m.color), width))
	}
	m.viewport.SetContent(strings.Join(sections, "\n\n"))
}

func parseCardInput(value string) (string, model.Grid, error) {
	fields := strings.Fields(strings.NewReplacer(",", " ", ";", " ").Replace(value))
	if len(fields) < 2 {
		return "", model.Grid{}, errs.New(errs.CodeValidation, "enter a card id followed by 24 numbers")
	}
	grid, err := game.ParseGrid(fields[1:])
	if err != nil {
		return "", model.Grid{}, err
	}
	return fields[0], grid, nil
}

func userMessage(err error) string {
	var e *errs.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
