// Package tui provides the Bubble Tea bingo interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuibingo/internal/game"
	"github.com/verte-zerg/tuibingo/internal/model"
)

const (
	tabGame = iota
	tabWins
)

const winsLimit = 200

type inputMode int

const (
	modeNormal inputMode = iota
	modePrompt
	modeConfirm
)

type action int

const (
	actionNone action = iota
	actionMark
	actionEditDraw
	actionAddAuto
	actionAddManual
	actionEditCard
	actionDelete
	actionReset
)

type promptText struct {
	prompt      string
	placeholder string
}

var prompts = map[action]promptText{
	actionMark:      {prompt: "Mark number: ", placeholder: "42"},
	actionEditDraw:  {prompt: "Edit draw: ", placeholder: "<index> <value>"},
	actionAddAuto:   {prompt: "New card id: ", placeholder: "7"},
	actionAddManual: {prompt: "Manual card: ", placeholder: "<id> <24 numbers>"},
	actionEditCard:  {prompt: "Edit card: ", placeholder: "<id> <24 numbers>"},
	actionDelete:    {prompt: "Delete card: ", placeholder: "<id>"},
}

// Store persists the game and the win log.
type Store interface {
	SaveState(ctx context.Context, key string, value []byte) error
	RecordWin(ctx context.Context, rec model.WinRecord) (string, error)
	ListWins(ctx context.Context, limit int) ([]model.WinRecord, error)
}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea bingo UI.
type Model struct {
	state  *game.State
	store  Store
	logger zerolog.Logger
	color  bool

	tabs      []string
	activeTab int
	viewport  viewport.Model
	winsTable table.Model
	wins      []model.WinRecord

	width  int
	height int

	mode    inputMode
	pending action
	target  string
	input   textinput.Model

	win          *model.Win
	lastLogged   *model.Win
	notification *model.Notification
	status       string
	errMsg       string
}

// NewModel constructs a bingo TUI model over an already restored game.
func NewModel(state *game.State, st Store, logger zerolog.Logger, color bool) *Model {
	m := &Model{
		state:  state,
		store:  st,
		logger: logger,
		color:  color,
		tabs:   []string{"Game", "Wins"},
	}
	m.viewport = viewport.New(0, 0)
	m.input = newPromptInput()
	m.winsTable = buildWinsTable(nil, 80, 10)
	if w, ok := state.CheckWin(); ok {
		m.win = &w
		m.lastLogged = &w
	}
	m.loadWins()
	m.refreshContent()
	return m
}

func newPromptInput() textinput.Model {
	input := textinput.New()
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refreshContent()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modePrompt:
			return m.updatePrompt(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	if m.mode == modePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "shift+tab", "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "d":
		m.draw()
	case "m":
		return m, m.startPrompt(actionMark)
	case "e":
		return m, m.startPrompt(actionEditDraw)
	case "a":
		return m, m.startPrompt(actionAddAuto)
	case "n":
		return m, m.startPrompt(actionAddManual)
	case "c":
		return m, m.startPrompt(actionEditCard)
	case "x":
		return m, m.startPrompt(actionDelete)
	case "r":
		m.startConfirm(actionReset, "")
	case "w":
		m.toggleWinMode()
	case "s":
		m.toggleSortMode()
	case "esc":
		m.notification = nil
		m.status = ""
		m.errMsg = ""
	case "g", "home":
		if m.activeTab == tabWins {
			m.winsTable.GotoTop()
		} else {
			m.viewport.GotoTop()
		}
		return m, nil
	case "G", "end":
		if m.activeTab == tabWins {
			m.winsTable.GotoBottom()
		} else {
			m.viewport.GotoBottom()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		if m.activeTab == tabWins {
			m.winsTable, cmd = m.winsTable.Update(msg)
			return m, cmd
		}
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.refreshContent()
	return m, nil
}

func (m *Model) startPrompt(act action) tea.Cmd {
	p := prompts[act]
	m.mode = modePrompt
	m.pending = act
	m.errMsg = ""
	m.input.Prompt = p.prompt
	m.input.Placeholder = p.placeholder
	m.input.SetValue("")
	return m.input.Focus()
}

func (m *Model) startConfirm(act action, target string) {
	m.mode = modeConfirm
	m.pending = act
	m.target = target
	m.errMsg = ""
}

func (m *Model) finishInput() {
	m.input.Blur()
	m.mode = modeNormal
	m.pending = actionNone
	m.target = ""
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.finishInput()
		return m, nil
	case tea.KeyEnter:
		act := m.pending
		value := strings.TrimSpace(m.input.Value())
		m.finishInput()
		if act == actionDelete {
			if _, ok := m.state.Card(value); !ok {
				m.errMsg = fmt.Sprintf("Card #%s not found.", value)
				return m, nil
			}
			m.startConfirm(actionDelete, value)
			return m, nil
		}
		m.apply(act, value)
		m.refreshContent()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	act := m.pending
	target := m.target
	m.finishInput()
	switch msg.String() {
	case "y", "Y":
		if act == actionReset {
			m.resetGame()
		} else {
			m.deleteCard(target)
		}
	default:
		m.status = "Cancelled."
	}
	m.refreshContent()
	return m, nil
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabWins {
		m.winsTable.Focus()
	} else {
		m.winsTable.Blur()
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 2
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
	m.winsTable.SetWidth(m.width)
	m.winsTable.SetHeight(maxInt(1, bodyHeight-1))
	m.input.Width = maxInt(10, m.width-lipgloss.Width(m.input.Prompt)-2)
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + headerStyle.Render(truncateLine(m.settingsSummary(), m.width))
}

func (m *Model) settingsSummary() string {
	cfg := m.state.Config()
	return fmt.Sprintf("Max %d  Mode %s  Sort %s  Cards %d  Drawn %d/%d",
		cfg.MaxNumber, cfg.WinMode, cfg.SortMode, len(m.state.Cards()), len(m.state.History()), cfg.MaxNumber)
}

func (m *Model) renderBody() string {
	if m.activeTab == tabWins {
		if len(m.wins) == 0 {
			return "No wins recorded."
		}
		return m.winsTable.View()
	}
	return m.viewport.View()
}

func (m *Model) renderHelp() string {
	if m.activeTab == tabWins {
		return headerStyle.Render(truncateLine("Nav: tab  Scroll: up/down  Draw: d  Quit: q", m.width))
	}
	help := "d draw  m mark  e edit draw  a/n add card  c edit card  x delete  r reset  w win mode  s sort  tab wins  q quit"
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	var first string
	switch m.mode {
	case modePrompt:
		first = m.input.View()
	case modeConfirm:
		first = confirmStyle.Render(m.confirmQuestion() + " (y/n)")
	default:
		first = m.renderHelp()
	}
	second := ""
	switch {
	case m.errMsg != "":
		second = errorStyle.Render(m.errMsg)
	case m.mode == modePrompt:
		second = headerStyle.Render("enter: apply  esc: cancel")
	case m.status != "":
		second = statusStyle.Render(m.status)
	}
	return first + "\n" + second
}

func (m *Model) confirmQuestion() string {
	if m.pending == actionDelete {
		return fmt.Sprintf("Delete card #%s?", m.target)
	}
	return "Reset the game? All drawn numbers will be cleared."
}
