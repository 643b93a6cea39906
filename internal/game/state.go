// Package game holds the bingo game state and the operations a UI calls.
package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/tuibingo/internal/errs"
	"github.com/verte-zerg/tuibingo/internal/generator"
	"github.com/verte-zerg/tuibingo/internal/model"
	"github.com/verte-zerg/tuibingo/internal/pool"
	"github.com/verte-zerg/tuibingo/internal/win"
)

// State aggregates cards, draws and configuration. It is not safe for
// concurrent use; callers serialize operations.
type State struct {
	cfg   model.Config
	cards []model.Card
	pool  *pool.Pool
	gen   *generator.Generator
}

// DrawResult is returned by operations that add a number to the history.
type DrawResult struct {
	Number int
	Win    *model.Win
}

// EditResult is returned by EditDrawn.
type EditResult struct {
	Index    int
	Previous int
	Number   int
	Win      *model.Win
}

// New returns an empty game with the given configuration.
func New(cfg model.Config, gen *generator.Generator) (*State, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if gen == nil {
		gen = generator.New()
	}
	return &State{
		cfg:  cfg,
		pool: pool.New(cfg.MaxNumber),
		gen:  gen,
	}, nil
}

func validateConfig(cfg model.Config) error {
	if err := validateMaxNumber(cfg.MaxNumber); err != nil {
		return err
	}
	if _, err := model.ParseWinMode(string(cfg.WinMode)); err != nil {
		return errs.New(errs.CodeValidation, err.Error())
	}
	if _, err := model.ParseSortMode(string(cfg.SortMode)); err != nil {
		return errs.New(errs.CodeValidation, err.Error())
	}
	return nil
}

func validateMaxNumber(n int) error {
	if n < model.MinMaxNumber || n > model.MaxMaxNumber {
		return errs.WithMetadata(errs.CodeOutOfRange,
			fmt.Sprintf("max number must be between %d and %d", model.MinMaxNumber, model.MaxMaxNumber),
			map[string]string{"max": fmt.Sprint(n)})
	}
	return nil
}

// Config returns the current configuration.
func (s *State) Config() model.Config {
	return s.cfg
}

// Cards returns the tracked cards in insertion order.
func (s *State) Cards() []model.Card {
	return append([]model.Card(nil), s.cards...)
}

// Card looks up a card by id.
func (s *State) Card(id string) (model.Card, bool) {
	if idx := s.cardIndex(id); idx >= 0 {
		return s.cards[idx], true
	}
	return model.Card{}, false
}

func (s *State) cardIndex(id string) int {
	for i, c := range s.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func normalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errs.New(errs.CodeValidation, "card id must not be empty")
	}
	return id, nil
}

func (s *State) checkNewID(id string) (string, error) {
	id, err := normalizeID(id)
	if err != nil {
		return "", err
	}
	if s.cardIndex(id) >= 0 {
		return "", errs.WithMetadata(errs.CodeDuplicateID,
			fmt.Sprintf("a card with id %q already exists", id),
			map[string]string{"id": id})
	}
	return id, nil
}

// AddCardAuto generates a card and appends it.
func (s *State) AddCardAuto(id string) (model.Card, error) {
	id, err := s.checkNewID(id)
	if err != nil {
		return model.Card{}, err
	}
	grid, err := s.gen.GenerateCard(s.cfg.MaxNumber)
	if err != nil {
		return model.Card{}, err
	}
	card := model.Card{ID: id, Numbers: grid}
	s.cards = append(s.cards, card)
	return card, nil
}

// AddCardManual validates a hand-entered grid and appends it.
func (s *State) AddCardManual(id string, grid model.Grid) (model.Card, error) {
	id, err := s.checkNewID(id)
	if err != nil {
		return model.Card{}, err
	}
	grid, err = ValidateGrid(grid, s.cfg.MaxNumber)
	if err != nil {
		return model.Card{}, err
	}
	card := model.Card{ID: id, Numbers: grid}
	s.cards = append(s.cards, card)
	return card, nil
}

// EditCard replaces an existing card's grid, keeping its id and position.
func (s *State) EditCard(id string, grid model.Grid) (model.Card, error) {
	id, err := normalizeID(id)
	if err != nil {
		return model.Card{}, err
	}
	idx := s.cardIndex(id)
	if idx < 0 {
		return model.Card{}, notFound(id)
	}
	grid, err = ValidateGrid(grid, s.cfg.MaxNumber)
	if err != nil {
		return model.Card{}, err
	}
	s.cards[idx].Numbers = grid
	return s.cards[idx], nil
}

// DeleteCard removes a card.
func (s *State) DeleteCard(id string) error {
	idx := s.cardIndex(strings.TrimSpace(id))
	if idx < 0 {
		return notFound(id)
	}
	s.cards = append(s.cards[:idx], s.cards[idx+1:]...)
	return nil
}

func notFound(id string) error {
	return errs.WithMetadata(errs.CodeNotFound,
		fmt.Sprintf("card %q not found", id),
		map[string]string{"id": id})
}

// SetConfig changes the number range and win mode. A new max number resets
// the draws; cards are kept even if their numbers fall outside the new range.
// Changing only the win mode does not re-run win detection.
func (s *State) SetConfig(maxNumber int, mode model.WinMode) (bool, error) {
	if err := validateMaxNumber(maxNumber); err != nil {
		return false, err
	}
	parsed, err := model.ParseWinMode(string(mode))
	if err != nil {
		return false, errs.New(errs.CodeValidation, err.Error())
	}
	s.cfg.WinMode = parsed
	if maxNumber == s.cfg.MaxNumber {
		return false, nil
	}
	s.cfg.MaxNumber = maxNumber
	s.pool = pool.New(maxNumber)
	return true, nil
}

// SetSortMode changes how DrawnEntries orders the history.
func (s *State) SetSortMode(mode model.SortMode) error {
	parsed, err := model.ParseSortMode(string(mode))
	if err != nil {
		return errs.New(errs.CodeValidation, err.Error())
	}
	s.cfg.SortMode = parsed
	return nil
}

// DrawRandom draws an undrawn number and checks every card.
func (s *State) DrawRandom() (DrawResult, error) {
	n, err := s.pool.DrawRandom(s.gen)
	if err != nil {
		return DrawResult{}, err
	}
	return DrawResult{Number: n, Win: s.detect()}, nil
}

// MarkNumber records a number drawn outside the tool and checks every card.
func (s *State) MarkNumber(n int) (DrawResult, error) {
	if err := s.pool.Mark(n); err != nil {
		return DrawResult{}, err
	}
	return DrawResult{Number: n, Win: s.detect()}, nil
}

// EditDrawn corrects the history entry at index (0-based) and checks every card.
func (s *State) EditDrawn(index, value int) (EditResult, error) {
	old, err := s.pool.Edit(index, value)
	if err != nil {
		return EditResult{}, err
	}
	return EditResult{Index: index, Previous: old, Number: value, Win: s.detect()}, nil
}

// CheckWin runs win detection against the current state without mutating it.
func (s *State) CheckWin() (model.Win, bool) {
	return win.FirstWinner(s.cards, s.pool.Drawn(), s.cfg.WinMode)
}

func (s *State) detect() *model.Win {
	if w, ok := s.CheckWin(); ok {
		return &w
	}
	return nil
}

// ResetGame clears the draws and keeps the cards.
func (s *State) ResetGame() {
	s.pool.Reset()
}

// History returns the drawn numbers in draw order.
func (s *State) History() []int {
	return s.pool.History()
}

// Available returns the undrawn numbers, ascending.
func (s *State) Available() []int {
	return s.pool.Available()
}

// Drawn returns the drawn numbers as a set.
func (s *State) Drawn() map[int]struct{} {
	return s.pool.Drawn()
}

// IsDrawn reports whether n has been drawn.
func (s *State) IsDrawn(n int) bool {
	return s.pool.Contains(n)
}

// DrawnEntries returns the history with original positions, ordered by the
// configured sort mode.
func (s *State) DrawnEntries() []model.DrawnEntry {
	history := s.pool.History()
	entries := make([]model.DrawnEntry, len(history))
	for i, n := range history {
		entries[i] = model.DrawnEntry{Index: i, Number: n}
	}
	if s.cfg.SortMode == model.SortAscending {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Number < entries[j].Number
		})
	}
	return entries
}
