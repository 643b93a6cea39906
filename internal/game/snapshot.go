package game

import (
	"encoding/json"
	"fmt"

	"github.com/verte-zerg/tuibingo/internal/generator"
	"github.com/verte-zerg/tuibingo/internal/model"
	"github.com/verte-zerg/tuibingo/internal/pool"
)

// StateKey is the key the serialized game is stored under.
const StateKey = "bingoGame"

type cardRecord struct {
	ID      string  `json:"id"`
	Numbers [][]int `json:"numbers"`
}

type snapshot struct {
	Cards        []cardRecord `json:"cards"`
	DrawnNumbers []int        `json:"drawnNumbers"`
	MaxNumber    int          `json:"maxNumber"`
	BingoType    string       `json:"bingoType"`
	SortMode     string       `json:"sortMode"`
}

// rawSnapshot decodes each field on its own so one bad field does not discard
// the rest.
type rawSnapshot struct {
	Cards        json.RawMessage `json:"cards"`
	DrawnNumbers json.RawMessage `json:"drawnNumbers"`
	MaxNumber    json.RawMessage `json:"maxNumber"`
	BingoType    json.RawMessage `json:"bingoType"`
	SortMode     json.RawMessage `json:"sortMode"`
}

// Marshal serializes the game. The available pool is not stored.
func Marshal(s *State) ([]byte, error) {
	snap := snapshot{
		Cards:        make([]cardRecord, 0, len(s.cards)),
		DrawnNumbers: s.pool.History(),
		MaxNumber:    s.cfg.MaxNumber,
		BingoType:    string(s.cfg.WinMode),
		SortMode:     string(s.cfg.SortMode),
	}
	if snap.DrawnNumbers == nil {
		snap.DrawnNumbers = []int{}
	}
	for _, c := range s.cards {
		rows := make([][]int, model.GridSize)
		for row := 0; row < model.GridSize; row++ {
			rows[row] = append([]int(nil), c.Numbers[row][:]...)
		}
		snap.Cards = append(snap.Cards, cardRecord{ID: c.ID, Numbers: rows})
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode game: %w", err)
	}
	return data, nil
}

// Restore rebuilds a game from serialized data. It never fails: a malformed
// record yields a fresh game with defaults, and malformed fields fall back
// individually. The returned warnings describe what was discarded.
func Restore(data []byte, defaults model.Config, gen *generator.Generator) (*State, []string) {
	if err := validateConfig(defaults); err != nil {
		defaults = model.DefaultConfig()
	}
	if gen == nil {
		gen = generator.New()
	}
	s := &State{cfg: defaults, gen: gen}
	var warnings []string
	warnf := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	var raw rawSnapshot
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			warnf("saved game is malformed, starting fresh: %v", err)
			raw = rawSnapshot{}
		}
	}

	if len(raw.MaxNumber) > 0 {
		var n int
		if err := json.Unmarshal(raw.MaxNumber, &n); err != nil || validateMaxNumber(n) != nil {
			warnf("ignoring invalid maxNumber %s", string(raw.MaxNumber))
		} else {
			s.cfg.MaxNumber = n
		}
	}
	if len(raw.BingoType) > 0 {
		mode, err := decodeEnum(raw.BingoType, model.ParseWinMode)
		if err != nil {
			warnf("ignoring invalid bingoType %s", string(raw.BingoType))
		} else {
			s.cfg.WinMode = mode
		}
	}
	if len(raw.SortMode) > 0 {
		mode, err := decodeEnum(raw.SortMode, model.ParseSortMode)
		if err != nil {
			warnf("ignoring invalid sortMode %s", string(raw.SortMode))
		} else {
			s.cfg.SortMode = mode
		}
	}

	s.cards = restoreCards(raw.Cards, warnf)
	history := restoreHistory(raw.DrawnNumbers, s.cfg.MaxNumber, warnf)
	p, err := pool.Restore(s.cfg.MaxNumber, history)
	if err != nil {
		warnf("discarding draw history: %v", err)
		p = pool.New(s.cfg.MaxNumber)
	}
	s.pool = p
	return s, warnings
}

func decodeEnum[T any](raw json.RawMessage, parse func(string) (T, error)) (T, error) {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, err
	}
	return parse(v)
}

func restoreCards(raw json.RawMessage, warnf func(string, ...any)) []model.Card {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		warnf("ignoring malformed cards: %v", err)
		return nil
	}
	cards := make([]model.Card, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		var rec cardRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			warnf("dropping card %d: %v", i+1, err)
			continue
		}
		id, err := normalizeID(rec.ID)
		if err != nil {
			warnf("dropping card %d: empty id", i+1)
			continue
		}
		if _, ok := seen[id]; ok {
			warnf("dropping card %q: duplicate id", id)
			continue
		}
		grid, ok := gridFromRows(rec.Numbers)
		if !ok {
			warnf("dropping card %q: numbers are not a 5x5 grid", id)
			continue
		}
		seen[id] = struct{}{}
		cards = append(cards, model.Card{ID: id, Numbers: grid})
	}
	return cards
}

func gridFromRows(rows [][]int) (model.Grid, bool) {
	var grid model.Grid
	if len(rows) != model.GridSize {
		return grid, false
	}
	for row, values := range rows {
		if len(values) != model.GridSize {
			return model.Grid{}, false
		}
		copy(grid[row][:], values)
	}
	grid[model.FreeRow][model.FreeCol] = model.FreeSpace
	return grid, true
}

func restoreHistory(raw json.RawMessage, maxNumber int, warnf func(string, ...any)) []int {
	if len(raw) == 0 {
		return nil
	}
	var numbers []int
	if err := json.Unmarshal(raw, &numbers); err != nil {
		warnf("ignoring malformed drawnNumbers: %v", err)
		return nil
	}
	history := make([]int, 0, len(numbers))
	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		if n < 1 || n > maxNumber {
			warnf("dropping drawn number %d outside 1-%d", n, maxNumber)
			continue
		}
		if _, ok := seen[n]; ok {
			warnf("dropping repeated drawn number %d", n)
			continue
		}
		seen[n] = struct{}{}
		history = append(history, n)
	}
	return history
}
