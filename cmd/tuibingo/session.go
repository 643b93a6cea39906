package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuibingo/internal/game"
	"github.com/verte-zerg/tuibingo/internal/generator"
	"github.com/verte-zerg/tuibingo/internal/logging"
	"github.com/verte-zerg/tuibingo/internal/model"
	"github.com/verte-zerg/tuibingo/internal/store"
)

// session is an opened database with the saved game restored.
type session struct {
	settings settings
	store    *store.Store
	state    *game.State
	logger   zerolog.Logger
	gen      *generator.Generator
	logClose io.Closer
}

// openSession resolves settings, opens the store, and restores the saved
// game. The TUI logs to a file; subcommands log to stderr.
func openSession(cmd *cobra.Command, toFile bool) (*session, error) {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}
	s := &session{settings: cfg}
	if toFile {
		logger, closer, err := logging.OpenFile(cfg.logFile, cfg.logLevel)
		if err != nil {
			return nil, err
		}
		s.logger = logger
		s.logClose = closer
	} else {
		logger, err := logging.New(os.Stderr, cfg.logLevel)
		if err != nil {
			return nil, err
		}
		s.logger = logger
	}

	s.gen, err = newGenerator(cfg.seed)
	if err != nil {
		s.close()
		return nil, err
	}

	st, err := store.Open(cfg.dbPath)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	s.store = st

	if err := s.load(cmd.Context()); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func newGenerator(seed *int64) (*generator.Generator, error) {
	if seed != nil {
		return generator.NewWithSeed(*seed), nil
	}
	v, err := generator.NewSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to seed generator: %w", err)
	}
	return generator.NewWithSeed(v), nil
}

func (s *session) load(ctx context.Context) error {
	data, ok, err := s.store.LoadState(ctx, game.StateKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load saved game; starting fresh")
		ok = false
	}
	if !ok {
		state, err := game.New(s.settings.defaults, s.gen)
		if err != nil {
			return err
		}
		s.state = state
		return nil
	}
	state, warnings := game.Restore(data, s.settings.defaults, s.gen)
	for _, w := range warnings {
		s.logger.Warn().Str("detail", w).Msg("saved game partially restored")
	}
	s.state = state
	return nil
}

// applyGameFlags pushes explicitly set root game flags onto the restored game.
func (s *session) applyGameFlags(cmd *cobra.Command) error {
	flags := cmd.Root().Flags()
	changed := false
	if flags.Changed("max-number") || flags.Changed("win-mode") {
		cfg := s.state.Config()
		maxNumber, mode := cfg.MaxNumber, cfg.WinMode
		if flags.Changed("max-number") {
			maxNumber = s.settings.defaults.MaxNumber
		}
		if flags.Changed("win-mode") {
			mode = s.settings.defaults.WinMode
		}
		reset, err := s.state.SetConfig(maxNumber, mode)
		if err != nil {
			return err
		}
		if reset {
			s.logger.Info().Int("max", maxNumber).Msg("max number changed; draws reset")
		}
		changed = true
	}
	if flags.Changed("sort-mode") {
		if err := s.state.SetSortMode(s.settings.defaults.SortMode); err != nil {
			return err
		}
		changed = true
	}
	if !changed {
		return nil
	}
	return s.save(cmd.Context())
}

func (s *session) save(ctx context.Context) error {
	data, err := game.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("failed to encode game: %w", err)
	}
	if err := s.store.SaveState(ctx, game.StateKey, data); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// recordWin logs after when it differs from the win that held before the action.
func (s *session) recordWin(ctx context.Context, before, after *model.Win, lastNumber int) error {
	if after == nil {
		return nil
	}
	if before != nil && *before == *after {
		return nil
	}
	rec := model.WinRecord{
		CardID:     after.CardID,
		Kind:       after.Pattern.Kind,
		Index:      after.Pattern.Index,
		WinMode:    s.state.Config().WinMode,
		DrawCount:  len(s.state.History()),
		LastNumber: lastNumber,
	}
	if _, err := s.store.RecordWin(ctx, rec); err != nil {
		return fmt.Errorf("failed to record win: %w", err)
	}
	s.logger.Info().Str("card", after.CardID).Str("pattern", after.Pattern.Describe()).Msg("bingo")
	return nil
}

func (s *session) currentWin() *model.Win {
	if w, ok := s.state.CheckWin(); ok {
		return &w
	}
	return nil
}

func (s *session) close() {
	if s.store != nil {
		if cerr := s.store.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	if s.logClose != nil {
		if cerr := s.logClose.Close(); cerr != nil {
			// Best-effort log file close.
			_ = cerr
		}
	}
}
