// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuibingo/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeFormat is fixed-width so recorded_at sorts chronologically as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for the saved game and the win log.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS game_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS wins (
			id TEXT PRIMARY KEY,
			card_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			line_index INTEGER NOT NULL,
			win_mode TEXT NOT NULL,
			draw_count INTEGER NOT NULL,
			last_number INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_wins_recorded_at ON wins(recorded_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns the value saved under key. The boolean is false when
// nothing has been saved yet.
func (s *Store) LoadState(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM game_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// SaveState writes value under key, replacing any previous value.
func (s *Store) SaveState(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO game_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), s.now().UTC().Format(timeFormat))
	return err
}

// RecordWin appends a win to the log and returns its id. ID and RecordedAt
// are filled in when empty.
func (s *Store) RecordWin(ctx context.Context, rec model.WinRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wins (id, card_id, kind, line_index, win_mode, draw_count, last_number, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CardID,
		string(rec.Kind),
		rec.Index,
		string(rec.WinMode),
		rec.DrawCount,
		rec.LastNumber,
		rec.RecordedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// ListWins returns logged wins, newest first. limit <= 0 returns all.
func (s *Store) ListWins(ctx context.Context, limit int) ([]model.WinRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, card_id, kind, line_index, win_mode, draw_count, last_number, recorded_at
		 FROM wins
		 ORDER BY recorded_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.WinRecord
	for rows.Next() {
		var rec model.WinRecord
		var kind, mode, recordedAt string
		if err := rows.Scan(&rec.ID, &rec.CardID, &kind, &rec.Index, &mode, &rec.DrawCount, &rec.LastNumber, &recordedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeFormat, recordedAt)
		if err != nil {
			return nil, err
		}
		rec.Kind = model.PatternKind(kind)
		rec.WinMode = model.WinMode(mode)
		rec.RecordedAt = parsed
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ClearWins deletes the whole win log.
func (s *Store) ClearWins(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM wins`)
	return err
}
