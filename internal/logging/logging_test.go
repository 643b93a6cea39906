package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Str("card", "7").Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "card=") {
		t.Fatalf("expected warn message with field, got %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestParseLevelDefault(t *testing.T) {
	lvl, err := ParseLevel("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lvl.String() != "info" {
		t.Fatalf("expected info, got %s", lvl)
	}
}

func TestOpenFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tuibingo.log")
	logger, closer, err := OpenFile(path, "debug")
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	logger.Debug().Int("number", 42).Msg("drawn")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if entry["message"] != "drawn" || entry["number"] != float64(42) {
		t.Fatalf("unexpected entry %v", entry)
	}
}
