package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliEnv struct {
	dir    string
	dbPath string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("TUIBINGO_DB", "")
	t.Setenv("TUIBINGO_LOG_LEVEL", "")
	return cliEnv{dir: dir, dbPath: filepath.Join(dir, "bingo.db")}
}

func (e cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", e.dbPath, "--seed", "5", "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	if err != nil {
		t.Fatalf("tuibingo %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func rowZeroNumbers() string {
	values := make([]string, 0, 24)
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if row == 2 && col == 2 {
				continue
			}
			values = append(values, fmt.Sprint(col*15+row+1))
		}
	}
	return strings.Join(values, " ")
}

func TestCLIPlayToWin(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun(t, "card", "add", "a", "--numbers", rowZeroNumbers())
	if !strings.Contains(out, "Card #a") {
		t.Fatalf("expected card output, got:\n%s", out)
	}
	for _, n := range []string{"1", "16", "31", "46"} {
		out = env.mustRun(t, "mark", n)
		if strings.Contains(out, "BINGO!") {
			t.Fatalf("unexpected win after %s", n)
		}
	}
	out = env.mustRun(t, "mark", "61")
	if !strings.Contains(out, "BINGO!") || !strings.Contains(out, "Horizontal (row 1)") {
		t.Fatalf("expected bingo, got:\n%s", out)
	}
	env.mustRun(t, "mark", "2")

	out = env.mustRun(t, "wins")
	if strings.Count(out, "#a") != 1 {
		t.Fatalf("expected exactly one logged win:\n%s", out)
	}
	out = env.mustRun(t, "wins", "--summary")
	if !strings.Contains(out, "Wins: 1") {
		t.Fatalf("unexpected summary:\n%s", out)
	}

	if _, err := env.run(t, "", "mark", "61"); err == nil {
		t.Fatalf("expected already drawn error")
	}
}

func TestCLIDrawAndEdit(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "mark", "70")
	env.mustRun(t, "mark", "72")
	out := env.mustRun(t, "edit-draw", "2", "71")
	if !strings.Contains(out, "changed from 72 to 71") {
		t.Fatalf("unexpected edit output %q", out)
	}
	out = env.mustRun(t, "draw")
	if !strings.HasPrefix(out, "Drew ") {
		t.Fatalf("unexpected draw output %q", out)
	}
	out = env.mustRun(t, "show")
	if !strings.Contains(out, "#2:71") || !strings.Contains(out, "Drawn numbers (3/75)") {
		t.Fatalf("unexpected show output:\n%s", out)
	}
	if _, err := env.run(t, "", "edit-draw", "9", "12"); err == nil {
		t.Fatalf("expected out of range index error")
	}
}

func TestCLIResetAsksForConfirmation(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "mark", "3")
	out, err := env.run(t, "n\n", "reset")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out, "Cancelled") {
		t.Fatalf("expected cancellation, got %q", out)
	}
	if !strings.Contains(env.mustRun(t, "show"), "#1:3") {
		t.Fatalf("draws should survive a cancelled reset")
	}
	env.mustRun(t, "reset", "--yes")
	if !strings.Contains(env.mustRun(t, "show"), "No numbers drawn yet.") {
		t.Fatalf("expected draws to be cleared")
	}
}

func TestCLISetAndCards(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "card", "add", "b")
	env.mustRun(t, "mark", "10")
	out := env.mustRun(t, "set", "--win-mode", "full", "--sort-mode", "asc")
	if !strings.Contains(out, "max-number=75 win-mode=full sort-mode=asc") {
		t.Fatalf("unexpected set output %q", out)
	}
	out = env.mustRun(t, "set", "--max-number", "90")
	if !strings.Contains(out, "drawn numbers were reset") {
		t.Fatalf("expected reset notice, got %q", out)
	}
	if _, err := env.run(t, "", "set", "--max-number", "200"); err == nil {
		t.Fatalf("expected out of range max number")
	}
	if _, err := env.run(t, "", "set"); err == nil {
		t.Fatalf("expected error when nothing changes")
	}
	if _, err := env.run(t, "", "card", "add", "b"); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	env.mustRun(t, "card", "delete", "b", "--yes")
	if !strings.Contains(env.mustRun(t, "card", "list"), "No cards yet.") {
		t.Fatalf("expected card to be deleted")
	}
	if _, err := env.run(t, "", "card", "delete", "b", "--yes"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestCLIExportImport(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "card", "add", "a", "--numbers", rowZeroNumbers())
	env.mustRun(t, "mark", "16")
	path := filepath.Join(env.dir, "game.json")
	env.mustRun(t, "export", path)

	env.mustRun(t, "reset", "--yes")
	env.mustRun(t, "card", "delete", "a", "--yes")

	out := env.mustRun(t, "import", path, "--yes")
	if !strings.Contains(out, "Imported 1 cards and 1 drawn numbers") {
		t.Fatalf("unexpected import output %q", out)
	}
	out = env.mustRun(t, "show")
	if !strings.Contains(out, "Card #a") || !strings.Contains(out, "#1:16") {
		t.Fatalf("unexpected state after import:\n%s", out)
	}
}

func TestCLIConfigFileDefaults(t *testing.T) {
	env := newCLIEnv(t)
	cfgDir := filepath.Join(env.dir, "config", "tuibingo")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "[game]\nmax-number = 90\nsort-mode = \"asc\"\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out := env.mustRun(t, "show")
	if !strings.Contains(out, "max-number=90 win-mode=line sort-mode=asc") {
		t.Fatalf("config defaults not applied:\n%s", out)
	}
}

func TestCLIEnvDatabasePath(t *testing.T) {
	env := newCLIEnv(t)
	envDB := filepath.Join(env.dir, "env.db")
	t.Setenv("TUIBINGO_DB", envDB)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--log-level", "error", "mark", "4"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("mark: %v\n%s", err, out.String())
	}
	if _, err := os.Stat(envDB); err != nil {
		t.Fatalf("expected database at TUIBINGO_DB: %v", err)
	}
}
