// Package main provides the CLI entrypoint for tuibingo.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuibingo/internal/board"
	"github.com/verte-zerg/tuibingo/internal/config"
	"github.com/verte-zerg/tuibingo/internal/model"
	"github.com/verte-zerg/tuibingo/internal/tui"
)

var (
	configPath string
	dbPath     string
	logLevel   string
	logFile    string
	seed       int64

	gameMaxNumber int
	gameWinMode   string
	gameSortMode  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuibingo",
		Short:         "Bingo card tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file used by the TUI (default: XDG state dir)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "fixed RNG seed (default: random)")

	rootCmd.Flags().IntVar(&gameMaxNumber, "max-number", model.DefaultMaxNumber, "highest ball number (25-99)")
	rootCmd.Flags().StringVar(&gameWinMode, "win-mode", string(model.WinModeLine), "win condition: line or full")
	rootCmd.Flags().StringVar(&gameSortMode, "sort-mode", string(model.SortHistory), "drawn number order: history or asc")

	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newDrawCmd())
	rootCmd.AddCommand(newMarkCmd())
	rootCmd.AddCommand(newEditDrawCmd())
	rootCmd.AddCommand(newCardCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newWinsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.applyGameFlags(cmd); err != nil {
		return err
	}

	m := tui.NewModel(s.state, s.store, s.logger, true)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := resolveConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// settings holds values resolved from flags, environment, config file, and defaults.
type settings struct {
	defaults model.Config
	seed     *int64
	dbPath   string
	logLevel string
	logFile  string
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	fileCfg, err := config.LoadConfig(resolveConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv("")
	if err != nil {
		return settings{}, err
	}

	// Game flags live on the root command only; subcommands see their defaults.
	root := cmd.Root()
	maxNumber, winMode, sortMode := gameMaxNumber, gameWinMode, gameSortMode
	applyIntConfig(root, "max-number", &maxNumber, fileCfg.Game.MaxNumber)
	applyStringConfig(root, "win-mode", &winMode, fileCfg.Game.WinMode)
	applyStringConfig(root, "sort-mode", &sortMode, fileCfg.Game.SortMode)

	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-level", &logLevel, nonEmpty(envCfg.LogLevel))
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-file", &logFile, nonEmpty(envCfg.LogFile))
	applyStringConfig(cmd, "db", &dbPath, nonEmpty(envCfg.DBPath))

	var seedValue *int64
	switch {
	case cmd.Flags().Changed("seed"):
		v := seed
		seedValue = &v
	case envCfg.Seed != nil:
		seedValue = envCfg.Seed
	case fileCfg.Game.Seed != nil:
		seedValue = fileCfg.Game.Seed
	}

	parsedWin, err := model.ParseWinMode(winMode)
	if err != nil {
		return settings{}, fmt.Errorf("invalid win mode: %w", err)
	}
	parsedSort, err := model.ParseSortMode(sortMode)
	if err != nil {
		return settings{}, fmt.Errorf("invalid sort mode: %w", err)
	}
	if maxNumber < model.MinMaxNumber || maxNumber > model.MaxMaxNumber {
		return settings{}, fmt.Errorf("max number must be between %d and %d", model.MinMaxNumber, model.MaxMaxNumber)
	}

	out := settings{
		defaults: model.Config{MaxNumber: maxNumber, WinMode: parsedWin, SortMode: parsedSort},
		seed:     seedValue,
		dbPath:   dbPath,
		logLevel: logLevel,
		logFile:  logFile,
	}
	if out.dbPath == "" {
		out.dbPath = config.DefaultDBPath()
	}
	if out.logFile == "" {
		out.logFile = config.DefaultLogPath()
	}
	return out, nil
}

func nonEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func colorOutput(cmd *cobra.Command) bool {
	return board.ShouldUseColor(cmd.OutOrStdout())
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
