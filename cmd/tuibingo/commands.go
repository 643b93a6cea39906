package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuibingo/internal/board"
	"github.com/verte-zerg/tuibingo/internal/game"
	"github.com/verte-zerg/tuibingo/internal/model"
	"github.com/verte-zerg/tuibingo/internal/stats"
	"github.com/verte-zerg/tuibingo/internal/win"
)

var (
	assumeYes bool

	cardNumbers string

	setMaxNumber int
	setWinMode   string
	setSortMode  string

	winsLimit   int
	winsClear   bool
	winsSummary bool
)

const defaultWinsLimit = 20

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cards and drawn numbers",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			return printGame(cmd.OutOrStdout(), s, colorOutput(cmd))
		}),
	}
}

func newDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw",
		Short: "Draw a random number",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			before := s.currentWin()
			res, err := s.state.DrawRandom()
			if err != nil {
				return err
			}
			return finishDraw(cmd, s, before, res.Win, res.Number, fmt.Sprintf("Drew %d", res.Number))
		}),
	}
}

func newMarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <number>",
		Short: "Record a number drawn elsewhere",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid number %q", args[0])
			}
			before := s.currentWin()
			res, err := s.state.MarkNumber(n)
			if err != nil {
				return err
			}
			return finishDraw(cmd, s, before, res.Win, res.Number, fmt.Sprintf("Marked %d", res.Number))
		}),
	}
}

func newEditDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit-draw <index> <value>",
		Short: "Correct a drawn number (index is 1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid value %q", args[1])
			}
			before := s.currentWin()
			res, err := s.state.EditDrawn(index-1, value)
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("Draw #%d changed from %d to %d", index, res.Previous, res.Number)
			return finishDraw(cmd, s, before, res.Win, res.Number, msg)
		}),
	}
}

func finishDraw(cmd *cobra.Command, s *session, before, after *model.Win, number int, msg string) error {
	if err := s.save(cmd.Context()); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, msg); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if after == nil {
		return nil
	}
	if err := s.recordWin(cmd.Context(), before, after, number); err != nil {
		return err
	}
	color := colorOutput(cmd)
	text := board.RenderNotification(win.Notification(*after), color) + "\n\n" +
		board.RenderCards(winningCard(s.state.Cards(), after.CardID), s.state.Drawn(), after, board.TerminalWidth(), color)
	if _, err := fmt.Fprintln(out, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func winningCard(cards []model.Card, id string) []model.Card {
	for _, card := range cards {
		if card.ID == id {
			return []model.Card{card}
		}
	}
	return nil
}

func newCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	add := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a card (generated unless --numbers is given)",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			var (
				card model.Card
				err  error
			)
			if strings.TrimSpace(cardNumbers) == "" {
				card, err = s.state.AddCardAuto(args[0])
			} else {
				var grid model.Grid
				grid, err = game.ParseGrid(strings.Fields(cardNumbers))
				if err != nil {
					return err
				}
				card, err = s.state.AddCardManual(args[0], grid)
			}
			if err != nil {
				return err
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			return printCard(cmd, s, card)
		}),
	}
	add.Flags().StringVar(&cardNumbers, "numbers", "", "24 numbers row by row, skipping the free space")

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a card's numbers",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			grid, err := game.ParseGrid(strings.Fields(cardNumbers))
			if err != nil {
				return err
			}
			card, err := s.state.EditCard(args[0], grid)
			if err != nil {
				return err
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			return printCard(cmd, s, card)
		}),
	}
	edit.Flags().StringVar(&cardNumbers, "numbers", "", "24 numbers row by row, skipping the free space")
	_ = edit.MarkFlagRequired("numbers")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			if _, ok := s.state.Card(args[0]); !ok {
				return s.state.DeleteCard(args[0])
			}
			ok, err := confirm(cmd, fmt.Sprintf("Delete card #%s?", args[0]))
			if err != nil || !ok {
				return err
			}
			if err := s.state.DeleteCard(args[0]); err != nil {
				return err
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted card #%s\n", args[0])
			return err
		}),
	}
	del.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation")

	list := &cobra.Command{
		Use:   "list",
		Short: "List cards",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			out := board.RenderCards(s.state.Cards(), s.state.Drawn(), s.currentWin(), board.TerminalWidth(), colorOutput(cmd))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		}),
	}

	cmd.AddCommand(add, edit, del, list)
	return cmd
}

func printCard(cmd *cobra.Command, s *session, card model.Card) error {
	out := board.RenderCard(card, s.state.Drawn(), nil, colorOutput(cmd))
	_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear drawn numbers and keep cards",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			ok, err := confirm(cmd, "Reset the game? All drawn numbers will be cleared.")
			if err != nil || !ok {
				return err
			}
			s.state.ResetGame()
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			s.logger.Info().Msg("game reset")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Game reset")
			return err
		}),
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change max number, win mode, or sort mode",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("max-number") && !flags.Changed("win-mode") && !flags.Changed("sort-mode") {
				return fmt.Errorf("nothing to change: pass --max-number, --win-mode, or --sort-mode")
			}
			cfg := s.state.Config()
			maxNumber, mode := cfg.MaxNumber, cfg.WinMode
			if flags.Changed("max-number") {
				maxNumber = setMaxNumber
			}
			if flags.Changed("win-mode") {
				mode = model.WinMode(strings.ToLower(strings.TrimSpace(setWinMode)))
			}
			reset, err := s.state.SetConfig(maxNumber, mode)
			if err != nil {
				return err
			}
			if flags.Changed("sort-mode") {
				if err := s.state.SetSortMode(model.SortMode(setSortMode)); err != nil {
					return err
				}
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if reset {
				s.logger.Info().Int("max", maxNumber).Msg("max number changed; draws reset")
				if _, err := fmt.Fprintln(out, "Max number changed; drawn numbers were reset."); err != nil {
					return err
				}
			}
			cfg = s.state.Config()
			_, err = fmt.Fprintf(out, "max-number=%d win-mode=%s sort-mode=%s\n", cfg.MaxNumber, cfg.WinMode, cfg.SortMode)
			return err
		}),
	}
	cmd.Flags().IntVar(&setMaxNumber, "max-number", model.DefaultMaxNumber, "highest ball number (25-99)")
	cmd.Flags().StringVar(&setWinMode, "win-mode", "", "win condition: line or full")
	cmd.Flags().StringVar(&setSortMode, "sort-mode", "", "drawn number order: history or asc")
	return cmd
}

func newWinsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wins",
		Short: "Show the win log",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			out := cmd.OutOrStdout()
			if winsClear {
				ok, err := confirm(cmd, "Clear the win log?")
				if err != nil || !ok {
					return err
				}
				if err := s.store.ClearWins(cmd.Context()); err != nil {
					return fmt.Errorf("failed to clear wins: %w", err)
				}
				_, err = fmt.Fprintln(out, "Win log cleared")
				return err
			}
			if winsSummary {
				records, err := s.store.ListWins(cmd.Context(), 0)
				if err != nil {
					return fmt.Errorf("failed to load wins: %w", err)
				}
				return stats.RenderSummary(out, stats.Summarize(records))
			}
			records, err := s.store.ListWins(cmd.Context(), winsLimit)
			if err != nil {
				return fmt.Errorf("failed to load wins: %w", err)
			}
			_, err = fmt.Fprintln(out, board.RenderWins(records))
			return err
		}),
	}
	cmd.Flags().IntVar(&winsLimit, "limit", defaultWinsLimit, "number of wins to show (0 for all)")
	cmd.Flags().BoolVar(&winsClear, "clear", false, "delete the win log")
	cmd.Flags().BoolVar(&winsSummary, "summary", false, "show aggregate statistics")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the saved game as JSON (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			data, err := game.Marshal(s.state)
			if err != nil {
				return fmt.Errorf("failed to encode game: %w", err)
			}
			if len(args) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(args[0], append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return err
		}),
	}
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the saved game with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import: %w", err)
			}
			ok, err := confirm(cmd, "Replace the current game?")
			if err != nil || !ok {
				return err
			}
			state, warnings := game.Restore(data, s.settings.defaults, s.gen)
			for _, w := range warnings {
				logErrf("warning: %s\n", w)
			}
			s.state = state
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards and %d drawn numbers\n", len(state.Cards()), len(state.History()))
			return err
		}),
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation")
	return cmd
}

func withSession(run func(cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, false)
		if err != nil {
			return err
		}
		defer s.close()
		return run(cmd, s, args)
	}
}

func printGame(w io.Writer, s *session, color bool) error {
	cfg := s.state.Config()
	entries := s.state.DrawnEntries()
	sections := []string{
		fmt.Sprintf("max-number=%d win-mode=%s sort-mode=%s", cfg.MaxNumber, cfg.WinMode, cfg.SortMode),
		board.RenderCards(s.state.Cards(), s.state.Drawn(), s.currentWin(), board.TerminalWidth(), color),
		fmt.Sprintf("Drawn numbers (%d/%d)\n%s", len(entries), cfg.MaxNumber, board.RenderDraws(entries, color)),
	}
	if _, err := fmt.Fprintln(w, strings.Join(sections, "\n\n")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// confirm asks a y/N question on the command's input unless --yes was given.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "y" || answer == "yes" {
		return true, nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
	return false, err
}
