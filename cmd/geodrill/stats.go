package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/geodrill/internal/config"
	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/selector"
	"github.com/verte-zerg/geodrill/internal/stats"
	"github.com/verte-zerg/geodrill/internal/statsui"
)

const (
	defaultStatsRounds  = 20
	terminalWidthBackup = 80
	// Width taken by the numeric columns of the division table.
	numericColumnsWidth = 40
	minNameWidth        = 12
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-division stats for the active group",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsRounds, "rounds", defaultStatsRounds, "number of recent rounds to summarize (0 = all)")
	cmd.Flags().BoolVarP(&statsInteractive, "interactive", "i", false, "browse stats in a full-screen view")
	cmd.Flags().IntVar(&statsTop, "top", defaultTopWeak, "only show the N weakest answered divisions")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	logPath := ""
	if statsInteractive {
		logPath = config.DefaultLogPath()
	}
	env, err := openEnv(cmd, logPath)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	group := env.prefs.Group()
	lang := env.prefs.Language()
	out := cmd.OutOrStdout()

	candidates, err := env.catalog.DivisionIDs(group)
	if err != nil {
		return err
	}
	data := env.repo.Load(ctx, group)
	weights := selector.Weights(candidates, data, "")
	rows := stats.BuildDivisionRows(candidates, data, weights, func(id model.DivisionID) string {
		return env.catalog.DivisionName(group, id, lang)
	})
	if statsTop > 0 {
		rows = keepWeakest(rows, stats.WeakestDivisions(data, statsTop))
	}

	title := env.catalog.GroupName(group, lang)

	var rounds []model.RoundResult
	if env.db != nil {
		rounds, err = env.db.ListRounds(ctx, group, statsRounds)
		if err != nil {
			return fmt.Errorf("failed to load rounds: %w", err)
		}
	}

	if statsInteractive {
		program := tea.NewProgram(statsui.NewModel(statsui.Report{Title: title, Rows: rows, Rounds: rounds}), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats UI: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(out, "%s\n\n", title); err != nil {
		return err
	}
	if err := stats.RenderDivisionTable(out, rows, nameColumnWidth()); err != nil {
		return err
	}
	if env.db == nil {
		logErrln("round history is not kept with --ephemeral")
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	return stats.RenderRoundSummary(out, rounds)
}

func newOddsCmd() *cobra.Command {
	var previous string
	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Show the chance of each division being drawn next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOddsCmd(cmd, model.DivisionID(previous))
		},
	}
	cmd.Flags().StringVar(&previous, "previous", "", "division shown last (applies the repeat penalty)")
	return cmd
}

func runOddsCmd(cmd *cobra.Command, previous model.DivisionID) error {
	env, err := openEnv(cmd, "")
	if err != nil {
		return err
	}
	defer env.Close()

	group := env.prefs.Group()
	lang := env.prefs.Language()
	candidates, err := env.catalog.DivisionIDs(group)
	if err != nil {
		return err
	}
	data := env.repo.Load(context.Background(), group)
	weights := selector.Weights(candidates, data, previous)
	total := 0.0
	for _, w := range weights {
		total += w
	}
	for i, id := range candidates {
		line := fmt.Sprintf("%-8s %6.2f%%  w=%.3f  %s", id, weights[i]/total*100, weights[i], env.catalog.DivisionName(group, id, lang))
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// keepWeakest filters rows to ids, preserving row order. Odds stay relative
// to the whole group.
func keepWeakest(rows []stats.DivisionRow, ids []model.DivisionID) []stats.DivisionRow {
	keep := make(map[model.DivisionID]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	out := rows[:0:0]
	for _, row := range rows {
		if _, ok := keep[row.ID]; ok {
			out = append(out, row)
		}
	}
	return out
}

func nameColumnWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = terminalWidthBackup
	}
	if w := width - numericColumnsWidth; w > minNameWidth {
		return w
	}
	return minNameWidth
}
