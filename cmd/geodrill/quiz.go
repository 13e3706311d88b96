package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/geodrill/internal/config"
	"github.com/verte-zerg/geodrill/internal/scheduler"
	"github.com/verte-zerg/geodrill/internal/tui"
)

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd, config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer env.Close()

	session := scheduler.NewSession(env.scheduler(), env.catalog, env.prefs.Group(), env.prefs.Language())
	if _, err := session.Start(context.Background()); err != nil {
		if !errors.Is(err, scheduler.ErrPersist) {
			return fmt.Errorf("failed to start session: %w", err)
		}
		env.log.Warn("starting without saved progress", "error", err)
	}
	env.log.Info("session started", "group", session.Group(), "lang", session.Language(), "divisions", len(session.Candidates()))

	var rounds tui.RoundStore
	if env.db != nil {
		rounds = env.db
	}
	model := tui.NewModel(session, env.prefs, env.catalog, rounds, env.log, env.cfg.RoundSize)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
