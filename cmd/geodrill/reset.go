package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/taxonomy"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [group]",
		Short: "Forget the stats of a group (the active one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, "")
	if err != nil {
		return err
	}
	defer env.Close()

	group := env.prefs.Group()
	if len(args) == 1 {
		group = model.GroupID(args[0])
	}
	if !env.catalog.Has(group) {
		return fmt.Errorf("%w %q (see: geodrill groups)", taxonomy.ErrUnknownGroup, group)
	}
	if err := env.repo.Reset(context.Background(), group); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}
	env.log.Info("stats reset", "group", group, "key", env.repo.Key(group))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Stats cleared for %s\n", env.catalog.GroupName(group, env.prefs.Language()))
	return err
}
