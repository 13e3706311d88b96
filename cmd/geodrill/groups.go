package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/geodrill/internal/language"
	"github.com/verte-zerg/geodrill/internal/model"
)

func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List groups in the catalog",
		Args:  cobra.NoArgs,
		RunE:  runGroupsCmd,
	}
}

func runGroupsCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd, "")
	if err != nil {
		return err
	}
	defer env.Close()

	active := env.prefs.Group()
	lang := env.prefs.Language()
	practiced, err := env.repo.Groups(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list stats: %w", err)
	}
	for _, group := range env.catalog.Groups() {
		marker := " "
		if group == active {
			marker = "*"
		}
		ids, err := env.catalog.DivisionIDs(group)
		if err != nil {
			return err
		}
		note := ""
		if env.catalog.HasIgnored(group) {
			note = ", some excluded"
		}
		if slices.Contains(practiced, group) {
			note += ", practiced"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %s (%d divisions%s)\n", marker, group, env.catalog.GroupName(group, lang), len(ids), note); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <group>",
		Short: "Set the active group",
		Args:  cobra.ExactArgs(1),
		RunE:  runUseCmd,
	}
}

func runUseCmd(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, "")
	if err != nil {
		return err
	}
	defer env.Close()

	group := model.GroupID(args[0])
	if err := env.useGroup(context.Background(), group); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Active group: %s\n", env.catalog.GroupName(group, env.prefs.Language()))
	return err
}

func newLangCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang <code>",
		Short: "Set the display language (EN or ZH)",
		Args:  cobra.ExactArgs(1),
		RunE:  runLangCmd,
	}
}

func runLangCmd(cmd *cobra.Command, args []string) error {
	code, err := language.Parse(args[0])
	if err != nil {
		return err
	}
	env, err := openEnv(cmd, "")
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.prefs.SetLanguage(context.Background(), code); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Language: %s\n", code.Name())
	return err
}
