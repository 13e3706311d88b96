// Package main provides the CLI entrypoint for geodrill.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/geodrill/internal/stats"
)

const (
	defaultRoundSize = 10
	defaultLogMode   = "prod"
	defaultTopWeak   = 0
)

var (
	flagCatalog   string
	flagDB        string
	flagNamespace string
	flagLogMode   string
	flagGroup     string
	flagLang      string
	flagRoundSize int
	flagEphemeral bool

	statsRounds int
	statsTop    int

	statsInteractive bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "geodrill",
		Short:         "Adaptive geography drill",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagCatalog, "catalog", "", "catalog file (.yaml, .yml or .toml); bundled catalog when empty")
	pf.StringVar(&flagDB, "db", "", "SQLite database path")
	pf.StringVar(&flagNamespace, "namespace", stats.DefaultNamespace, "storage key prefix")
	pf.StringVar(&flagLogMode, "log-mode", defaultLogMode, "log format: prod or dev")
	pf.StringVar(&flagGroup, "group", "", "group to practice (saved as the active group)")
	pf.StringVar(&flagLang, "lang", "", "display language: EN or ZH (saved)")
	pf.BoolVar(&flagEphemeral, "ephemeral", false, "keep progress in memory only")

	rootCmd.Flags().IntVar(&flagRoundSize, "round-size", defaultRoundSize, "questions per round")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newGroupsCmd())
	rootCmd.AddCommand(newUseCmd())
	rootCmd.AddCommand(newLangCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newOddsCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}
