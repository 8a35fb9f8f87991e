// ==============================================================================================
// FILE: cmd/lichen/root.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: The cobra root command and its persistent config/logging setup, grounded in
//          holomush's cmd/holomush/root.go (PersistentFlags + AddCommand wiring).
// ==============================================================================================

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"lichen/internal/config"
	"lichen/internal/logging"
)

var configFile string

var cfg config.Config
var logger *slog.Logger

// NewRootCmd creates the root command for the Lichen CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lichen",
		Short: "Lichen - an embeddable scripting language for branching narrative",
		Long: `Lichen is a line-oriented scripting language for dialogue trees, quest
logic, and other branching, rule-driven game content.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			cfg = loaded
			logger = logging.Setup("lichen", cfg.LogFormat, logging.ParseLevel(cfg.LogLevel), cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (YAML)")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newReplCmd())
	cmd.AddCommand(newTokensCmd())

	return cmd
}
