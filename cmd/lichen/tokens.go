// ==============================================================================================
// FILE: cmd/lichen/tokens.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: `lichen tokens <file>` - prints the lexer's statement/token stream for a script,
//          descended from the teacher's repl.go printTokens debug helper.
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lichen/lexer"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the lexer token stream for a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printFileTokens(cmd, args[0])
		},
	}
}

func printFileTokens(cmd *cobra.Command, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lichen tokens: %w", err)
	}
	printTokens(cmd.OutOrStdout(), string(src))
	return nil
}
