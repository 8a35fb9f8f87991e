// ==============================================================================================
// FILE: cmd/lichen/run.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: `lichen run <file>` - parses a script, builds an Environment, and drives the
//          Evaluator to completion, printing each emission. Select next-actions auto-pick
//          their first option so a script can run unattended.
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lichen/ast"
	"lichen/builtin"
	"lichen/env"
	"lichen/eval"
	"lichen/parser"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a Lichen script to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(cmd, args[0])
		},
	}
}

func runFile(cmd *cobra.Command, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lichen run: %w", err)
	}

	blocks, err := parser.ParseString(string(src))
	if err != nil {
		return fmt.Errorf("lichen run: %w", err)
	}

	e := buildEvaluator(blocks)

	for {
		values, next, ok := e.Next()
		if !ok {
			break
		}
		for _, v := range values {
			cmd.Println(v.Text())
		}
		if next != nil && next.Kind == ast.SelectKind && len(next.Select) > 0 {
			e.Advance(next.Select[0].Label)
		}
	}
	return nil
}

// buildEvaluator wires a fresh Environment from parsed blocks and returns an
// Evaluator seeded at the "root" node, per the Step algorithm's default
// starting stack.
func buildEvaluator(blocks []parser.ParsedBlock) *eval.Evaluator {
	environment := env.NewEnvironment(builtin.Default())
	environment.Insert(blocks)
	return eval.New(environment.Store, environment.Blocks, environment.Functions)
}
