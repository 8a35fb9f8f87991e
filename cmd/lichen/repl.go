// ==============================================================================================
// FILE: cmd/lichen/repl.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: `lichen repl` - an interactive line-at-a-time host, descended from the teacher's
//          repl/repl.go (dot-commands, ANSI colors, LOGO banner), reworked for Lichen's
//          block-oriented source instead of expression statements.
// ==============================================================================================

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lichen/builtin"
	"lichen/env"
	"lichen/eval"
	"lichen/ir"
	"lichen/lexer"
	"lichen/parser"
)

const (
	prompt = "lichen> "
	logo   = `
┌─────────────────────────────────────────┐
│  Lichen - branching narrative scripting  │
└─────────────────────────────────────────┘
`
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[37m"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Lichen session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			runRepl(cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}
}

// runRepl listens on in, accumulating lines of one block at a time. A blank
// line sinks the accumulated block into the live environment and steps the
// evaluator once, printing whatever it emits.
func runRepl(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	environment := env.NewEnvironment(builtin.Default())
	e := eval.New(environment.Store, environment.Blocks, environment.Functions)
	debug := false
	var pending strings.Builder

	fmt.Fprint(out, logo)
	printHelp(out)

	for {
		fmt.Fprint(out, colorGreen+prompt+colorReset)
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, ".") {
			if handleDotCommand(out, trimmed, &debug, &environment, &e) {
				return
			}
			continue
		}

		if trimmed == "" {
			if pending.Len() == 0 {
				continue
			}
			src := pending.String()
			pending.Reset()
			if debug {
				printTokens(out, src)
			}
			sinkAndStep(out, src, environment, e)
			continue
		}

		pending.WriteString(line)
		pending.WriteByte('\n')
	}
}

func sinkAndStep(out io.Writer, src string, environment *env.Environment, e *eval.Evaluator) {
	blocks, err := parser.ParseString(src)
	if err != nil {
		fmt.Fprintf(out, colorRed+"parse error: %s\n"+colorReset, err)
		return
	}
	environment.Insert(blocks)

	values, _, ok := e.Next()
	if !ok {
		fmt.Fprintln(out, colorGray+"(no further steps)"+colorReset)
		return
	}
	for _, v := range values {
		fmt.Fprintln(out, colorYellow+v.Text()+colorReset)
	}
}

// handleDotCommand processes a leading-dot REPL command. It returns true if
// the REPL should exit.
func handleDotCommand(out io.Writer, cmd string, debug *bool, environment **env.Environment, e **eval.Evaluator) bool {
	switch cmd {
	case ".exit":
		fmt.Fprintln(out, colorYellow+"Goodbye!"+colorReset)
		return true
	case ".clear":
		fresh := env.NewEnvironment(builtin.Default())
		*environment = fresh
		*e = eval.New(fresh.Store, fresh.Blocks, fresh.Functions)
		fmt.Fprintln(out, colorGreen+"Environment cleared."+colorReset)
	case ".debug":
		*debug = !*debug
		status := "disabled"
		if *debug {
			status = "enabled"
		}
		fmt.Fprintf(out, colorGray+"Debug mode %s\n"+colorReset, status)
	case ".help":
		printHelp(out)
	default:
		fmt.Fprintf(out, colorRed+"Unknown command: %s. Type .help for info.\n"+colorReset, cmd)
	}
	return false
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, colorGray+"Commands:")
	fmt.Fprintln(out, "  .exit   Quit the REPL")
	fmt.Fprintln(out, "  .clear  Reset the environment")
	fmt.Fprintln(out, "  .debug  Toggle token output before each step")
	fmt.Fprintln(out, "  .help   Show this message")
	fmt.Fprintln(out, "  blank line   sink the block typed so far and step once"+colorReset)
	fmt.Fprintln(out)
}

// printTokens renders the lexer's statement stream for src, shared by the
// repl's debug mode and the tokens subcommand.
func printTokens(out io.Writer, src string) {
	fmt.Fprintln(out, colorGray+"--- tokens ---"+colorReset)
	l := lexer.New(src)
	for {
		ev := l.Next()
		switch ev.Kind {
		case lexer.EventStatement:
			for _, tok := range ev.Tokens {
				fmt.Fprintf(out, "  %s\n", tokenKind(tok))
			}
		case lexer.EventBlockEnd:
			fmt.Fprintln(out, "  ;")
		case lexer.EventEOF:
			fmt.Fprintln(out, colorGray+"--------------"+colorReset)
			return
		}
	}
}

func tokenKind(t ir.Token) string {
	switch t.Kind {
	case ir.Quoted:
		return fmt.Sprintf("Quoted(%q)", t.Text)
	case ir.MapLiteral:
		return fmt.Sprintf("Map(%s)", t.String())
	default:
		return fmt.Sprintf("Raw(%s)", t.Text)
	}
}
