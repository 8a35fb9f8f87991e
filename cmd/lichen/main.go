// ==============================================================================================
// FILE: cmd/lichen/main.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: Entry point for the Lichen demonstration host. Dispatches to the cobra root
//          command built in root.go. Descended from the teacher's main.go, which picked
//          between running a file and starting a REPL directly; that choice now lives in
//          cobra subcommands instead of an if/else on os.Args.
// ==============================================================================================

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
