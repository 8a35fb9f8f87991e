package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplSinksBlockAndSteps(t *testing.T) {
	in := strings.NewReader("root\n  emit \"hi\"\n;\n\n.exit\n")
	var out bytes.Buffer

	runRepl(in, &out)

	require.Contains(t, out.String(), "hi")
	require.Contains(t, out.String(), "Goodbye!")
}

func TestReplClearResetsEnvironment(t *testing.T) {
	in := strings.NewReader(".clear\n.exit\n")
	var out bytes.Buffer

	runRepl(in, &out)

	require.Contains(t, out.String(), "Environment cleared.")
}

func TestReplUnknownDotCommand(t *testing.T) {
	in := strings.NewReader(".frobnicate\n.exit\n")
	var out bytes.Buffer

	runRepl(in, &out)

	require.Contains(t, out.String(), "Unknown command")
}
