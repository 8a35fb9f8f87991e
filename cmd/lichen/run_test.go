package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCmdPrintsEmissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.lichen")
	src := "root\n  emit \"hello\"\n  emit \"world\"\n;\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cmd := newRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "hello\nworld\n", out.String())
}

func TestRunCmdMissingFileErrors(t *testing.T) {
	cmd := newRunCmd()
	cmd.SetArgs([]string{"/nonexistent/script.lichen"})
	require.Error(t, cmd.Execute())
}
