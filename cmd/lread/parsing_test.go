package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lread/internal/diagfmt"
	"lread/internal/driver"
)

func inputCmd(t *testing.T, input string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("input", "", "")
	if input != "" {
		require.NoError(t, cmd.Flags().Set("input", input))
	}
	return cmd
}

func TestInputPath(t *testing.T) {
	got, err := inputPath(inputCmd(t, ""), []string{"a.lisp"})
	require.NoError(t, err)
	assert.Equal(t, "a.lisp", got)

	got, err = inputPath(inputCmd(t, "b.lisp"), nil)
	require.NoError(t, err)
	assert.Equal(t, "b.lisp", got)

	got, err = inputPath(inputCmd(t, "-"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "-", got)

	_, err = inputPath(inputCmd(t, "b.lisp"), []string{"a.lisp"})
	assert.Error(t, err)

	_, err = inputPath(inputCmd(t, ""), nil)
	assert.Error(t, err)
}

func parseFixtureDir(t *testing.T) *driver.DirResult {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lisp"), []byte("(1 2)\n'x\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.scm"), []byte("(broken"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.el"), []byte("nil"), 0o600))

	res, err := driver.ParseDir(context.Background(), dir, driver.Options{}, 2, nil)
	require.NoError(t, err)
	return res
}

func TestWriteDirFormsNDJSON(t *testing.T) {
	res := parseFixtureDir(t)
	require.True(t, res.HasErrors())

	var buf bytes.Buffer
	require.NoError(t, writeDirForms(&buf, res, diagfmt.FormsOpts{Format: diagfmt.FormatNDJSON}, false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "the broken file contributes nothing")

	var first struct {
		File string          `json:"file"`
		Form json.RawMessage `json:"form"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.True(t, strings.HasSuffix(first.File, "a.lisp"), first.File)
	assert.Contains(t, lines[2], `"type":"Nil"`)
}

func TestWriteDirFormsPrettyHeaders(t *testing.T) {
	res := parseFixtureDir(t)

	var buf bytes.Buffer
	require.NoError(t, writeDirForms(&buf, res, diagfmt.FormsOpts{Format: diagfmt.FormatPretty}, false))
	out := buf.String()
	assert.Contains(t, out, "a.lisp ==\n(1 2)\n(quote x)\n")
	assert.Contains(t, out, "\n\n== ")
	assert.NotContains(t, out, "b.scm")

	buf.Reset()
	require.NoError(t, writeDirForms(&buf, res, diagfmt.FormsOpts{Format: diagfmt.FormatPretty}, true))
	assert.Equal(t, "(1 2)\n(quote x)\nnil\n", buf.String())
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := readUIMode("maybe")
	assert.Error(t, err)

	assert.True(t, shouldUseTUI(uiModeOn))
	assert.False(t, shouldUseTUI(uiModeOff))
}
