package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.lisp")
	require.NoError(t, os.WriteFile(path, []byte("(a 'b) ; c\n"), 0o600))

	res, err := Scan(context.Background(), path)
	require.NoError(t, err)

	var texts []string
	for _, lx := range res.Lexemes {
		texts = append(texts, lx.Text())
	}
	assert.Equal(t, []string{"(", "a", "'", "b", ")", "; c"}, texts)
}

func TestScanReader(t *testing.T) {
	res, err := ScanReader(context.Background(), "<stdin>", strings.NewReader(`"x y" z`))
	require.NoError(t, err)
	require.Len(t, res.Lexemes, 2)
	assert.Equal(t, `"x y"`, res.Lexemes[0].Text())
	assert.Equal(t, "<stdin>", res.File.Path)
}

func TestScanMissingFile(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "missing.lisp"))
	assert.Error(t, err)
}
