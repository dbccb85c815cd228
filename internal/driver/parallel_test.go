package driver

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lread/internal/diag"
	"lread/internal/observ"
)

func TestListSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.lisp", "b")
	writeFile(t, dir, "a.scm", "a")
	writeFile(t, dir, "nested/c.EL", "c")
	writeFile(t, dir, "readme.md", "# no")

	files, err := ListSourceFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.scm"),
		filepath.Join(dir, "b.lisp"),
		filepath.Join(dir, "nested", "c.EL"),
	}, files)
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.lisp", "(a b) (c . d)")
	writeFile(t, dir, "bad.lisp", "(a b")
	writeFile(t, dir, "sub/other.cl", "'x")

	var (
		mu     sync.Mutex
		events []Event
	)
	observe := func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	}

	res, err := ParseDir(context.Background(), dir, Options{Timer: observ.NewTimer()}, 2, observe)
	require.NoError(t, err)
	require.Len(t, res.Files, 3)

	byName := map[string]FileResult{}
	for _, f := range res.Files {
		byName[filepath.Base(f.Path)] = f
	}
	assert.Len(t, byName["good.lisp"].Forms, 2)
	assert.Len(t, byName["other.cl"].Forms, 1)
	assert.Error(t, byName["bad.lisp"].Err)
	assert.Equal(t, diag.SynUnclosedList, byName["bad.lisp"].Bag.Items()[0].Code)
	assert.True(t, res.HasErrors())

	require.Equal(t, 1, res.Bag.Len())
	assert.Equal(t, diag.ObsTimings, res.Bag.Items()[0].Code)

	var done, failed int
	for _, ev := range events {
		switch ev.Status {
		case StatusDone:
			done++
		case StatusError:
			failed++
		}
	}
	assert.Equal(t, 2, done)
	assert.Equal(t, 1, failed)
}

func TestParseDirEmpty(t *testing.T) {
	res, err := ParseDir(context.Background(), t.TempDir(), Options{}, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.False(t, res.HasErrors())
}

func TestParseDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.lisp", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseDir(ctx, dir, Options{}, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseDirMissing(t *testing.T) {
	_, err := ParseDir(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{}, 1, nil)
	assert.Error(t, err)
}

func TestSummarizePhases(t *testing.T) {
	got := summarizePhases([]observ.PhaseReport{
		{Name: "load", DurationMS: 1},
		{Name: "read", DurationMS: 2},
		{Name: "read", DurationMS: 3, Note: "b.lisp"},
	})
	assert.Equal(t, []observ.PhaseReport{{Name: "load", DurationMS: 1}, {Name: "read", DurationMS: 5}}, got)
}

func TestIsSourceFile(t *testing.T) {
	for path, want := range map[string]bool{
		"a.lisp":          true,
		"dir/B.LSP":       true,
		"init.el":         true,
		"x.cl":            true,
		"y.scm":           true,
		"notes.txt":       false,
		"lisp":            false,
		"archive.lisp.gz": false,
	} {
		assert.Equal(t, want, IsSourceFile(path), path)
	}
}
