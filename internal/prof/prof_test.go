package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPUProfile:   filepath.Join(dir, "cpu.pprof"),
		MemProfile:   filepath.Join(dir, "mem.pprof"),
		RuntimeTrace: filepath.Join(dir, "trace.out"),
	}
	require.True(t, cfg.Enabled())

	s, err := Start(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop(), "second stop is a no-op")

	for _, p := range []string{cfg.CPUProfile, cfg.MemProfile, cfg.RuntimeTrace} {
		st, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, st.Size(), p)
	}
}

func TestStartFailsCleanly(t *testing.T) {
	dir := t.TempDir()
	_, err := Start(Config{
		CPUProfile:   filepath.Join(dir, "cpu.pprof"),
		RuntimeTrace: filepath.Join(dir, "missing", "trace.out"),
	})
	require.Error(t, err)

	// the CPU profiler was released, so a new session can start it again
	s, err := Start(Config{CPUProfile: filepath.Join(dir, "again.pprof")})
	require.NoError(t, err)
	require.NoError(t, s.Stop())
}

func TestNilSession(t *testing.T) {
	var s *Session
	assert.NoError(t, s.Stop())
	assert.False(t, Config{}.Enabled())
}
