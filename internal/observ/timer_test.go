package observ

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	done := timer.Track("load")
	done("2 files")
	idx := timer.Begin("read")
	timer.End(idx, "")
	timer.End(99, "ignored")

	report := timer.Report()
	require.Len(t, report.Phases, 2)
	assert.Equal(t, "load", report.Phases[0].Name)
	assert.Equal(t, "2 files", report.Phases[0].Note)
	assert.GreaterOrEqual(t, report.TotalMS, 0.0)

	summary := timer.Summary()
	assert.True(t, strings.HasPrefix(summary, "timings:\n"))
	assert.Contains(t, summary, "// 2 files")
	assert.Contains(t, summary, "total")
}

func TestTimerConcurrent(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer.Track("file")("")
		}()
	}
	wg.Wait()
	assert.Len(t, timer.Report().Phases, 16)
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.Track("x")("")
	assert.Equal(t, Report{}, timer.Report())
}
