package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"lread/internal/driver"
)

func TestApplyEvent(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("parse src", []string{"a.lisp", "b.lisp"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.lisp", Stage: driver.StageRead, Status: driver.StatusWorking})
	assert.Equal(t, "reading", m.items[0].status)
	assert.Zero(t, m.completed())

	m.applyEvent(driver.Event{File: "a.lisp", Stage: driver.StageRead, Status: driver.StatusDone, Forms: 3})
	m.applyEvent(driver.Event{File: "b.lisp", Stage: driver.StageLoad, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.lisp", Status: driver.StatusDone, Forms: 100})
	assert.Equal(t, 3, m.forms)
	assert.InDelta(t, 1.0, m.completed(), 1e-9)

	view := m.View()
	assert.Contains(t, view, "parse src (3 forms)")
	assert.Contains(t, view, "a.lisp")
	assert.True(t, strings.Contains(view, "error"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "very-lo...", truncate("very-long-file-name.lisp", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
