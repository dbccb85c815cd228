package main

import (
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"

	"lread/internal/reader"
)

// scriptedPrompt replays canned lines and records the prompts it was shown.
type scriptedPrompt struct {
	lines   []string
	errs    map[int]error
	prompts []string
}

func (s *scriptedPrompt) Prompt(p string) (string, error) {
	i := len(s.prompts)
	s.prompts = append(s.prompts, p)
	if err, ok := s.errs[i]; ok {
		return "", err
	}
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestReadByParseProbeContinuation(t *testing.T) {
	in := &scriptedPrompt{lines: []string{"(defun f (x)", "  (+ x 1))"}}
	src, ok := readByParseProbe(in, promptMain, promptCont, reader.Options{})
	assert.True(t, ok)
	assert.Equal(t, "(defun f (x)\n  (+ x 1))", src)
	assert.Equal(t, []string{promptMain, promptCont}, in.prompts)
}

func TestReadByParseProbeStopsOnHardErrors(t *testing.T) {
	// a stray ')' cannot be fixed by more input
	in := &scriptedPrompt{lines: []string{"a)", "never read"}}
	src, ok := readByParseProbe(in, promptMain, promptCont, reader.Options{})
	assert.True(t, ok)
	assert.Equal(t, "a)", src)
	assert.Len(t, in.prompts, 1)
}

func TestReadByParseProbeOpenString(t *testing.T) {
	in := &scriptedPrompt{lines: []string{`"multi`, `line"`}}
	src, ok := readByParseProbe(in, promptMain, promptCont, reader.Options{})
	assert.True(t, ok)
	assert.Equal(t, "\"multi\nline\"", src)
}

func TestReadByParseProbeDirective(t *testing.T) {
	in := &scriptedPrompt{lines: []string{":quit"}}
	src, ok := readByParseProbe(in, promptMain, promptCont, reader.Options{})
	assert.True(t, ok)
	assert.Equal(t, ":quit", src)
}

func TestReadByParseProbeAbortDropsPending(t *testing.T) {
	in := &scriptedPrompt{
		lines: []string{"(a", "b"},
		errs:  map[int]error{1: liner.ErrPromptAborted},
	}
	src, ok := readByParseProbe(in, promptMain, promptCont, reader.Options{})
	assert.True(t, ok)
	assert.Equal(t, "b", src)
	assert.Equal(t, []string{promptMain, promptCont, promptMain}, in.prompts)
}

func TestReadByParseProbeEOF(t *testing.T) {
	_, ok := readByParseProbe(&scriptedPrompt{}, promptMain, promptCont, reader.Options{})
	assert.False(t, ok)
}
