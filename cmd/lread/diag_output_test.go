package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lread/internal/diag"
	"lread/internal/source"
)

func TestSplitTimings(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnclosedList, source.Span{}, "unterminated list"))
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.NoSpan, "timings"))

	rest, timings := splitTimings(bag)
	require.Len(t, timings, 1)
	assert.Equal(t, diag.ObsTimings, timings[0].Code)
	require.Equal(t, 1, rest.Len())
	assert.Equal(t, diag.SynUnclosedList, rest.Items()[0].Code)

	rest, timings = splitTimings(nil)
	assert.Equal(t, 0, rest.Len())
	assert.Nil(t, timings)
}
