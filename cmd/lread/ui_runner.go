package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lread/internal/driver"
	"lread/internal/ui"
)

type parseDirOutcome struct {
	result *driver.DirResult
	err    error
}

// runParseDirWithUI runs driver.ParseDir in the background and shows its
// events in the progress view until the run finishes.
func runParseDirWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options, jobs int) (*driver.DirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		observe := func(ev driver.Event) { events <- ev }
		res, err := driver.ParseDir(ctx, dir, opts, jobs, observe)
		outcomeCh <- parseDirOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// UI мог завершиться раньше (Ctrl+C); дочитываем события, чтобы ParseDir не встал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
