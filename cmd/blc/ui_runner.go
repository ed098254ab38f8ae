package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"blc/internal/driver"
	"blc/internal/source"
	"blc/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.ParseDirResult
	err     error
}

// runCheckWithUI parses files in the background while a Bubble Tea
// program renders driver progress events.
func runCheckWithUI(ctx context.Context, title, baseDir string, files []string, opts driver.Options) (*source.FileSet, []driver.ParseDirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.ParseFiles(ctx, baseDir, files, runOpts)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the UI may quit before the last event (ctrl-c); keep draining so
	// workers never block on a full channel
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
