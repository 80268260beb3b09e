package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cppedit/internal/driver"
	"cppedit/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

func runFormatWithUI(ctx context.Context, title string, files []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, files, opts)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
