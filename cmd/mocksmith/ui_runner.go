package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mocksmith/internal/driver"
	"mocksmith/internal/pipeline"
	"mocksmith/internal/ui"
)

type generateOutcome struct {
	results []driver.FileResult
	err     error
}

// runGenerateWithUI runs driver.Generate in the background and follows its
// events in a Bubble Tea program until the run finishes.
func runGenerateWithUI(ctx context.Context, title string, req driver.Request) ([]driver.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan generateOutcome, 1)

	req.Sink = pipeline.ChannelSink{Ch: events}
	go func() {
		res, err := driver.Generate(ctx, req)
		outcomeCh <- generateOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// если пользователь закрыл UI раньше, генерация не должна блокироваться
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
