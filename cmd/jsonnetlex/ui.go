package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"jsonnetlex/internal/driver"
	"jsonnetlex/internal/observ"
	"jsonnetlex/internal/ui"
)

// uiMode is the value of check --ui.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	v := uiMode(strings.ToLower(strings.TrimSpace(value)))
	switch v {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return v, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI: в auto режиме прогресс рисуем только на живом терминале,
// не в CI и не при TERM=dumb.
func shouldUseTUI(mode uiMode) bool {
	if mode != uiModeAuto {
		return mode == uiModeOn
	}
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal(os.Stdout)
}

// hooks for tests
var (
	checkPaths      = driver.CheckPaths
	runProgressView = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithOutput(os.Stdout)).Run()
		return err
	}
)

// runCheckWithUI runs CheckPaths in the background and drives the progress
// view from its events until both are done. Leaving the view cancels the
// check: in raw mode Ctrl-C reaches the view as a key, not as SIGINT.
func runCheckWithUI(ctx context.Context, title string, files, paths []string, opts driver.CheckOptions) (*driver.CheckResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	type outcome struct {
		result *driver.CheckResult
		err    error
	}
	done := make(chan outcome, 1)

	opts.Sink = driver.ChannelSink{Ch: events}
	go func() {
		defer close(events)
		res, err := checkPaths(ctx, paths, opts)
		done <- outcome{res, err}
	}()

	uiErr := runProgressView(ui.NewProgressModel(title, files, events))
	cancel()
	// UI мог завершиться раньше (ctrl+c): дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	out := <-done
	if uiErr != nil {
		return out.result, uiErr
	}
	return out.result, out.err
}

// printTimings writes the --timings table. Write errors are ignored like
// any other diagnostic output on stderr.
func printTimings(out io.Writer, timer *observ.Timer) {
	if out != nil && timer != nil {
		_, _ = io.WriteString(out, timer.Summary())
	}
}
