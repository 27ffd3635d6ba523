package main

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jsonnetlex/internal/driver"
)

func stubCheckUI(t *testing.T, check func(context.Context, []string, driver.CheckOptions) (*driver.CheckResult, error), view func(tea.Model) error) {
	t.Helper()
	origCheck, origView := checkPaths, runProgressView
	t.Cleanup(func() { checkPaths, runProgressView = origCheck, origView })
	checkPaths, runProgressView = check, view
}

// выход из прогресса (ctrl+c) должен останавливать проверку
func TestRunCheckWithUICancelsOnViewExit(t *testing.T) {
	stubCheckUI(t,
		func(ctx context.Context, _ []string, _ driver.CheckOptions) (*driver.CheckResult, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return &driver.CheckResult{}, nil
			}
		},
		func(tea.Model) error { return nil },
	)

	start := time.Now()
	_, err := runCheckWithUI(context.Background(), "checking", nil, []string{"."}, driver.CheckOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("check kept running for %v after the view exited", elapsed)
	}
}

func TestRunCheckWithUIReturnsResult(t *testing.T) {
	want := &driver.CheckResult{}
	stubCheckUI(t,
		func(ctx context.Context, _ []string, opts driver.CheckOptions) (*driver.CheckResult, error) {
			opts.Sink.OnEvent(driver.Event{Path: "a.jsonnet", Status: driver.StatusDone})
			return want, ctx.Err()
		},
		func(m tea.Model) error {
			time.Sleep(10 * time.Millisecond)
			return nil
		},
	)

	got, err := runCheckWithUI(context.Background(), "checking", []string{"a.jsonnet"}, []string{"."}, driver.CheckOptions{})
	if got != want {
		t.Fatalf("result = %p, want %p (err %v)", got, want, err)
	}
}
