package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"jsonnetlex/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.jsonnet", "b.jsonnet"}, events).(*progressModel)

	m.applyEvent(driver.Event{Path: "a.jsonnet", Status: driver.StatusDone, Cached: true})
	m.applyEvent(driver.Event{Path: "b.jsonnet", Status: driver.StatusError})
	m.applyEvent(driver.Event{Path: "c.jsonnet", Status: driver.StatusWorking})

	if len(m.items) != 3 {
		t.Fatalf("items = %d, want 3", len(m.items))
	}
	finished, failed := m.counts()
	if finished != 2 || failed != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", finished, failed)
	}

	view := m.View()
	for _, want := range []string{"check 2/3", "1 with errors", "1 cached", "c.jsonnet"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelVisibleCapsRows(t *testing.T) {
	files := make([]string, maxVisible+5)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".jsonnet"
	}
	m := NewProgressModel("check", files, nil).(*progressModel)
	m.applyEvent(driver.Event{Path: files[len(files)-1], Status: driver.StatusWorking})

	vis := m.visible()
	if len(vis) != maxVisible {
		t.Fatalf("visible = %d, want %d", len(vis), maxVisible)
	}
	if vis[0].path != files[len(files)-1] {
		t.Fatalf("working file not first: %q", vis[0].path)
	}
	if !strings.Contains(m.View(), "5 more") {
		t.Fatalf("missing overflow line")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("lib/very/long/path.jsonnet", 10); got != "lib/ver..." || runewidth.StringWidth(got) != 10 {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("日本語のパス", 7); got != "日本..." {
		t.Fatalf("wide truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
}
