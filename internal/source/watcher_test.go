package source_test

import (
	"testing"
	"time"

	"questionnaire/internal/source"
)

func TestWatcher_ReportsDebouncedChange(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "q1.json", `{"title":"v1"}`)

	changed := make(chan string, 8)
	w, err := source.NewWatcher(source.NewDir(root), 50*time.Millisecond, func(id string) {
		changed <- id
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	for i := 0; i < 3; i++ {
		writeFile(t, root, "q1.json", `{"title":"v2"}`)
	}

	select {
	case id := <-changed:
		if id != "q1" {
			t.Fatalf("changed id = %q, want q1", id)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	select {
	case id := <-changed:
		t.Fatalf("expected a single debounced report, got extra %q", id)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_TrackFiltersIDs(t *testing.T) {
	root := t.TempDir()
	changed := make(chan string, 8)
	w, err := source.NewWatcher(source.NewDir(root), 20*time.Millisecond, func(id string) {
		changed <- id
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()
	w.Track("wanted")

	writeFile(t, root, "other.json", `{}`)
	writeFile(t, root, "notes.txt", "x")
	writeFile(t, root, "wanted.yaml", "title: x\n")

	select {
	case id := <-changed:
		if id != "wanted" {
			t.Fatalf("changed id = %q, want wanted", id)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := source.NewWatcher(source.NewDir(t.TempDir()), 0, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
