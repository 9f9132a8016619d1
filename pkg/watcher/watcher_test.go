package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchCallsBackOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.odecam")
	other := filepath.Join(dir, "other.txt")
	for _, f := range []string{path, other} {
		if err := os.WriteFile(f, []byte("mode select\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer fw.Close()

	changed := make(chan string, 10)
	if err := fw.Watch([]string{path}, func(f string) { changed <- f }); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	// unwatched files in the same directory are ignored
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("mode draw\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	want, _ := filepath.Abs(path)
	select {
	case got := <-changed:
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestRemoveAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer fw.Close()

	if err := fw.Watch([]string{path, path}, func(string) {}); err != nil {
		t.Fatal(err)
	}
	if n := len(fw.Files()); n != 1 {
		t.Fatalf("expected one watched file, got %d", n)
	}
	if err := fw.RemoveAll(); err != nil {
		t.Fatal(err)
	}
	if n := len(fw.Files()); n != 0 {
		t.Errorf("expected no watched files, got %d", n)
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer fw.Close()

	missing := filepath.Join(t.TempDir(), "gone", "plan.png")
	if err := fw.Watch([]string{missing}, func(string) {}); err == nil {
		t.Error("expected error for a missing directory")
	}
}
