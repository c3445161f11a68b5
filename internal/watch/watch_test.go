package watch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testDelay = 20 * time.Millisecond

func waitChanged(w *Watcher, timeout time.Duration) bool {
	select {
	case <-w.Changed():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatchWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(testDelay)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("v 1 1 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !waitChanged(w, 2*time.Second) {
		t.Fatal("expected a change notification")
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.obj")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(testDelay)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.obj"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if waitChanged(w, 10*testDelay) {
		t.Error("unexpected notification for another file")
	}
}

func TestWatchCoalesces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.obj")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('0' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if !waitChanged(w, 2*time.Second) {
		t.Fatal("expected a change notification")
	}
	if waitChanged(w, 300*time.Millisecond) {
		t.Error("expected the burst to produce a single notification")
	}
}

func TestWatchSwitchFile(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	a := filepath.Join(dirA, "a.obj")
	b := filepath.Join(dirB, "b.obj")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New(testDelay)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if w.Path() != b {
		t.Errorf("expected path %s, got %s", b, w.Path())
	}

	if err := os.WriteFile(a, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if waitChanged(w, 10*testDelay) {
		t.Error("unexpected notification for the previous file")
	}
}

func TestWatchMissingDir(t *testing.T) {
	w, err := New(testDelay)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "model.obj")); err == nil {
		t.Error("expected error for missing directory")
	}
	if w.Path() != "" {
		t.Errorf("expected no watched path, got %s", w.Path())
	}
}

func TestClose(t *testing.T) {
	w, err := New(testDelay)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if err := w.Watch("model.obj"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
