package watchdog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcher_DebouncedCallback(t *testing.T) {
	root := t.TempDir()

	var mu sync.Mutex
	var batches [][]string
	w, err := New(50*time.Millisecond, func(changed []string) {
		mu.Lock()
		batches = append(batches, changed)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	if err := w.AddRoot(root); err != nil {
		t.Fatalf("AddRoot: %v", err)
	}
	w.Start()

	// Rapid writes should collapse into one batch.
	for i := 0; i < 3; i++ {
		path := filepath.Join(root, "scene.json")
		if err := os.WriteFile(path, []byte{byte(i)}, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(batches)
		mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 1 {
		t.Fatalf("got %d callback batches, want 1 (debounced)", len(batches))
	}
	if len(batches[0]) == 0 {
		t.Error("batch should name the changed files")
	}
}

func TestWatcher_AddRootMissing(t *testing.T) {
	w, err := New(time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	if err := w.AddRoot(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("want error for a missing root")
	}
}
