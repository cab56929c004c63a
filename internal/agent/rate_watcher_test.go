package agent

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeRateConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestRateWatcherPublishesUpdate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeRateConfig(t, path, "rate_bytes_per_sec = 100\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewRateWatcher(path, 5)
	go w.Run(ctx)

	// Give the watcher time to install before touching the file.
	time.Sleep(200 * time.Millisecond)
	writeRateConfig(t, path, "rate_bytes_per_sec = 250\nbucket_capacity = 30\n")

	select {
	case upd := <-w.Updates():
		if upd.Rate.Bytes() != 250 {
			t.Fatalf("rate = %d, want 250", upd.Rate.Bytes())
		}
		if upd.Capacity != 30 {
			t.Fatalf("capacity = %d, want 30", upd.Capacity)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no update published")
	}
}

func TestRateWatcherDerivesCapacity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewRateWatcher(path, 5)
	go w.Run(ctx)

	time.Sleep(200 * time.Millisecond)
	// A rate below one frame still gets a frame-sized burst.
	writeRateConfig(t, path, "rate_bytes_per_sec = 1\n")

	select {
	case upd := <-w.Updates():
		if upd.Capacity != 5 {
			t.Fatalf("capacity = %d, want frame size 5", upd.Capacity)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no update published")
	}
}

func TestRateWatcherIgnoresInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewRateWatcher(path, 5)
	go w.Run(ctx)

	time.Sleep(200 * time.Millisecond)
	writeRateConfig(t, path, "rate_bytes_per_sec = \"not a number\"\n")

	select {
	case upd := <-w.Updates():
		t.Fatalf("unexpected update: %+v", upd)
	case <-time.After(500 * time.Millisecond):
	}
}
