package cliconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`frame_rate = 30`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	reloaded := make(chan FileConfig, 4)
	w := NewWatcher(path, 20*time.Millisecond, func(fc FileConfig) {
		reloaded <- fc
	}, zerolog.Nop())

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`frame_rate = 15`), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case fc := <-reloaded:
		if fc.FrameRate != 15 {
			t.Errorf("reloaded rate: %d", fc.FrameRate)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`frame_rate = 30`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	reloaded := make(chan FileConfig, 4)
	w := NewWatcher(path, 20*time.Millisecond, func(fc FileConfig) {
		reloaded <- fc
	}, zerolog.Nop())

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	defer w.Stop()

	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("unrelated"), 0o600); err != nil {
		t.Fatalf("write other file: %v", err)
	}

	select {
	case <-reloaded:
		t.Error("unrelated file triggered reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStopTerminates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(``), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	w := NewWatcher(path, 0, func(FileConfig) {}, zerolog.Nop())
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
