package cliconfig

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounceDelay is the delay to wait after a file change before
// reloading. Editors often produce several events per save.
const DefaultDebounceDelay = 100 * time.Millisecond

// ReloadFunc receives the freshly parsed config file after a change.
type ReloadFunc func(fc FileConfig)

// Watcher monitors a config file and invokes a callback when it changes.
// Only the file named at construction triggers reloads; other files in
// the same directory are ignored.
type Watcher struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration
	onReload      ReloadFunc
	logger        zerolog.Logger

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// NewWatcher creates a watcher for the config file at path.
// debounceDelay <= 0 selects DefaultDebounceDelay.
func NewWatcher(path string, debounceDelay time.Duration, onReload ReloadFunc, logger zerolog.Logger) *Watcher {
	if debounceDelay <= 0 {
		debounceDelay = DefaultDebounceDelay
	}
	return &Watcher{
		path:          path,
		debounceDelay: debounceDelay,
		onReload:      onReload,
		logger:        logger,
	}
}

// Start begins watching. It watches the parent directory rather than
// the file itself so that atomic-rename saves keep working.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.watchLoop(watchCtx, watcher)

	return nil
}

// Stop ends watching and waits for the loop to exit.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
}

func (w *Watcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.wg.Done()
	defer watcher.Close()

	name := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("config watcher error")
		}
	}
}

func (w *Watcher) debounceReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	w.debounce = time.AfterFunc(w.debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	fc, err := LoadFileConfig(w.path)
	if err != nil {
		w.logger.Error().Err(err).Str("path", w.path).Msg("config reload failed")
		return
	}
	w.logger.Info().Str("path", w.path).Msg("config file reloaded")
	w.onReload(fc)
}
