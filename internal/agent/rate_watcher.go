package agent

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/SpeedCrash100/serial-perf/internal/byterate"
)

// RateUpdate carries a new transmit budget parsed from the config file.
type RateUpdate struct {
	Rate     byterate.ByteRate
	Capacity int
}

// RateWatcher monitors the config file via fsnotify and publishes rate
// changes for the poll loop to apply. The watcher never touches limiter
// state itself, keeping the single-threaded ownership of the bucket.
type RateWatcher struct {
	path      string
	frameSize int

	updates  chan RateUpdate
	debounce *time.Timer
}

// NewRateWatcher creates a watcher for the given config file.
// frameSize is the lower bound for a derived bucket capacity.
func NewRateWatcher(path string, frameSize int) *RateWatcher {
	return &RateWatcher{
		path:      path,
		frameSize: frameSize,
		updates:   make(chan RateUpdate, 1),
	}
}

// Updates returns the channel on which rate changes are published.
func (w *RateWatcher) Updates() <-chan RateUpdate {
	return w.updates
}

// Run watches the directory containing the config file until the
// context is cancelled. Write and create events on the file reload it
// after a short debounce.
func (w *RateWatcher) Run(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn().Err(err).Msg("rate watcher: failed to create watcher")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		logger.Warn().Err(err).Str("path", w.path).Msg("rate watcher: failed to watch")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload(100 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("rate watcher: error")
		}
	}
}

func (w *RateWatcher) debounceReload(d time.Duration) {
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(d, w.reload)
}

func (w *RateWatcher) reload() {
	// Only the limiter fields are read here; the rest of the file is
	// the CLI's concern and cannot change mid-run.
	var fc struct {
		RateBytesPerSec int `toml:"rate_bytes_per_sec"`
		BucketCapacity  int `toml:"bucket_capacity"`
	}

	b, err := os.ReadFile(w.path)
	if err != nil {
		logger.Warn().Err(err).Str("path", w.path).Msg("rate watcher: read failed")
		return
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		logger.Warn().Err(err).Str("path", w.path).Msg("rate watcher: parse failed")
		return
	}
	if fc.RateBytesPerSec <= 0 {
		return
	}

	capacity := fc.BucketCapacity
	if capacity == 0 {
		capacity = fc.RateBytesPerSec
		if capacity < w.frameSize {
			capacity = w.frameSize
		}
	}

	upd := RateUpdate{Rate: byterate.PerSecond(uint64(fc.RateBytesPerSec)), Capacity: capacity}

	// Drop a stale pending update rather than block.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- upd
}
