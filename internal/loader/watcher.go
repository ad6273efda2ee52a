package loader

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/numan-developer-2/RAGSystem-Company/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last change
// before signalling, so bursts of writes collapse into one event.
const DefaultDebounce = 2 * time.Second

// Watcher monitors a corpus directory and signals when supported files
// change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a directory watcher.
func NewWatcher() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{watcher: w, debounce: DefaultDebounce}, nil
}

// Watch starts monitoring dir. Each value on the returned channel means
// at least one supported file changed since the previous signal. The
// channel closes when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan struct{}, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	changes := make(chan struct{}, 1)

	go func() {
		defer close(changes)

		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				logger.Debug("watcher: %s %s", event.Op, event.Name)
				if timer == nil {
					timer = time.NewTimer(w.debounce)
					fire = timer.C
				} else {
					timer.Reset(w.debounce)
				}
			case <-fire:
				timer = nil
				fire = nil
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher: %v", err)
			}
		}
	}()

	return changes, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	_, ok := FormatForPath(event.Name)
	return ok
}
