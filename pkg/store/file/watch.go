package file

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/praskarnam/DSynth/pkg/store"
)

// WatchDebounce coalesces bursts of events for the same file.
const WatchDebounce = 200 * time.Millisecond

// WatchEvent reports a reload of custom_types.json.
type WatchEvent struct {
	Path  string
	Types []*store.CustomType
	Error error
}

// Watcher reloads custom types when custom_types.json changes on disk.
type Watcher struct {
	fs       *FileStore
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	eventCh  chan WatchEvent
	mu       sync.Mutex
	running  bool
}

// NewWatcher creates a watcher for the store's data directory.
func NewWatcher(fs *FileStore) *Watcher {
	return &Watcher{
		fs:       fs,
		debounce: WatchDebounce,
		eventCh:  make(chan WatchEvent, 10),
	}
}

// Start begins watching. The data directory is watched rather than the file
// because saves replace the file by rename.
func (w *Watcher) Start() (<-chan WatchEvent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return w.eventCh, nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(w.fs.DataDir()); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	stopCh := w.stopCh
	doneCh := w.doneCh
	go w.watchLoop(fw, stopCh, doneCh)

	return w.eventCh, nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}

	close(w.stopCh)
	w.running = false
	doneCh := w.doneCh
	w.mu.Unlock()

	<-doneCh
}

func (w *Watcher) watchLoop(fw *fsnotify.Watcher, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	defer func() { _ = fw.Close() }()

	target := filepath.Join(w.fs.DataDir(), store.CustomTypesFile)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.emit(stopCh, WatchEvent{Path: target, Error: err})
		case <-fire:
			fire = nil
			w.emit(stopCh, w.reload(target))
		}
	}
}

func (w *Watcher) reload(path string) WatchEvent {
	types, err := w.fs.ReloadCustomTypes()
	if err != nil {
		w.fs.log.Warn("custom types reload failed", "path", path, "error", err)
		return WatchEvent{Path: path, Error: err}
	}
	w.fs.log.Info("custom types reloaded", "path", path, "count", len(types))
	return WatchEvent{Path: path, Types: types}
}

func (w *Watcher) emit(stopCh <-chan struct{}, ev WatchEvent) {
	select {
	case w.eventCh <- ev:
	case <-stopCh:
	}
}
