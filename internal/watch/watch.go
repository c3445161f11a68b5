// Package watch reports changes to a single file on disk.
package watch

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/logger"
)

// DefaultDelay is how long writes must settle before a change is reported.
// Exporters often write a file in several chunks.
const DefaultDelay = 200 * time.Millisecond

// ErrClosed is returned when using a closed Watcher.
var ErrClosed = errors.New("watcher closed")

// Watcher watches one file at a time. Rapid bursts of events are coalesced
// into a single notification on Changed.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	delay    time.Duration
	changed  chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup

	mu     sync.Mutex
	path   string
	dir    string
	closed bool

	log *zap.Logger
}

// New starts a watcher. A delay of zero uses DefaultDelay.
func New(delay time.Duration) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	w := &Watcher{
		fsnotify: fsWatch,
		delay:    delay,
		changed:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		log:      logger.Named("watch"),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Changed receives a value after the watched file was written, created or
// replaced.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Watch switches the watcher to path. The parent directory is watched so
// that editors which save by renaming a temporary file are noticed.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if abs == w.path {
		return nil
	}
	if dir != w.dir {
		if w.dir != "" {
			_ = w.fsnotify.Remove(w.dir)
		}
		if err := w.fsnotify.Add(dir); err != nil {
			w.path, w.dir = "", ""
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dir = dir
	}
	w.path = abs

	w.log.Debug("watching file", zap.String("path", abs))
	return nil
}

// Path returns the absolute path being watched, or "" if none.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	w.wg.Wait()
	return w.fsnotify.Close()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if !w.relevant(e) {
				continue
			}
			timer.Reset(w.delay)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))

		case <-timer.C:
			select {
			case w.changed <- struct{}{}:
			default:
			}

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(e fsnotify.Event) bool {
	if e.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(e.Name)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return name == w.path
}
