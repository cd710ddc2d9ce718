// Package watcher reports edits to journal files made outside the app.
package watcher

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/daybook/internal/log"
	"github.com/zjrosen/daybook/internal/pubsub"
)

// Change lists the journal files touched within one debounce window.
type Change struct {
	Files   []string
	Removed bool
}

// Event is what the watcher publishes.
type Event = pubsub.Event[Change]

// Watcher monitors a journal directory and publishes a debounced Change
// whenever a markdown file in it is written, created or removed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	debounce  time.Duration
	broker    *pubsub.Broker[Change]
	done      chan struct{}
	stopOnce  sync.Once
}

// Config holds watcher configuration options.
type Config struct {
	Dir         string
	DebounceDur time.Duration
}

// DefaultConfig returns the usual debounce for a journal directory.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:         dir,
		DebounceDur: 300 * time.Millisecond,
	}
}

// New creates a watcher for cfg.Dir. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		dir:       cfg.Dir,
		debounce:  cfg.DebounceDur,
		broker:    pubsub.NewBroker[Change](),
		done:      make(chan struct{}),
	}, nil
}

// Broker returns the broker Change events are published on.
func (w *Watcher) Broker() *pubsub.Broker[Change] {
	return w.broker
}

// Start begins watching the journal directory.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	log.Debug(log.CatWatcher, "watching journal", "dir", w.dir, "debounce", w.debounce)

	go w.loop()
	return nil
}

// Stop terminates the watcher, closes the broker and releases resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.broker.Close()
	})
	return err
}

// loop collects relevant events until the debounce timer fires, then
// publishes them as a single Change.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Change
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !isJournalEvent(event) {
				continue
			}

			name := filepath.Base(event.Name)
			if !slices.Contains(pending.Files, name) {
				pending.Files = append(pending.Files, name)
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				pending.Removed = true
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if len(pending.Files) == 0 {
				continue
			}
			eventType := pubsub.ChangedEvent
			if pending.Removed {
				eventType = pubsub.RemovedEvent
			}
			slices.Sort(pending.Files)
			log.Debug(log.CatWatcher, "journal changed", "files", strings.Join(pending.Files, ","), "type", eventType)
			w.broker.Publish(eventType, pending)
			pending = Change{}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "fsnotify error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isJournalEvent reports whether event touches a markdown file in a way
// that changes what the timeline shows.
func isJournalEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	return strings.HasSuffix(base, ".md") && !strings.HasPrefix(base, ".")
}
