// Package watcher monitors an artifact root for delta file changes so a
// foreground `ceaplane watch` session can re-summarize therapies as an
// upstream pipeline rewrites their deltas.csv files.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openhta/ceaplane/internal/input"
)

// debounceWindow coalesces the burst of write events a single CSV rewrite
// produces into one re-summarization.
const debounceWindow = 500 * time.Millisecond

// Event identifies one changed delta artifact.
type Event struct {
	Path        string
	Perspective string
	Therapy     string
}

// Handler receives debounced delta change events.
type Handler func(Event)

// Watcher tails filesystem events under the artifact root.
type Watcher struct {
	root    string
	handler Handler
	fs      *fsnotify.Watcher

	mu       sync.Mutex
	debounce map[string]*time.Timer

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a watcher for the given artifact root.
func New(root string, handler Handler) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	return &Watcher{
		root:     root,
		handler:  handler,
		fs:       fsw,
		debounce: make(map[string]*time.Timer),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start registers the existing directory tree and begins dispatching events.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fs.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to register watch tree: %w", err)
	}

	w.wg.Add(1)
	go w.run()
	return nil
}

// Stop halts event dispatch. Pending debounce timers are cancelled; their
// events are lost, which is fine for a foreground session being torn down.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	err := w.fs.Close()
	w.wg.Wait()

	w.mu.Lock()
	for _, t := range w.debounce {
		t.Stop()
	}
	w.mu.Unlock()

	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: %v\n", err)
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) handleFSEvent(ev fsnotify.Event) {
	// New perspective/therapy directories appear after the watcher started;
	// pick them up so their deltas are covered too.
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.fs.Add(ev.Name); err != nil {
				fmt.Fprintf(os.Stderr, "watcher: failed to watch %s: %v\n", ev.Name, err)
			}
			return
		}
	}

	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
		return
	}
	if filepath.Base(ev.Name) != input.DeltasFileName {
		return
	}

	event, ok := w.classify(ev.Name)
	if !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, exists := w.debounce[ev.Name]; exists {
		t.Stop()
	}
	w.debounce[ev.Name] = time.AfterFunc(debounceWindow, func() {
		w.mu.Lock()
		delete(w.debounce, event.Path)
		w.mu.Unlock()
		w.handler(event)
	})
}

// classify recovers (perspective, therapy) from an artifact path of the form
// <root>/<perspective dir>/<therapy>/deltas.csv. Files elsewhere under the
// root are ignored.
func (w *Watcher) classify(path string) (Event, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return Event{}, false
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 3 {
		return Event{}, false
	}

	perspective, ok := input.PerspectiveFromDir(parts[0])
	if !ok {
		return Event{}, false
	}

	return Event{Path: path, Perspective: perspective, Therapy: parts[1]}, true
}
