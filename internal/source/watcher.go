package source

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last write to a
// file before reporting it. Editors often save in several writes.
const DefaultDebounce = 500 * time.Millisecond

// ChangedHandler is called with the id of a questionnaire whose file changed.
type ChangedHandler func(id string)

// Watcher reports edits to questionnaire files in a Dir.
type Watcher struct {
	dir      *Dir
	watcher  *fsnotify.Watcher
	onChange ChangedHandler
	debounce time.Duration

	mu     sync.Mutex
	only   map[string]bool // ids of interest; empty means every file
	timers map[string]*time.Timer
	closed bool
	done   chan struct{}
}

// NewWatcher watches dir's root and calls onChange for changed files.
// A debounce of zero uses DefaultDebounce.
func NewWatcher(dir *Dir, debounce time.Duration, onChange ChangedHandler) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	root, err := filepath.Abs(dir.Root())
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(root); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}

	w := &Watcher{
		dir:      NewDir(root),
		watcher:  fw,
		onChange: onChange,
		debounce: debounce,
		only:     make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	go w.watchLoop()

	log.Printf("watcher: watching %s", root)
	return w, nil
}

// Track limits reports to the given id. It may be called more than once.
func (w *Watcher) Track(id string) {
	w.mu.Lock()
	w.only[id] = true
	w.mu.Unlock()
}

// Untrack removes id from the tracked set.
func (w *Watcher) Untrack(id string) {
	w.mu.Lock()
	delete(w.only, id)
	w.mu.Unlock()
}

// Close stops the watcher and any pending reports.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for id, t := range w.timers {
		t.Stop()
		delete(w.timers, id)
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			absPath, _ := filepath.Abs(event.Name)
			id, ok := w.dir.IDFromPath(absPath)
			if !ok {
				continue
			}
			w.schedule(id)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: error: %v", err)
		}
	}
}

func (w *Watcher) schedule(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if len(w.only) > 0 && !w.only[id] {
		return
	}
	if t, exists := w.timers[id]; exists {
		t.Stop()
	}
	w.timers[id] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, id)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		log.Printf("watcher: questionnaire %s changed", id)
		if w.onChange != nil {
			w.onChange(id)
		}
	})
}
