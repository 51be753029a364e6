// Package watcher follows a single reference file on disk and reports
// debounced change notifications, so a session can reload text that is
// edited while it is being typed.
//
// The parent directory is watched rather than the file itself. Editors that
// save by writing a temporary file and renaming it over the original would
// otherwise drop the watch.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Errors returned by the watcher.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
	ErrIsDirectory   = errors.New("path is a directory")
)

// DefaultDelay is used when a non-positive debounce delay is given.
const DefaultDelay = 100 * time.Millisecond

// Op describes what happened to the file.
type Op uint32

// Operations, combinable as a bit mask when debounced events coalesce.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Has reports whether o includes all bits of other.
func (o Op) Has(other Op) bool { return o&other == other }

func (o Op) String() string {
	names := []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
	}
	var s string
	for _, n := range names {
		if o.Has(n.op) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "NONE"
	}
	return s
}

// Event is a debounced change to the watched file.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// FileWatcher reports changes to one file.
type FileWatcher struct {
	path  string
	name  string
	delay time.Duration

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending *pendingEvent
	closed  bool

	events  chan Event
	errors  chan error
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// pendingEvent is an event waiting for its debounce timer.
type pendingEvent struct {
	event Event
	timer *time.Timer
}

// New starts watching path. Changes that arrive within delay of each other
// are merged into a single event.
func New(path string, delay time.Duration) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotExist
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrIsDirectory
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &FileWatcher{
		path:    absPath,
		name:    filepath.Base(absPath),
		delay:   delay,
		fsw:     fsw,
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string { return w.path }

// Events returns the debounced event channel. It is closed by Close.
func (w *FileWatcher) Events() <-chan Event { return w.events }

// Errors returns the error channel. It is closed by Close.
func (w *FileWatcher) Errors() <-chan error { return w.errors }

// Close stops the watcher and closes its channels.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.pending != nil {
		w.pending.timer.Stop()
		w.pending = nil
	}
	w.mu.Unlock()

	w.wg.Wait()

	err := w.fsw.Close()

	w.mu.Lock()
	close(w.events)
	close(w.errors)
	w.mu.Unlock()

	return err
}

func (w *FileWatcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.name {
				continue
			}
			if op := convertOp(ev.Op); op != 0 {
				w.queue(op)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// queue merges op into the pending event and restarts the debounce timer.
func (w *FileWatcher) queue(op Op) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	now := time.Now()
	if w.pending != nil {
		w.pending.event.Op |= op
		w.pending.event.Timestamp = now
		w.pending.timer.Reset(w.delay)
		return
	}

	w.pending = &pendingEvent{
		event: Event{Path: w.path, Op: op, Timestamp: now},
	}
	w.pending.timer = time.AfterFunc(w.delay, w.fire)
}

// fire delivers the pending event. A full channel drops it; the receiver
// only needs to know that the file changed.
func (w *FileWatcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.pending == nil {
		return
	}
	event := w.pending.event
	w.pending = nil

	select {
	case w.events <- event:
	default:
	}
}

// Flush delivers a pending event immediately.
func (w *FileWatcher) Flush() {
	w.mu.Lock()
	if w.pending != nil {
		w.pending.timer.Stop()
	}
	w.mu.Unlock()
	w.fire()
}

func (w *FileWatcher) sendError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.errors <- err:
	default:
	}
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}
