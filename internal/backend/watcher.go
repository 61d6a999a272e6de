package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/logging/events"
)

// Event reports that the watched document changed, or that watching failed.
type Event struct {
	Path string
	Op   string
	Err  error
}

// Watcher observes a single document and publishes one event per burst of
// changes. The containing directory is watched rather than the file so that
// editors replacing the file on save are still noticed.
type Watcher struct {
	path    string
	targets map[string]struct{}
	quiet   time.Duration

	fs *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. Changes closer together than quiet are
// coalesced into a single event.
func NewWatcher(path string, quiet time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	targets := map[string]struct{}{abs: {}}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		targets[resolved] = struct{}{}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	dirs := map[string]struct{}{}
	for target := range targets {
		dirs[filepath.Dir(target)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:    abs,
		targets: targets,
		quiet:   quiet,
		fs:      fsw,
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan Event, 4),
	}
	events.Watch.Start(abs)

	w.wg.Add(1)
	go w.loop()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Events returns the channel of change notifications. It is closed once the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	_, ok := w.targets[filepath.Clean(ev.Name)]
	return ok
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	defer w.fs.Close()
	defer events.Watch.Stop(w.path)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			events.Watch.Change(ev.Name, ev.Op.String())
			pending = Event{Path: w.path, Op: ev.Op.String()}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.quiet)
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			events.Watch.Error(err)
			if !w.emit(Event{Path: w.path, Err: err}) {
				return
			}
		case <-fire:
			fire = nil
			if !w.emit(pending) {
				return
			}
		}
	}
}
