package events

import "github.com/atomicstack/tmux-popup-bookmarks/internal/logging"

type WatchTracer struct{}

var Watch = WatchTracer{}

func (WatchTracer) Start(path string) {
	logging.Trace("watch.start", map[string]interface{}{"path": path})
}

func (WatchTracer) Change(path, op string) {
	logging.Trace("watch.change", map[string]interface{}{"path": path, "op": op})
}

func (WatchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"error": err.Error()})
}

func (WatchTracer) Stop(path string) {
	logging.Trace("watch.stop", map[string]interface{}{"path": path})
}
