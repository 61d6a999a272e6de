package events

import "github.com/atomicstack/tmux-popup-bookmarks/internal/logging"

type CatalogTracer struct{}

type HostTracer struct{}

var (
	Catalog = CatalogTracer{}
	Host    = HostTracer{}
)

func (CatalogTracer) Loaded(path string, seq, bookmarks, labels, failures int) {
	logging.Trace("catalog.loaded", map[string]interface{}{
		"path":      path,
		"seq":       seq,
		"bookmarks": bookmarks,
		"labels":    labels,
		"failures":  failures,
	})
}

func (CatalogTracer) ReloadFailed(path string, err error) {
	logging.Trace("catalog.reload-failed", map[string]interface{}{"path": path, "error": err.Error()})
}

func (CatalogTracer) Created(path string) {
	logging.Trace("catalog.created", map[string]interface{}{"path": path})
}

func (HostTracer) Deliver(target string, exec bool, length int) {
	logging.Trace("host.deliver", map[string]interface{}{"target": target, "exec": exec, "length": length})
}

func (HostTracer) Copy(length int) {
	logging.Trace("host.copy", map[string]interface{}{"length": length})
}

func (HostTracer) Editor(argv []string) {
	logging.Trace("host.editor", map[string]interface{}{"argv": argv})
}
