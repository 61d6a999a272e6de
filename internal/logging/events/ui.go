package events

import "github.com/atomicstack/tmux-popup-bookmarks/internal/logging"

type NavTracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	Nav     = NavTracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (NavTracer) Event(event, mode string, selection int) {
	logging.Trace("nav.event", map[string]interface{}{"event": event, "mode": mode, "selection": selection})
}

func (NavTracer) Mode(from, to string) {
	logging.Trace("nav.mode", map[string]interface{}{"from": from, "to": to})
}

func (NavTracer) Effect(kind string) {
	logging.Trace("nav.effect", map[string]interface{}{"effect": kind})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Changed(mode, filter, effective string, visible int) {
	logging.Trace("filter.changed", map[string]interface{}{
		"mode":      mode,
		"filter":    filter,
		"effective": effective,
		"visible":   visible,
	})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
