package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/logging/events"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/nav"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	evs := m.keys.Events(keyMsg)
	if len(evs) == 0 {
		return nil
	}
	m.errMsg = ""
	m.clearInfo()
	var cmds []tea.Cmd
	for _, ev := range evs {
		if cmd := m.apply(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.exitReason != "" {
			break
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

// apply feeds one event through the state machine and runs its effect.
func (m *Model) apply(ev nav.Event) tea.Cmd {
	v := m.navView()
	before := m.state
	next, effect := nav.Transition(before, ev, v)
	m.state = next
	events.Nav.Event(ev.Kind.String(), next.Mode.String(), next.Selection)

	if before.Mode != next.Mode {
		events.Nav.Mode(before.Mode.String(), next.Mode.String())
		m.viewport.Reset()
		m.forceClearInfo()
	}
	if before.Filter != next.Filter || before.FilterMode != next.FilterMode || before.Mode != next.Mode {
		events.Filter.Changed(next.FilterMode.String(), next.Filter, next.EffectiveFilterMode(v).String(), next.VisibleLen(v))
		m.filterCursorDirty = true
	}
	m.syncViewport()

	if effect.None() {
		return nil
	}
	events.Nav.Effect(effect.Kind.String())
	return m.runEffect(effect)
}

func (m *Model) syncViewport() {
	m.viewport.Follow(m.state.Selection, m.state.VisibleLen(m.navView()), m.maxVisibleItems())
}
