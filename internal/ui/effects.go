package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/logging"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/logging/events"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/nav"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/ui/command"
)

type deliverResultMsg struct {
	err error
}

type copyResultMsg struct {
	text string
	err  error
}

type editorFinishedMsg struct {
	err error
}

func (m *Model) runEffect(effect nav.Effect) tea.Cmd {
	switch effect.Kind {
	case nav.EffectDeliver:
		return m.deliverCmd(effect.Text, effect.Exec)
	case nav.EffectCopy:
		return m.copyCmd(effect.Text)
	case nav.EffectOpenEditor:
		return m.editorCmd(effect.Path)
	case nav.EffectReload:
		m.reload("key")
		return nil
	case nav.EffectDescribe:
		if effect.Text == "" {
			m.setInfo("(no description)")
		} else {
			m.setInfo(effect.Text)
		}
		return nil
	case nav.EffectExit:
		return m.quit("escape")
	}
	return nil
}

func (m *Model) deliverCmd(text string, exec bool) tea.Cmd {
	if m.host == nil {
		return nil
	}
	host := m.host
	return m.bus.Execute(command.Request{
		ID:    "deliver",
		Label: text,
		Run: func() tea.Msg {
			return deliverResultMsg{err: host.Deliver(text, exec)}
		},
	})
}

func (m *Model) handleDeliverResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(deliverResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		m.reportError(res.err)
		return nil
	}
	events.Action.Success("delivered")
	return m.quit("delivered")
}

func (m *Model) copyCmd(text string) tea.Cmd {
	if m.host == nil {
		return nil
	}
	host := m.host
	return m.bus.Execute(command.Request{
		ID:    "copy",
		Label: text,
		Run: func() tea.Msg {
			return copyResultMsg{text: text, err: host.Copy(text)}
		},
	})
}

func (m *Model) handleCopyResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(copyResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		m.reportError(res.err)
		return nil
	}
	events.Action.Success("copied")
	m.setInfo("Copied to clipboard")
	return nil
}

func (m *Model) editorCmd(path string) tea.Cmd {
	if m.host == nil {
		return nil
	}
	cmd, err := m.host.EditorCommand(path)
	if err != nil {
		m.reportError(err)
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (m *Model) handleEditorFinishedMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(editorFinishedMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		m.reportError(fmt.Errorf("editor: %w", res.err))
		return nil
	}
	m.reload("editor")
	return nil
}

// reload rebuilds the generation from disk. A failed reload keeps the
// current generation and navigation state on screen.
func (m *Model) reload(source string) {
	if m.store == nil {
		return
	}
	gen, err := m.store.Reload()
	if err != nil {
		events.Catalog.ReloadFailed(m.store.Path(), err)
		m.reportError(err)
		return
	}
	m.gen = gen
	m.state = nav.Initial()
	m.viewport.Reset()
	m.filterCursorDirty = true
	events.Catalog.Loaded(gen.Path, gen.Seq, len(gen.Index.Bookmarks), len(gen.Index.Labels), len(gen.Failures()))
	m.setInfo(fmt.Sprintf("Reloaded %d bookmark(s) (%s)", len(gen.Index.Bookmarks), source))
}

func (m *Model) reportError(err error) {
	if err == nil {
		return
	}
	events.Action.Error(err)
	logging.Error(err)
	m.errMsg = err.Error()
}
