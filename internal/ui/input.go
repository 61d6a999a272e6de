package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/nav"
)

const (
	filterPromptText      = "» "
	filterPlaceholderText = "(type to search)"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// filterPrompt renders the query line: the effective filter mode, the prompt
// and the query with the caret at its end.
func (m *Model) filterPrompt() string {
	if m.state.Mode == nav.ModeUsage {
		return ""
	}
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = *styles.Filter
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}

	mode := m.state.EffectiveFilterMode(m.navView()).String()
	if m.state.Forced {
		mode += "*"
	}
	prefix := render(styles.FilterMode, mode) + " " + render(styles.FilterPrompt, filterPromptText)

	if m.state.Filter == "" {
		runes := []rune(filterPlaceholderText)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = *styles.FilterPlaceholder
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prefix + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	return prefix + render(styles.Filter, m.state.Filter) + m.renderFilterCursor(" ")
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
