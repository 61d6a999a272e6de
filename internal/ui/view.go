package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/format/table"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/nav"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.modeHeader(), raw: true})

	switch m.state.Mode {
	case nav.ModeUsage:
		lines = append(lines, m.usageLines()...)
	default:
		lines = append(lines, m.listLines()...)
	}

	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.footerText(), style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (status + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	bottomLines := []styledLine{
		m.statusLine(),
		{text: m.filterPrompt(), raw: true},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

// modeHeader renders one tab per mode plus a counter of visible rows.
func (m *Model) modeHeader() string {
	tabs := make([]string, 0, len(nav.Modes))
	for _, mode := range nav.Modes {
		style := styles.Tab
		if mode == m.state.Mode {
			style = styles.ActiveTab
		}
		title := mode.Title()
		if style != nil {
			title = style.Render(title)
		}
		tabs = append(tabs, title)
	}
	header := strings.Join(tabs, " ")
	if counter := m.counterText(); counter != "" {
		if styles.Counter != nil {
			counter = styles.Counter.Render(counter)
		}
		header += "  " + counter
	}
	return header
}

func (m *Model) counterText() string {
	if m.gen == nil {
		return ""
	}
	v := m.navView()
	switch m.state.Mode {
	case nav.ModeBookmarks:
		return fmt.Sprintf("%d/%d", len(m.state.VisibleBookmarks(v)), len(m.gen.Index.Bookmarks))
	case nav.ModeLabels:
		return fmt.Sprintf("%d/%d", len(m.state.VisibleLabels(v)), len(m.gen.Index.Labels))
	}
	return ""
}

func (m *Model) listLines() []styledLine {
	v := m.navView()
	labels := m.rowLabels()
	if len(labels) == 0 {
		msg := "(no entries)"
		if m.state.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.state.Filter)
		} else if m.state.Mode == nav.ModeBookmarks && m.gen != nil && len(m.gen.Index.Bookmarks) == 0 {
			msg = fmt.Sprintf("No bookmarks in %s", v.DocumentPath)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	maxItems := m.maxVisibleItems()
	if maxItems > 1 && len(labels) > maxItems {
		maxItems-- // room for the hidden-row counter
	}
	m.viewport.Follow(m.state.Selection, len(labels), maxItems)
	start, end := m.viewport.Window(len(labels), maxItems)
	lines := make([]styledLine, 0, end-start+1)
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.buildItemLine(labels[idx], idx == m.state.Selection, m.width))
	}
	if hidden := len(labels) - (end - start); hidden > 0 {
		lines = append(lines, styledLine{text: fmt.Sprintf("  %d more", hidden), style: styles.Counter})
	}
	return lines
}

// rowLabels returns the display text of every visible row in the current mode.
func (m *Model) rowLabels() []string {
	v := m.navView()
	switch m.state.Mode {
	case nav.ModeBookmarks:
		rows := m.state.VisibleBookmarks(v)
		out := make([]string, len(rows))
		for i, row := range rows {
			text := row.Name
			if m.state.ShowDesc && row.Desc != "" {
				text = row.Desc
			}
			out[i] = fmt.Sprintf("%d. %s", row.ID, text)
		}
		return out
	case nav.ModeLabels:
		rows := m.state.VisibleLabels(v)
		out := make([]string, len(rows))
		for i, row := range rows {
			out[i] = fmt.Sprintf("%d. %s (%d)", row.ID, row.Name, len(row.Bookmarks))
		}
		return out
	}
	return nil
}

func (m *Model) usageLines() []styledLine {
	rows := m.keys.Usage()
	styled := make([][]string, len(rows))
	for i, row := range rows {
		k, desc := row[0], row[1]
		if styles.UsageKey != nil {
			k = styles.UsageKey.Render(k)
		}
		if styles.UsageDesc != nil {
			desc = styles.UsageDesc.Render(desc)
		}
		styled[i] = []string{k, desc}
	}
	formatted := table.Format(styled, nil)
	lines := make([]styledLine, 0, len(formatted)+2)
	for _, line := range formatted {
		lines = append(lines, styledLine{text: "  " + line, raw: true})
	}
	if m.store != nil {
		lines = append(lines, styledLine{}, styledLine{text: "Document: " + m.store.Path(), style: styles.Info})
	}
	return lines
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if failures := m.gen.Failures(); len(failures) > 0 {
		text := fmt.Sprintf("%d bookmark(s) failed to resolve", len(failures))
		if m.verbose || len(failures) == 1 {
			text += ": " + failures[0].Err.Error()
		}
		return styledLine{text: text, style: styles.Error}
	}
	return styledLine{}
}

func (m *Model) footerText() string {
	parts := make([]string, 0, 16)
	for _, b := range m.keys.Help() {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) buildItemLine(label string, selected bool, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - ansi.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header, status, filter prompt
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ansi.Truncate(text, 1, "")
	}
	return ansi.Truncate(text, width, "…")
}
