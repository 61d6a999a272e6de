// Package keys maps terminal key presses onto navigation events.
package keys

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/nav"
)

// Bindings holds the user-configurable shortcuts in either "ctrl+e" or
// "Ctrl e" notation.
type Bindings struct {
	Edit        string
	Reload      string
	FilterLabel string
	FilterID    string
	Describe    string
	Copy        string
}

// DefaultBindings mirrors the documented defaults.
func DefaultBindings() Bindings {
	return Bindings{
		Edit:        "ctrl+e",
		Reload:      "ctrl+r",
		FilterLabel: "ctrl+l",
		FilterID:    "ctrl+n",
		Describe:    "ctrl+d",
		Copy:        "ctrl+y",
	}
}

// Map is the full key map of the popup.
type Map struct {
	Edit        key.Binding
	Reload      key.Binding
	FilterLabel key.Binding
	FilterID    key.Binding
	Describe    key.Binding
	Copy        key.Binding

	Up        key.Binding
	Down      key.Binding
	NextMode  key.Binding
	PrevMode  key.Binding
	Bookmarks key.Binding
	Labels    key.Binding
	UsageMode key.Binding
	Enter     key.Binding
	Backspace key.Binding
	Escape    key.Binding
	Interrupt key.Binding
}

// New validates b and builds the key map.
func New(b Bindings) (Map, error) {
	m := fixed()
	specs := []struct {
		name  string
		value string
		help  string
		dst   *key.Binding
	}{
		{"edit", b.Edit, "edit bookmarks", &m.Edit},
		{"reload", b.Reload, "reload bookmarks", &m.Reload},
		{"filter-label", b.FilterLabel, "filter by label", &m.FilterLabel},
		{"filter-id", b.FilterID, "filter by id", &m.FilterID},
		{"describe", b.Describe, "toggle descriptions", &m.Describe},
		{"copy", b.Copy, "copy command", &m.Copy},
	}
	seen := map[string]string{}
	for _, spec := range specs {
		normalized, err := ParseBinding(spec.value)
		if err != nil {
			return Map{}, fmt.Errorf("bind-%s: %w", spec.name, err)
		}
		if other, dup := seen[normalized]; dup {
			return Map{}, fmt.Errorf("bind-%s: %q is already bound to %s", spec.name, normalized, other)
		}
		if m.reserved(normalized) {
			return Map{}, fmt.Errorf("bind-%s: %q is reserved", spec.name, normalized)
		}
		seen[normalized] = spec.name
		*spec.dst = key.NewBinding(key.WithKeys(normalized), key.WithHelp(normalized, spec.help))
	}
	return m, nil
}

// Default returns the key map for DefaultBindings.
func Default() Map {
	m, err := New(DefaultBindings())
	if err != nil {
		panic(err)
	}
	return m
}

func fixed() Map {
	return Map{
		Up:        key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "move up")),
		Down:      key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓/tab", "move down")),
		NextMode:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next tab")),
		PrevMode:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous tab")),
		Bookmarks: key.NewBinding(key.WithKeys("alt+1", "f1"), key.WithHelp("alt+1", "bookmarks")),
		Labels:    key.NewBinding(key.WithKeys("alt+2", "f2"), key.WithHelp("alt+2", "labels")),
		UsageMode: key.NewBinding(key.WithKeys("alt+3", "f3"), key.WithHelp("alt+3", "usage")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "insert command / open label")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete character")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "close")),
	}
}

func (m Map) reserved(k string) bool {
	for _, b := range []key.Binding{m.Up, m.Down, m.NextMode, m.PrevMode, m.Enter, m.Backspace, m.Escape, m.Interrupt} {
		for _, existing := range b.Keys() {
			if existing == k {
				return true
			}
		}
	}
	return false
}

var namedKeys = map[string]bool{
	"enter": true, "tab": true, "esc": true, "space": true, "backspace": true,
	"delete": true, "insert": true, "up": true, "down": true, "left": true,
	"right": true, "home": true, "end": true, "pgup": true, "pgdown": true,
}

var functionKey = regexp.MustCompile(`^f([1-9]|1[0-9]|20)$`)

// ParseBinding normalizes a key description to Bubble Tea's notation.
// "Ctrl e", "ctrl-e" and "ctrl+e" all become "ctrl+e".
func ParseBinding(spec string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(spec))
	if trimmed == "" {
		return "", fmt.Errorf("empty key binding")
	}
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ' ' || r == '+' || r == '-'
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("invalid key binding %q", spec)
	}
	mods, name := parts[:len(parts)-1], parts[len(parts)-1]
	seen := map[string]bool{}
	for _, mod := range mods {
		switch mod {
		case "ctrl", "alt", "shift":
		default:
			return "", fmt.Errorf("invalid modifier %q in key binding %q", mod, spec)
		}
		if seen[mod] {
			return "", fmt.Errorf("repeated modifier %q in key binding %q", mod, spec)
		}
		seen[mod] = true
	}
	if len([]rune(name)) != 1 && !namedKeys[name] && !functionKey.MatchString(name) {
		return "", fmt.Errorf("unknown key %q in key binding %q", name, spec)
	}
	if len(mods) == 0 && len([]rune(name)) == 1 {
		return "", fmt.Errorf("key binding %q needs a modifier; plain characters are filter input", spec)
	}
	ordered := make([]string, 0, len(mods)+1)
	for _, mod := range []string{"ctrl", "alt", "shift"} {
		if seen[mod] {
			ordered = append(ordered, mod)
		}
	}
	return strings.Join(append(ordered, name), "+"), nil
}

// Events translates a key press into navigation events. Pasted text yields
// one Char event per rune.
func (m Map) Events(msg tea.KeyMsg) []nav.Event {
	switch {
	case key.Matches(msg, m.Interrupt):
		return []nav.Event{nav.Key(nav.EventInterrupt)}
	case key.Matches(msg, m.Edit):
		return []nav.Event{nav.Key(nav.EventEdit)}
	case key.Matches(msg, m.Reload):
		return []nav.Event{nav.Key(nav.EventReload)}
	case key.Matches(msg, m.FilterLabel):
		return []nav.Event{nav.Key(nav.EventToggleByLabel)}
	case key.Matches(msg, m.FilterID):
		return []nav.Event{nav.Key(nav.EventToggleByID)}
	case key.Matches(msg, m.Describe):
		return []nav.Event{nav.Key(nav.EventDescribe)}
	case key.Matches(msg, m.Copy):
		return []nav.Event{nav.Key(nav.EventCopy)}
	case key.Matches(msg, m.Up):
		return []nav.Event{nav.Key(nav.EventUp)}
	case key.Matches(msg, m.Down):
		return []nav.Event{nav.Key(nav.EventDown)}
	case key.Matches(msg, m.NextMode):
		return []nav.Event{nav.Key(nav.EventNextMode)}
	case key.Matches(msg, m.PrevMode):
		return []nav.Event{nav.Key(nav.EventPrevMode)}
	case key.Matches(msg, m.Bookmarks):
		return []nav.Event{nav.SwitchTo(nav.ModeBookmarks)}
	case key.Matches(msg, m.Labels):
		return []nav.Event{nav.SwitchTo(nav.ModeLabels)}
	case key.Matches(msg, m.UsageMode):
		return []nav.Event{nav.SwitchTo(nav.ModeUsage)}
	case key.Matches(msg, m.Enter):
		return []nav.Event{nav.Key(nav.EventEnter)}
	case key.Matches(msg, m.Backspace):
		return []nav.Event{nav.Key(nav.EventBackspace)}
	case key.Matches(msg, m.Escape):
		return []nav.Event{nav.Key(nav.EventEscape)}
	}
	switch msg.Type {
	case tea.KeySpace:
		return []nav.Event{nav.Char(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		events := make([]nav.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, nav.Char(r))
		}
		return events
	}
	return nil
}

// Help lists every binding in display order.
func (m Map) Help() []key.Binding {
	return []key.Binding{
		m.Enter, m.Up, m.Down, m.PrevMode, m.NextMode,
		m.Bookmarks, m.Labels, m.UsageMode,
		m.FilterLabel, m.FilterID, m.Describe, m.Copy,
		m.Edit, m.Reload, m.Backspace, m.Escape,
	}
}

// Usage renders the help entries as table rows.
func (m Map) Usage() [][]string {
	bindings := m.Help()
	rows := make([][]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		rows = append(rows, []string{h.Key, h.Desc})
	}
	return rows
}
