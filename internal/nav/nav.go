// Package nav implements the popup's navigation state machine. Transition
// is pure: it never performs I/O and only describes side effects.
package nav

import (
	"github.com/atomicstack/tmux-popup-bookmarks/internal/catalog"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/filter"
)

// State is the complete navigation state.
type State struct {
	Mode       Mode
	FilterMode filter.Mode
	Filter     string
	Selection  int
	// Forced is set once the user picks a filter mode by hand; it disables
	// id autodetection until the next reset.
	Forced   bool
	ShowDesc bool
}

// Initial is the state after start and after every successful reload.
func Initial() State {
	return State{Mode: ModeBookmarks, FilterMode: filter.ByName}
}

// View is the read-only context a transition is evaluated against.
type View struct {
	Index        *catalog.Index
	IgnoreCase   bool
	Autodetect   bool
	DocumentPath string
}

// EffectiveFilterMode applies id autodetection to the selected mode.
func (s State) EffectiveFilterMode(v View) filter.Mode {
	return filter.Effective(s.FilterMode, s.Filter, v.Autodetect, s.Forced)
}

// VisibleBookmarks is the filtered bookmarks list.
func (s State) VisibleBookmarks(v View) []catalog.BookmarkRow {
	if v.Index == nil {
		return nil
	}
	return filter.Bookmarks(v.Index.Bookmarks, s.EffectiveFilterMode(v), s.Filter, v.IgnoreCase)
}

// VisibleLabels is the filtered labels list.
func (s State) VisibleLabels(v View) []catalog.LabelRow {
	if v.Index == nil {
		return nil
	}
	return filter.Labels(v.Index.Labels, s.EffectiveFilterMode(v), s.Filter, v.IgnoreCase)
}

// VisibleLen is the number of selectable rows in the current mode.
func (s State) VisibleLen(v View) int {
	switch s.Mode {
	case ModeBookmarks:
		return len(s.VisibleBookmarks(v))
	case ModeLabels:
		return len(s.VisibleLabels(v))
	default:
		return 0
	}
}

// SelectedBookmark returns the highlighted bookmark in Bookmarks mode.
func (s State) SelectedBookmark(v View) (catalog.BookmarkRow, bool) {
	if s.Mode != ModeBookmarks {
		return catalog.BookmarkRow{}, false
	}
	rows := s.VisibleBookmarks(v)
	if s.Selection < 0 || s.Selection >= len(rows) {
		return catalog.BookmarkRow{}, false
	}
	return rows[s.Selection], true
}

// SelectedLabel returns the highlighted label in Labels mode.
func (s State) SelectedLabel(v View) (catalog.LabelRow, bool) {
	if s.Mode != ModeLabels {
		return catalog.LabelRow{}, false
	}
	rows := s.VisibleLabels(v)
	if s.Selection < 0 || s.Selection >= len(rows) {
		return catalog.LabelRow{}, false
	}
	return rows[s.Selection], true
}

func (s State) filterable() bool {
	return s.Mode == ModeBookmarks || s.Mode == ModeLabels
}

func (s State) switchMode(m Mode) State {
	return State{Mode: m, FilterMode: filter.ByName, ShowDesc: s.ShowDesc}
}

func (s State) toggleFilterMode(target filter.Mode) State {
	if s.FilterMode == target {
		s.FilterMode = filter.ByName
	} else {
		s.FilterMode = target
	}
	s.Forced = true
	s.Selection = 0
	return s
}

func (s State) clamp(v View) State {
	n := s.VisibleLen(v)
	if n == 0 || s.Selection < 0 {
		s.Selection = 0
	} else if s.Selection >= n {
		s.Selection = n - 1
	}
	return s
}

// Transition applies ev to s.
func Transition(s State, ev Event, v View) (State, Effect) {
	var effect Effect
	switch ev.Kind {
	case EventChar:
		if s.filterable() {
			s.Filter += string(ev.Rune)
			s.Selection = 0
		}
	case EventBackspace:
		if s.filterable() && s.Filter != "" {
			runes := []rune(s.Filter)
			s.Filter = string(runes[:len(runes)-1])
			s.Selection = 0
		}
	case EventUp:
		if s.Selection > 0 {
			s.Selection--
		}
	case EventDown:
		if s.Selection < s.VisibleLen(v)-1 {
			s.Selection++
		}
	case EventSwitchMode:
		s = s.switchMode(ev.Mode)
	case EventNextMode:
		s = s.switchMode(s.Mode.Next())
	case EventPrevMode:
		s = s.switchMode(s.Mode.Prev())
	case EventToggleByLabel:
		if s.Mode == ModeBookmarks {
			s = s.toggleFilterMode(filter.ByLabel)
		}
	case EventToggleByID:
		if s.filterable() {
			s = s.toggleFilterMode(filter.ByID)
		}
	case EventEnter:
		switch s.Mode {
		case ModeBookmarks:
			if row, ok := s.SelectedBookmark(v); ok {
				effect = Effect{Kind: EffectDeliver, Text: row.Command, Exec: row.Exec}
			}
		case ModeLabels:
			if row, ok := s.SelectedLabel(v); ok {
				s = State{
					Mode:       ModeBookmarks,
					FilterMode: filter.ByLabel,
					Filter:     row.Name,
					Forced:     true,
					ShowDesc:   s.ShowDesc,
				}
			}
		}
	case EventEscape, EventInterrupt:
		effect = Effect{Kind: EffectExit}
	case EventEdit:
		effect = Effect{Kind: EffectOpenEditor, Path: v.DocumentPath}
	case EventReload:
		effect = Effect{Kind: EffectReload}
	case EventDescribe:
		if s.Mode == ModeBookmarks {
			s.ShowDesc = !s.ShowDesc
			if row, ok := s.SelectedBookmark(v); ok {
				effect = Effect{Kind: EffectDescribe, Text: row.Desc}
			}
		}
	case EventCopy:
		if row, ok := s.SelectedBookmark(v); ok {
			effect = Effect{Kind: EffectCopy, Text: row.Command}
		}
	}
	return s.clamp(v), effect
}
