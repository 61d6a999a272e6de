// Package bookmark holds the parsed bookmark document: global variables,
// reusable command fragments and the ordered list of bookmarks.
package bookmark

import "strings"

const (
	// FragmentPrefix marks a command entry that pulls a fragment from the
	// document's cmds table.
	FragmentPrefix = "cmd::"
	// BookmarkPrefix marks a command entry that splices another bookmark.
	BookmarkPrefix = "bookmark::"
)

// EntryKind classifies a single command entry of a bookmark.
type EntryKind int

const (
	EntryLiteral EntryKind = iota
	EntryFragment
	EntryBookmark
)

func (k EntryKind) String() string {
	switch k {
	case EntryFragment:
		return "fragment"
	case EntryBookmark:
		return "bookmark"
	default:
		return "literal"
	}
}

// Entry is one element of a bookmark's command list. Value is the literal
// template text, the fragment key or the referenced bookmark name depending
// on Kind.
type Entry struct {
	Kind  EntryKind
	Value string
}

// ParseEntry classifies raw by its prefix. Prefixes are case-sensitive and
// are looked for after surrounding whitespace; anything else is a literal
// template kept as written.
func ParseEntry(raw string) Entry {
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(trimmed, FragmentPrefix):
		return Entry{Kind: EntryFragment, Value: strings.TrimSpace(strings.TrimPrefix(trimmed, FragmentPrefix))}
	case strings.HasPrefix(trimmed, BookmarkPrefix):
		return Entry{Kind: EntryBookmark, Value: strings.TrimSpace(strings.TrimPrefix(trimmed, BookmarkPrefix))}
	default:
		return Entry{Kind: EntryLiteral, Value: raw}
	}
}

func (e Entry) String() string {
	switch e.Kind {
	case EntryFragment:
		return FragmentPrefix + e.Value
	case EntryBookmark:
		return BookmarkPrefix + e.Value
	default:
		return e.Value
	}
}

// Bookmark is a named, ordered list of command entries. ID is the 1-based
// position in the document.
type Bookmark struct {
	ID      int
	Name    string
	Entries []Entry
	Desc    string
	Exec    *bool
	Labels  []string
	Vars    map[string]string
}

// ExecOr returns the bookmark's exec flag or fallback when it is unset.
func (b Bookmark) ExecOr(fallback bool) bool {
	if b.Exec == nil {
		return fallback
	}
	return *b.Exec
}

// Document is the parsed configuration. Bookmarks keep document order.
type Document struct {
	Vars      map[string]string
	Cmds      map[string]string
	Bookmarks []Bookmark

	byName map[string]int
}

// Lookup finds a bookmark by exact, case-sensitive name.
func (d *Document) Lookup(name string) (*Bookmark, bool) {
	if d == nil {
		return nil, false
	}
	idx, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	return &d.Bookmarks[idx], true
}

// Names lists bookmark names in document order.
func (d *Document) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.Bookmarks))
	for i, b := range d.Bookmarks {
		names[i] = b.Name
	}
	return names
}

// FragmentKeys lists the keys of the cmds table in no particular order.
func (d *Document) FragmentKeys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.Cmds))
	for k := range d.Cmds {
		keys = append(keys, k)
	}
	return keys
}

func (d *Document) index() {
	d.byName = make(map[string]int, len(d.Bookmarks))
	for i, b := range d.Bookmarks {
		d.byName[b.Name] = i
	}
}
