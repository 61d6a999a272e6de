// Package filter narrows bookmark and label rows by the active query.
package filter

import (
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/catalog"
)

// Mode selects which attribute of a row the query is matched against.
type Mode int

const (
	ByName Mode = iota
	ByID
	ByLabel
)

func (m Mode) String() string {
	switch m {
	case ByID:
		return "id"
	case ByLabel:
		return "label"
	default:
		return "name"
	}
}

// Effective returns the mode actually applied to query. When autodetect is
// on and the user has not chosen a mode explicitly, an all-digit query is
// matched by id.
func Effective(selected Mode, query string, autodetect, forced bool) Mode {
	if autodetect && !forced && isDigits(query) {
		return ByID
	}
	return selected
}

// Bookmarks returns the rows matching query, preserving order.
func Bookmarks(rows []catalog.BookmarkRow, mode Mode, query string, ignoreCase bool) []catalog.BookmarkRow {
	out := make([]catalog.BookmarkRow, 0, len(rows))
	for _, row := range rows {
		if matchBookmark(row, mode, query, ignoreCase) {
			out = append(out, row)
		}
	}
	return out
}

// Labels returns the label rows matching query. ByLabel behaves like ByName
// here since a label row's name is the label itself.
func Labels(rows []catalog.LabelRow, mode Mode, query string, ignoreCase bool) []catalog.LabelRow {
	out := make([]catalog.LabelRow, 0, len(rows))
	for _, row := range rows {
		var ok bool
		if mode == ByID {
			ok = matchID(row.ID, query)
		} else {
			ok = contains(row.Name, query, ignoreCase)
		}
		if ok {
			out = append(out, row)
		}
	}
	return out
}

func matchBookmark(row catalog.BookmarkRow, mode Mode, query string, ignoreCase bool) bool {
	switch mode {
	case ByID:
		return matchID(row.ID, query)
	case ByLabel:
		if query == "" {
			return true
		}
		for _, label := range row.Labels {
			if contains(label, query, ignoreCase) {
				return true
			}
		}
		return false
	default:
		return contains(row.Name, query, ignoreCase)
	}
}

func contains(s, query string, ignoreCase bool) bool {
	if query == "" {
		return true
	}
	if ignoreCase {
		return strings.Contains(strings.ToLower(s), strings.ToLower(query))
	}
	return strings.Contains(s, query)
}

// matchID compares numerically so that "07" selects row 7. A query that is
// not a number matches nothing.
func matchID(id int, query string) bool {
	if query == "" {
		return true
	}
	if !isDigits(query) {
		return false
	}
	n, err := strconv.Atoi(query)
	if err != nil {
		return false
	}
	return n == id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
