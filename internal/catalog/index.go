package catalog

// BookmarkRow is one selectable row of the bookmarks list.
type BookmarkRow struct {
	ID      int
	Name    string
	Command string
	Desc    string
	Exec    bool
	Labels  []string
}

// LabelRow is one selectable row of the labels list. ID is the 1-based
// position in first-seen order.
type LabelRow struct {
	ID        int
	Name      string
	Bookmarks []string
}

// Index is the navigable view of a cache. Bookmarks that failed to resolve
// are absent from both lists.
type Index struct {
	Bookmarks []BookmarkRow
	Labels    []LabelRow
}

// BuildIndex derives rows from the successful entries of c.
func BuildIndex(c *Cache) Index {
	resolved := c.Resolved()
	idx := Index{Bookmarks: make([]BookmarkRow, 0, len(resolved))}
	positions := map[string]int{}
	for _, r := range resolved {
		idx.Bookmarks = append(idx.Bookmarks, BookmarkRow{
			ID:      r.ID,
			Name:    r.Name,
			Command: r.Command,
			Desc:    r.Desc,
			Exec:    r.Exec,
			Labels:  r.Labels,
		})
		for _, label := range r.Labels {
			pos, ok := positions[label]
			if !ok {
				pos = len(idx.Labels)
				positions[label] = pos
				idx.Labels = append(idx.Labels, LabelRow{ID: pos + 1, Name: label})
			}
			idx.Labels[pos].Bookmarks = append(idx.Labels[pos].Bookmarks, r.Name)
		}
	}
	return idx
}

// Bookmark finds a row by name.
func (idx Index) Bookmark(name string) (BookmarkRow, bool) {
	for _, row := range idx.Bookmarks {
		if row.Name == name {
			return row, true
		}
	}
	return BookmarkRow{}, false
}
