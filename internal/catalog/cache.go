// Package catalog turns a parsed bookmark document into the resolved,
// indexed snapshot the popup navigates, and swaps snapshots on reload.
package catalog

import (
	"github.com/atomicstack/tmux-popup-bookmarks/internal/bookmark"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/resolve"
)

type cacheEntry struct {
	resolved resolve.Resolved
	err      error
}

// Failure pairs a bookmark name with the reason it could not be resolved.
type Failure struct {
	Name string
	Err  error
}

// Cache holds the resolution outcome of every bookmark of one document.
type Cache struct {
	order   []string
	entries map[string]cacheEntry
}

// BuildCache resolves every bookmark of doc eagerly.
func BuildCache(doc *bookmark.Document, r *resolve.Resolver) *Cache {
	c := &Cache{entries: make(map[string]cacheEntry, len(doc.Bookmarks))}
	for _, b := range doc.Bookmarks {
		res, err := r.Resolve(b.Name)
		c.order = append(c.order, b.Name)
		c.entries[b.Name] = cacheEntry{resolved: res, err: err}
	}
	return c
}

// Get returns the cached outcome for name.
func (c *Cache) Get(name string) (resolve.Resolved, error) {
	entry, ok := c.entries[name]
	if !ok {
		return resolve.Resolved{}, &resolve.UnknownBookmarkError{Name: name}
	}
	return entry.resolved, entry.err
}

// Resolved lists successful resolutions in document order.
func (c *Cache) Resolved() []resolve.Resolved {
	out := make([]resolve.Resolved, 0, len(c.order))
	for _, name := range c.order {
		if entry := c.entries[name]; entry.err == nil {
			out = append(out, entry.resolved)
		}
	}
	return out
}

// Errors lists failed resolutions in document order.
func (c *Cache) Errors() []Failure {
	var out []Failure
	for _, name := range c.order {
		if entry := c.entries[name]; entry.err != nil {
			out = append(out, Failure{Name: name, Err: entry.err})
		}
	}
	return out
}

// Len is the number of bookmarks the cache was built from.
func (c *Cache) Len() int { return len(c.order) }

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.order = nil
	c.entries = map[string]cacheEntry{}
}
