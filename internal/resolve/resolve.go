// Package resolve expands bookmarks into final shell command strings.
package resolve

import (
	"strings"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/bookmark"
)

// Separator joins the expanded parts of a bookmark.
const Separator = " && "

// Resolved is a bookmark expanded to its final command.
type Resolved struct {
	ID      int
	Name    string
	Command string
	Desc    string
	Exec    bool
	Labels  []string
}

// Resolver expands bookmarks of a single document.
type Resolver struct {
	doc         *bookmark.Document
	execDefault bool
}

// New returns a Resolver over doc. execDefault applies to bookmarks that do
// not set exec themselves.
func New(doc *bookmark.Document, execDefault bool) *Resolver {
	return &Resolver{doc: doc, execDefault: execDefault}
}

type frame struct {
	bm    *bookmark.Bookmark
	scope Scope
	pos   int
}

// Resolve expands the named bookmark. Literal and fragment entries are
// rendered in the owning bookmark's scope and trimmed; bookmark entries are
// spliced in place, each rendered in its own scope. Any failure aborts the
// whole resolution.
func (r *Resolver) Resolve(name string) (Resolved, error) {
	root, ok := r.doc.Lookup(name)
	if !ok {
		return Resolved{}, &UnknownBookmarkError{Name: name, Suggestion: suggest(name, r.doc.Names())}
	}
	parts, err := r.expand(root)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{
		ID:      root.ID,
		Name:    root.Name,
		Command: strings.Join(parts, Separator),
		Desc:    root.Desc,
		Exec:    root.ExecOr(r.execDefault),
		Labels:  append([]string(nil), root.Labels...),
	}, nil
}

func (r *Resolver) scopeFor(b *bookmark.Bookmark) Scope {
	return NewScope(b.Vars, r.doc.Vars)
}

// expand walks the reference graph depth-first with an explicit stack so
// that the chain of open bookmarks is always available for cycle reports.
func (r *Resolver) expand(root *bookmark.Bookmark) ([]string, error) {
	stack := []*frame{{bm: root, scope: r.scopeFor(root)}}
	open := map[string]int{root.Name: 0}
	var parts []string
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.pos >= len(top.bm.Entries) {
			delete(open, top.bm.Name)
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.bm.Entries[top.pos]
		top.pos++
		switch entry.Kind {
		case bookmark.EntryLiteral:
			text, err := Expand(entry.Value, top.scope, top.bm.Name)
			if err != nil {
				return nil, err
			}
			parts = append(parts, strings.TrimSpace(text))
		case bookmark.EntryFragment:
			body, ok := r.doc.Cmds[entry.Value]
			if !ok {
				return nil, &UnknownCommandError{
					Key:        entry.Value,
					Bookmark:   top.bm.Name,
					Suggestion: suggest(entry.Value, r.doc.FragmentKeys()),
				}
			}
			text, err := Expand(body, top.scope, top.bm.Name)
			if err != nil {
				return nil, err
			}
			parts = append(parts, strings.TrimSpace(text))
		case bookmark.EntryBookmark:
			dep, ok := r.doc.Lookup(entry.Value)
			if !ok {
				return nil, &UnknownBookmarkError{
					Name:       entry.Value,
					Bookmark:   top.bm.Name,
					Suggestion: suggest(entry.Value, r.doc.Names()),
				}
			}
			if depth, cyclic := open[dep.Name]; cyclic {
				chain := make([]string, 0, len(stack)-depth+1)
				for _, f := range stack[depth:] {
					chain = append(chain, f.bm.Name)
				}
				return nil, &CyclicReferenceError{Chain: append(chain, dep.Name)}
			}
			open[dep.Name] = len(stack)
			stack = append(stack, &frame{bm: dep, scope: r.scopeFor(dep)})
		}
	}
	return parts, nil
}
