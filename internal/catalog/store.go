package catalog

import (
	"time"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/bookmark"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/resolve"
)

// Generation is one fully built snapshot of the bookmark document.
type Generation struct {
	Seq      int
	Path     string
	Doc      *bookmark.Document
	Cache    *Cache
	Index    Index
	LoadedAt time.Time
}

// Failures is shorthand for Cache.Errors.
func (g *Generation) Failures() []Failure {
	if g == nil || g.Cache == nil {
		return nil
	}
	return g.Cache.Errors()
}

// Options tune how generations are built.
type Options struct {
	ExecDefault bool
}

// Build assembles a generation from an already parsed document.
func Build(doc *bookmark.Document, opts Options) *Generation {
	cache := BuildCache(doc, resolve.New(doc, opts.ExecDefault))
	return &Generation{
		Doc:      doc,
		Cache:    cache,
		Index:    BuildIndex(cache),
		LoadedAt: time.Now(),
	}
}

var loadDocument = bookmark.Load

// Store owns the current generation. Reload builds the next generation off
// to the side and only replaces the current one when the build succeeds.
type Store struct {
	path    string
	opts    Options
	current *Generation
	seq     int
}

// NewStore returns an empty store for the document at path.
func NewStore(path string, opts Options) *Store {
	return &Store{path: path, opts: opts}
}

// Path is the document location.
func (s *Store) Path() string { return s.path }

// Current returns the active generation, or nil before the first successful
// load.
func (s *Store) Current() *Generation { return s.current }

// Reload parses the document and swaps in a fresh generation. On failure the
// current generation is kept and the error is returned.
func (s *Store) Reload() (*Generation, error) {
	doc, err := loadDocument(s.path)
	if err != nil {
		return s.current, err
	}
	next := Build(doc, s.opts)
	s.seq++
	next.Seq = s.seq
	next.Path = s.path
	prev := s.current
	s.current = next
	if prev != nil && prev.Cache != nil {
		prev.Cache.InvalidateAll()
	}
	return next, nil
}
