package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/backend"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/bookmark"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/catalog"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/logging"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/logging/events"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/tmux"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/ui"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/ui/keys"
)

// watchQuiet is how long the document must stay unchanged before a watched
// write triggers a reload.
const watchQuiet = 150 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	File        string
	ExecDefault bool
	IgnoreCase  bool
	Autodetect  bool
	Watch       bool
	SocketPath  string
	Target      string
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	Bindings    keys.Bindings
}

// OpenStore makes sure the document exists and loads its first generation.
func OpenStore(path string, execDefault bool) (*catalog.Store, error) {
	created, err := bookmark.EnsureFile(path)
	if err != nil {
		return nil, err
	}
	if created {
		events.Catalog.Created(path)
	}
	store := catalog.NewStore(path, catalog.Options{ExecDefault: execDefault})
	gen, err := store.Reload()
	if err != nil {
		return nil, err
	}
	events.Catalog.Loaded(gen.Path, gen.Seq, len(gen.Index.Bookmarks), len(gen.Index.Labels), len(gen.Failures()))
	return store, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	keymap, err := keys.New(cfg.Bindings)
	if err != nil {
		return err
	}
	store, err := OpenStore(cfg.File, cfg.ExecDefault)
	if err != nil {
		return err
	}
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(store.Path(), watchQuiet)
		if err != nil {
			// The popup is still usable without live reload.
			logging.Error(err)
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	model := ui.NewModel(ui.Options{
		Store:      store,
		Host:       tmux.NewHost(socketPath, cfg.Target),
		Keys:       keymap,
		Watcher:    watcher,
		IgnoreCase: cfg.IgnoreCase,
		Autodetect: cfg.Autodetect,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	events.App.Exit(model.ExitReason())
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
