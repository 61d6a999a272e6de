package ui

import (
	"os/exec"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/backend"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/catalog"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/nav"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/theme"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/ui/command"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/ui/keys"
	uistate "github.com/atomicstack/tmux-popup-bookmarks/internal/ui/state"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Host performs the side effects the popup requests.
type Host interface {
	Deliver(text string, exec bool) error
	Copy(text string) error
	EditorCommand(path string) (*exec.Cmd, error)
}

// Options configures a Model.
type Options struct {
	Store      *catalog.Store
	Host       Host
	Keys       keys.Map
	Watcher    *backend.Watcher
	IgnoreCase bool
	Autodetect bool
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Model implements the Bubble Tea model for the bookmarks popup.
type Model struct {
	state    nav.State
	store    *catalog.Store
	gen      *catalog.Generation
	keys     keys.Map
	host     Host
	bus      *command.Bus
	backend  *backend.Watcher
	viewport uistate.Viewport

	ignoreCase bool
	autodetect bool

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	exitReason  string

	filterCursor      cursor.Model
	filterCursorDirty bool
	focused           bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI with the store's current generation.
func NewModel(opts Options) *Model {
	m := &Model{
		state:      nav.Initial(),
		store:      opts.Store,
		keys:       opts.Keys,
		host:       opts.Host,
		bus:        command.New(),
		backend:    opts.Watcher,
		ignoreCase: opts.IgnoreCase,
		autodetect: opts.Autodetect,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
	}
	if opts.Store != nil {
		m.gen = opts.Store.Current()
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	m.focused = true
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// State returns the current navigation state.
func (m *Model) State() nav.State {
	return m.state
}

// Generation returns the generation currently on screen.
func (m *Model) Generation() *catalog.Generation {
	return m.gen
}

// ExitReason reports why the program quit, empty while it is running.
func (m *Model) ExitReason() string {
	return m.exitReason
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(deliverResultMsg{}):  m.handleDeliverResultMsg,
		reflect.TypeOf(copyResultMsg{}):     m.handleCopyResultMsg,
		reflect.TypeOf(editorFinishedMsg{}): m.handleEditorFinishedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		if m.focused {
			m.filterCursor.Blink = false
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) navView() nav.View {
	v := nav.View{IgnoreCase: m.ignoreCase, Autodetect: m.autodetect}
	if m.gen != nil {
		v.Index = &m.gen.Index
	}
	if m.store != nil {
		v.DocumentPath = m.store.Path()
	}
	return v
}

func (m *Model) quit(reason string) tea.Cmd {
	m.exitReason = reason
	return tea.Quit
}
