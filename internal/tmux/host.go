package tmux

import (
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/logging/events"
)

var (
	writeClipboard = clipboard.WriteAll
	lookupEnv      = os.Getenv
)

// Host performs the side effects requested by the popup against a tmux
// server: delivering commands to a pane, copying them, and preparing the
// editor for the bookmarks document.
type Host struct {
	SocketPath string

	target  string
	resolve func(socketPath, explicit string) (string, error)
}

// NewHost returns a Host bound to socketPath. The target pane is resolved
// lazily on first delivery so the popup can start without a live server.
func NewHost(socketPath, target string) *Host {
	return &Host{SocketPath: socketPath, target: target, resolve: ResolveTarget}
}

// Target returns the pane commands are delivered to, resolving it on first use.
func (h *Host) Target() (string, error) {
	target, err := h.resolve(h.SocketPath, h.target)
	if err != nil {
		return "", err
	}
	h.target = target
	return target, nil
}

// Deliver sends text to the target pane.
func (h *Host) Deliver(text string, exec bool) error {
	target, err := h.Target()
	if err != nil {
		return err
	}
	return SendText(h.SocketPath, target, text, exec)
}

// Copy places text on the system clipboard.
func (h *Host) Copy(text string) error {
	events.Host.Copy(len(text))
	if err := writeClipboard(text); err != nil {
		return &HostInteractionError{Op: "copy", Err: err}
	}
	return nil
}

// EditorCommand builds the command that opens path in the user's editor,
// honouring $VISUAL and then $EDITOR.
func (h *Host) EditorCommand(path string) (*exec.Cmd, error) {
	argv, err := EditorArgs(path)
	if err != nil {
		return nil, err
	}
	events.Host.Editor(argv)
	return exec.Command(argv[0], argv[1:]...), nil
}

// EditorArgs returns the argv for editing path.
func EditorArgs(path string) ([]string, error) {
	editor := strings.TrimSpace(lookupEnv("VISUAL"))
	if editor == "" {
		editor = strings.TrimSpace(lookupEnv("EDITOR"))
	}
	if editor == "" {
		editor = "vi"
	}
	argv, err := shellquote.Split(editor)
	if err != nil {
		return nil, &HostInteractionError{Op: "parse editor", Target: editor, Err: err}
	}
	if len(argv) == 0 {
		argv = []string{"vi"}
	}
	return append(argv, path), nil
}
