package tmux

import (
	"errors"
	"fmt"
	"os/user"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

func withStubTmux(t *testing.T, fn func(string) (tmuxClient, error)) {
	t.Helper()
	prev := newTmux
	newTmux = fn
	t.Cleanup(func() { newTmux = prev })
}

func withStubCommander(t *testing.T, fn func(name string, args ...string) commander) {
	t.Helper()
	prev := runExecCommand
	runExecCommand = fn
	t.Cleanup(func() { runExecCommand = prev })
}

type stubCommander struct {
	output []byte
	err    error
}

func (s *stubCommander) Run() error { return s.err }

func (s *stubCommander) Output() ([]byte, error) { return s.output, s.err }

type fakeClient struct {
	panes      []*gotmux.Pane
	panesErr   error
	display    string
	displayErr error
	targets    []string
	closed     int
}

func (f *fakeClient) ListAllPanes() ([]*gotmux.Pane, error) {
	if f.panesErr != nil {
		return nil, f.panesErr
	}
	return f.panes, nil
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	f.targets = append(f.targets, target)
	return f.display, f.displayErr
}

func (f *fakeClient) Close() error {
	f.closed++
	return nil
}

func TestResolveSocketPathPrefersFlag(t *testing.T) {
	t.Setenv("TMUX_BOOKMARKS_SOCKET", "/env/socket")
	got, err := ResolveSocketPath("/flag/socket")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/flag/socket" {
		t.Fatalf("expected flag socket, got %q", got)
	}
}

func TestResolveSocketPathUsesEnvironment(t *testing.T) {
	t.Setenv("TMUX_BOOKMARKS_SOCKET", "/env/socket")
	got, err := ResolveSocketPath("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/env/socket" {
		t.Fatalf("expected env socket, got %q", got)
	}
}

func TestResolveSocketPathFromTMUX(t *testing.T) {
	t.Setenv("TMUX_BOOKMARKS_SOCKET", "")
	t.Setenv("TMUX", "/tmp/tmux-1000/work,1234,0")
	got, err := ResolveSocketPath("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/tmp/tmux-1000/work" {
		t.Fatalf("expected socket from $TMUX, got %q", got)
	}
}

func TestResolveSocketPathDefault(t *testing.T) {
	t.Setenv("TMUX_BOOKMARKS_SOCKET", "")
	t.Setenv("TMUX", "")
	t.Setenv("TMUX_TMPDIR", "/var/run")
	u, err := user.Current()
	if err != nil {
		t.Skipf("user lookup unavailable: %v", err)
	}
	got, err := ResolveSocketPath("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join("/var/run", fmt.Sprintf("tmux-%s", u.Uid), "default")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBaseArgs(t *testing.T) {
	if got := baseArgs(" "); len(got) != 0 {
		t.Fatalf("expected no args for blank socket, got %v", got)
	}
	if got := baseArgs("/s"); !reflect.DeepEqual(got, []string{"-S", "/s"}) {
		t.Fatalf("unexpected args %v", got)
	}
}

func TestSendTextLiteralWithoutExec(t *testing.T) {
	var calls [][]string
	withStubCommander(t, func(name string, args ...string) commander {
		calls = append(calls, append([]string{name}, args...))
		return &stubCommander{}
	})
	if err := SendText("/sock", "%3", "ls -la /tmp", false); err != nil {
		t.Fatalf("SendText returned error: %v", err)
	}
	want := [][]string{{"tmux", "-S", "/sock", "send-keys", "-t", "%3", "-l", "--", "ls -la /tmp"}}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
}

func TestSendTextWithExecPressesEnter(t *testing.T) {
	var calls [][]string
	withStubCommander(t, func(name string, args ...string) commander {
		calls = append(calls, args)
		return &stubCommander{}
	})
	if err := SendText("", "%1", "make", true); err != nil {
		t.Fatalf("SendText returned error: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected two tmux invocations, got %d", len(calls))
	}
	if got := strings.Join(calls[1], " "); got != "send-keys -t %1 Enter" {
		t.Fatalf("expected Enter keypress, got %q", got)
	}
}

func TestSendTextWrapsFailures(t *testing.T) {
	boom := errors.New("boom")
	withStubCommander(t, func(name string, args ...string) commander {
		return &stubCommander{err: boom}
	})
	err := SendText("", "%1", "make", true)
	var hostErr *HostInteractionError
	if !errors.As(err, &hostErr) {
		t.Fatalf("expected HostInteractionError, got %v", err)
	}
	if hostErr.Target != "%1" || !errors.Is(err, boom) {
		t.Fatalf("unexpected error contents: %#v", hostErr)
	}
}

func TestSendTextRequiresTarget(t *testing.T) {
	if err := SendText("", "", "x", false); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
}

func TestResolveTargetValidatesExplicitPane(t *testing.T) {
	client := &fakeClient{panes: []*gotmux.Pane{{Id: "%1"}, {Id: "%7"}}}
	withStubTmux(t, func(string) (tmuxClient, error) { return client, nil })

	got, err := ResolveTarget("", "%7")
	if err != nil || got != "%7" {
		t.Fatalf("expected %%7, got %q (%v)", got, err)
	}
	if _, err := ResolveTarget("", "%9"); err == nil {
		t.Fatalf("expected error for unknown pane")
	}
	if client.closed == 0 {
		t.Fatalf("expected client to be closed")
	}
}

func TestResolveTargetPassesSymbolicTargets(t *testing.T) {
	withStubTmux(t, func(string) (tmuxClient, error) {
		t.Fatalf("symbolic target should not contact tmux")
		return nil, nil
	})
	got, err := ResolveTarget("", "work:1.0")
	if err != nil || got != "work:1.0" {
		t.Fatalf("expected symbolic target, got %q (%v)", got, err)
	}
}

func TestResolveTargetUsesTMUXPane(t *testing.T) {
	t.Setenv("TMUX_PANE", "%4")
	client := &fakeClient{display: "%4\n"}
	withStubTmux(t, func(string) (tmuxClient, error) { return client, nil })
	got, err := ResolveTarget("", "")
	if err != nil || got != "%4" {
		t.Fatalf("expected %%4, got %q (%v)", got, err)
	}
	if len(client.targets) != 1 || client.targets[0] != "%4" {
		t.Fatalf("expected display-message against $TMUX_PANE, got %v", client.targets)
	}
}

func TestResolveTargetFallsBackToActivePane(t *testing.T) {
	t.Setenv("TMUX_PANE", "")
	client := &fakeClient{
		displayErr: errors.New("no current client"),
		panes:      []*gotmux.Pane{{Id: "%1"}, {Id: "%2", Active: true}},
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return client, nil })
	got, err := ResolveTarget("", "")
	if err != nil || got != "%2" {
		t.Fatalf("expected active pane %%2, got %q (%v)", got, err)
	}
}

func TestResolveTargetNoPanes(t *testing.T) {
	client := &fakeClient{displayErr: errors.New("nope")}
	withStubTmux(t, func(string) (tmuxClient, error) { return client, nil })
	if _, err := ResolveTarget("", ""); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
}

func TestListPanesConnectError(t *testing.T) {
	withStubTmux(t, func(string) (tmuxClient, error) { return nil, errors.New("no server") })
	_, err := ListPanes("/missing")
	var hostErr *HostInteractionError
	if !errors.As(err, &hostErr) || hostErr.Op != "connect" {
		t.Fatalf("expected connect HostInteractionError, got %v", err)
	}
}

func TestHostDeliverCachesTarget(t *testing.T) {
	resolves := 0
	var sent []string
	withStubCommander(t, func(name string, args ...string) commander {
		sent = append(sent, args[len(args)-1])
		return &stubCommander{}
	})
	h := NewHost("", "")
	h.resolve = func(_, explicit string) (string, error) {
		resolves++
		if explicit != "" {
			return explicit, nil
		}
		return "%5", nil
	}
	if err := h.Deliver("echo one", false); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if err := h.Deliver("echo two", false); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if !reflect.DeepEqual(sent, []string{"echo one", "echo two"}) {
		t.Fatalf("unexpected deliveries %v", sent)
	}
	if h.target != "%5" {
		t.Fatalf("expected target to be remembered, got %q", h.target)
	}
	if resolves != 2 {
		t.Fatalf("expected resolve per delivery, got %d", resolves)
	}
}

func TestHostCopy(t *testing.T) {
	var got string
	prev := writeClipboard
	writeClipboard = func(s string) error {
		got = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = prev })

	if err := NewHost("", "").Copy("ls /tmp"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if got != "ls /tmp" {
		t.Fatalf("expected clipboard contents, got %q", got)
	}

	writeClipboard = func(string) error { return errors.New("no xclip") }
	var hostErr *HostInteractionError
	if err := NewHost("", "").Copy("x"); !errors.As(err, &hostErr) {
		t.Fatalf("expected HostInteractionError, got %v", err)
	}
}

func TestEditorArgs(t *testing.T) {
	env := map[string]string{}
	prev := lookupEnv
	lookupEnv = func(k string) string { return env[k] }
	t.Cleanup(func() { lookupEnv = prev })

	cases := []struct {
		visual, editor string
		want           []string
	}{
		{"", "", []string{"vi", "/b.yaml"}},
		{"", "nano", []string{"nano", "/b.yaml"}},
		{"code --wait", "nano", []string{"code", "--wait", "/b.yaml"}},
		{"'/opt/my editor/bin/ed' -n", "", []string{"/opt/my editor/bin/ed", "-n", "/b.yaml"}},
	}
	for _, tc := range cases {
		env["VISUAL"] = tc.visual
		env["EDITOR"] = tc.editor
		got, err := EditorArgs("/b.yaml")
		if err != nil {
			t.Fatalf("EditorArgs(%q,%q): %v", tc.visual, tc.editor, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("EditorArgs(%q,%q): expected %v, got %v", tc.visual, tc.editor, tc.want, got)
		}
	}

	env["VISUAL"] = "vim 'unterminated"
	if _, err := EditorArgs("/b.yaml"); err == nil {
		t.Fatalf("expected error for unbalanced quotes")
	}
}
