package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ n int }

func TestExecuteRunsRequest(t *testing.T) {
	calls := 0
	cmd := New().Execute(Request{ID: "copy", Label: "alpha", Run: func() tea.Msg {
		calls++
		return doneMsg{n: calls}
	}})
	if cmd == nil {
		t.Fatalf("expected command")
	}
	if calls != 0 {
		t.Fatalf("request should not run before the command is invoked")
	}
	msg, ok := cmd().(doneMsg)
	if !ok || msg.n != 1 {
		t.Fatalf("expected doneMsg{1}, got %#v", msg)
	}
}

func TestExecuteNilRun(t *testing.T) {
	if cmd := New().Execute(Request{ID: "noop"}); cmd != nil {
		t.Fatalf("expected nil command for empty request")
	}
}
