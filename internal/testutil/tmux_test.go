package testutil

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestStartTmuxServerLifecycle(t *testing.T) {
	socket, cleanup, logDir := StartTmuxServer(t)
	defer cleanup()
	t.Cleanup(func() { AssertNoServerCrash(t, logDir) })
	if err := TmuxCommand(socket, "list-sessions").Run(); err != nil {
		t.Skipf("skipping: list-sessions failed: %v", err)
	}
}

func TestWaitForPaneSeesOutput(t *testing.T) {
	socket, cleanup, _ := StartTmuxServer(t)
	defer cleanup()
	NewSession(t, socket, "echo", 40, 10, "sh", "-c", "echo ready-marker; sleep 30")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	out := WaitForPane(t, ctx, socket, PaneID(t, socket, "echo"), func(s string) bool {
		return strings.Contains(s, "ready-marker")
	})
	if !strings.Contains(out, "ready-marker") {
		t.Fatalf("expected marker in pane, got %q", out)
	}
}
