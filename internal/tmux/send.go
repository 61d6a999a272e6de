package tmux

import "github.com/atomicstack/tmux-popup-bookmarks/internal/logging/events"

// SendText pastes text literally into target and, when exec is set, follows
// it with Enter.
func SendText(socketPath, target, text string, exec bool) error {
	if target == "" {
		return &HostInteractionError{Op: "send-keys", Err: ErrNoTarget}
	}
	events.Host.Deliver(target, exec, len(text))
	args := append(baseArgs(socketPath), "send-keys", "-t", target, "-l", "--", text)
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return &HostInteractionError{Op: "send-keys", Target: target, Err: err}
	}
	if !exec {
		return nil
	}
	args = append(baseArgs(socketPath), "send-keys", "-t", target, "Enter")
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return &HostInteractionError{Op: "send-keys", Target: target, Err: err}
	}
	return nil
}
