package tmux

import "fmt"

// HostInteractionError reports a failed exchange with the tmux server or the
// system clipboard.
type HostInteractionError struct {
	Op     string
	Target string
	Err    error
}

func (e *HostInteractionError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *HostInteractionError) Unwrap() error { return e.Err }
