package tmux

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoTarget is returned when no pane can be found to deliver to.
var ErrNoTarget = errors.New("no target pane")

// ListPanes returns every pane known to the server.
func ListPanes(socketPath string) ([]Pane, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, &HostInteractionError{Op: "connect", Err: err}
	}
	defer client.Close()
	panes, err := client.ListAllPanes()
	if err != nil {
		return nil, &HostInteractionError{Op: "list-panes", Err: err}
	}
	out := make([]Pane, 0, len(panes))
	for _, p := range panes {
		if p == nil {
			continue
		}
		out = append(out, Pane{
			ID:      p.Id,
			Title:   p.Title,
			Command: p.CurrentCommand,
			Active:  p.Active,
		})
	}
	return out, nil
}

// ResolveTarget determines the pane that receives delivered commands. An
// explicit target is checked against the server's panes; otherwise the pane
// named by $TMUX_PANE is asked for its id, falling back to the active pane.
func ResolveTarget(socketPath, explicit string) (string, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" && !strings.HasPrefix(explicit, "%") {
		// session:window.pane style targets are left to tmux to interpret.
		return explicit, nil
	}
	if explicit != "" {
		panes, err := ListPanes(socketPath)
		if err != nil {
			return "", err
		}
		for _, p := range panes {
			if p.ID == explicit {
				return explicit, nil
			}
		}
		return "", &HostInteractionError{Op: "resolve target", Target: explicit, Err: fmt.Errorf("pane not found")}
	}

	client, err := newTmux(socketPath)
	if err != nil {
		return "", &HostInteractionError{Op: "connect", Err: err}
	}
	defer client.Close()
	id, err := client.DisplayMessage(strings.TrimSpace(os.Getenv("TMUX_PANE")), "#{pane_id}")
	if err == nil {
		if id = strings.TrimSpace(id); id != "" {
			return id, nil
		}
	}
	panes, listErr := client.ListAllPanes()
	if listErr != nil {
		return "", &HostInteractionError{Op: "list-panes", Err: listErr}
	}
	for _, p := range panes {
		if p != nil && p.Active {
			return p.Id, nil
		}
	}
	return "", &HostInteractionError{Op: "resolve target", Err: ErrNoTarget}
}
