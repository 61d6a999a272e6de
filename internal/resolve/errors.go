package resolve

import (
	"fmt"
	"strings"
)

// UndefinedVariableError reports a placeholder with no binding in the
// bookmark's scope.
type UndefinedVariableError struct {
	Name     string
	Bookmark string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("bookmark %q: undefined variable %q", e.Bookmark, e.Name)
}

// UnknownCommandError reports a cmd:: entry whose key is not in cmds.
type UnknownCommandError struct {
	Key        string
	Bookmark   string
	Suggestion string
}

func (e *UnknownCommandError) Error() string {
	msg := fmt.Sprintf("bookmark %q: command %q not found in cmds", e.Bookmark, e.Key)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// UnknownBookmarkError reports a bookmark:: entry, or a direct lookup, naming
// a bookmark that does not exist. Bookmark is empty for direct lookups.
type UnknownBookmarkError struct {
	Name       string
	Bookmark   string
	Suggestion string
}

func (e *UnknownBookmarkError) Error() string {
	var msg string
	if e.Bookmark == "" {
		msg = fmt.Sprintf("bookmark %q not found", e.Name)
	} else {
		msg = fmt.Sprintf("bookmark %q: referenced bookmark %q not found", e.Bookmark, e.Name)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// CyclicReferenceError reports a bookmark that reaches itself through
// bookmark:: entries. Chain starts and ends with the repeated name.
type CyclicReferenceError struct {
	Chain []string
}

func (e *CyclicReferenceError) Error() string {
	return "circular bookmark reference: " + strings.Join(e.Chain, " -> ")
}
