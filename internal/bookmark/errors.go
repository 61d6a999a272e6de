package bookmark

import (
	"fmt"
	"strings"
)

// ConfigParseError reports a document that could not be decoded.
type ConfigParseError struct {
	Path   string
	Err    error
	detail string
}

func (e *ConfigParseError) Error() string {
	msg := firstLine(e.Err.Error())
	if e.Path == "" {
		return "parse bookmarks: " + msg
	}
	return fmt.Sprintf("parse %s: %s", e.Path, msg)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// Detail returns the decoder's full report, including the offending source
// lines when they are known.
func (e *ConfigParseError) Detail() string {
	if e.detail != "" {
		return e.detail
	}
	return e.Err.Error()
}

// DuplicateBookmarkNameError lists every bookmark name that occurs more than
// once, in order of first repetition.
type DuplicateBookmarkNameError struct {
	Path  string
	Names []string
}

func (e *DuplicateBookmarkNameError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	msg := "duplicate bookmark names: " + strings.Join(quoted, ", ")
	if e.Path == "" {
		return msg
	}
	return e.Path + ": " + msg
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
