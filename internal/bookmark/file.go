package bookmark

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Skeleton is written when the document does not exist yet.
const Skeleton = `# tmux-bookmarks
#
# vars:
#   host: example.org
# cmds:
#   ssh: ssh {{ host }}
# bookmarks:
#   - name: connect
#     desc: open a shell on the example host
#     labels: [remote]
#     cmds:
#       - cmd::ssh
vars: {}
cmds: {}
bookmarks: []
`

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		var parseErr *ConfigParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		var dupErr *DuplicateBookmarkNameError
		if errors.As(err, &dupErr) {
			dupErr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// EnsureFile creates the document with Skeleton contents when it is missing.
// It reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat bookmarks: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create bookmarks dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Skeleton), 0o644); err != nil {
		return false, fmt.Errorf("write bookmarks: %w", err)
	}
	return true, nil
}
