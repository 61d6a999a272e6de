package bookmark

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

type rawDocument struct {
	Vars      map[string]any `yaml:"vars"`
	Cmds      map[string]any `yaml:"cmds"`
	Bookmarks []rawBookmark  `yaml:"bookmarks"`
}

type rawBookmark struct {
	Name   any            `yaml:"name"`
	Cmds   []any          `yaml:"cmds"`
	Desc   any            `yaml:"desc"`
	Exec   *bool          `yaml:"exec"`
	Labels []any          `yaml:"labels"`
	Vars   map[string]any `yaml:"vars"`
}

// Parse decodes a bookmark document. Unknown keys, malformed YAML and
// entries of the wrong shape produce a *ConfigParseError; repeated bookmark
// names produce a *DuplicateBookmarkNameError. An empty input is an empty
// document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{Vars: map[string]string{}, Cmds: map[string]string{}}
	if len(bytes.TrimSpace(data)) == 0 {
		doc.index()
		return doc, nil
	}
	var raw rawDocument
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.Strict()); err != nil {
		return nil, &ConfigParseError{Err: err, detail: yaml.FormatError(err, false, true)}
	}
	var err error
	if doc.Vars, err = scalarMap("vars", raw.Vars); err != nil {
		return nil, &ConfigParseError{Err: err}
	}
	if doc.Cmds, err = scalarMap("cmds", raw.Cmds); err != nil {
		return nil, &ConfigParseError{Err: err}
	}
	doc.Bookmarks = make([]Bookmark, 0, len(raw.Bookmarks))
	for i, rb := range raw.Bookmarks {
		b, err := convertBookmark(i+1, rb)
		if err != nil {
			return nil, &ConfigParseError{Err: err}
		}
		doc.Bookmarks = append(doc.Bookmarks, b)
	}
	if dupes := duplicateNames(doc.Bookmarks); len(dupes) > 0 {
		return nil, &DuplicateBookmarkNameError{Names: dupes}
	}
	doc.index()
	return doc, nil
}

func convertBookmark(id int, rb rawBookmark) (Bookmark, error) {
	name, err := scalar(rb.Name)
	if err != nil {
		return Bookmark{}, fmt.Errorf("bookmark #%d: name: %w", id, err)
	}
	if strings.TrimSpace(name) == "" {
		return Bookmark{}, fmt.Errorf("bookmark #%d: name is required", id)
	}
	b := Bookmark{ID: id, Name: name, Exec: rb.Exec}
	if b.Desc, err = scalar(rb.Desc); err != nil {
		return Bookmark{}, fmt.Errorf("bookmark %q: desc: %w", name, err)
	}
	b.Entries = make([]Entry, 0, len(rb.Cmds))
	for i, c := range rb.Cmds {
		text, err := scalar(c)
		if err != nil {
			return Bookmark{}, fmt.Errorf("bookmark %q: cmds[%d]: %w", name, i, err)
		}
		b.Entries = append(b.Entries, ParseEntry(text))
	}
	seen := make(map[string]struct{}, len(rb.Labels))
	for i, l := range rb.Labels {
		label, err := scalar(l)
		if err != nil {
			return Bookmark{}, fmt.Errorf("bookmark %q: labels[%d]: %w", name, i, err)
		}
		if _, dup := seen[label]; dup || label == "" {
			continue
		}
		seen[label] = struct{}{}
		b.Labels = append(b.Labels, label)
	}
	if b.Vars, err = scalarMap(fmt.Sprintf("bookmark %q: vars", name), rb.Vars); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

func duplicateNames(bookmarks []Bookmark) []string {
	counts := make(map[string]int, len(bookmarks))
	var dupes []string
	for _, b := range bookmarks {
		counts[b.Name]++
		if counts[b.Name] == 2 {
			dupes = append(dupes, b.Name)
		}
	}
	return dupes
}

func scalarMap(field string, in map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for k, v := range in {
		s, err := scalar(v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", field, k, err)
		}
		out[k] = s
	}
	return out, nil
}

// scalar renders YAML scalars as strings so that `port: 8080` and
// `port: "8080"` mean the same thing.
func scalar(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t), nil
	default:
		return "", fmt.Errorf("expected a scalar value, got %T", v)
	}
}
