package resolve

import (
	"regexp"
	"strings"
)

// placeholderPattern captures an optional escape run of one or two
// backslashes and the trimmed variable name between double braces.
var placeholderPattern = regexp.MustCompile(`(\\{0,2})\{\{\s*([^{}]*?)\s*\}\}`)

// Expand substitutes every {{ name }} placeholder in text using scope.
// A placeholder preceded by one or two backslashes is emitted verbatim
// without the backslashes. owner names the bookmark for error reporting.
func Expand(text string, scope Scope, owner string) (string, error) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		last = m[1]
		if m[3] > m[2] {
			b.WriteString(text[m[3]:m[1]])
			continue
		}
		name := text[m[4]:m[5]]
		value, ok := scope.Lookup(name)
		if !ok {
			return "", &UndefinedVariableError{Name: name, Bookmark: owner}
		}
		b.WriteString(value)
	}
	b.WriteString(text[last:])
	return b.String(), nil
}
