package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const gutter = "  "

// Format returns the rows padded according to the widest entry in each column.
// Widths are measured in terminal cells so styled or wide text lines up. The
// last column is never padded on the right.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(gutter)
			}
			pad := widths[c] - cellWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			if c < len(row)-1 {
				writeSpaces(&b, pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

// WithHeader formats header and rows together and inserts a rule under the
// header spanning the formatted width.
func WithHeader(header []string, rows [][]string, alignments []Alignment) []string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, header)
	all = append(all, rows...)
	lines := Format(all, alignments)
	widths := columnWidths(all)
	total := 0
	for i, w := range widths {
		if i > 0 {
			total += len(gutter)
		}
		total += w
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[0], strings.Repeat("-", total))
	return append(out, lines[1:]...)
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if w := cellWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func cellWidth(text string) int {
	return ansi.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
