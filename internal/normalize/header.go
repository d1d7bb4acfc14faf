package normalize

import (
	"strings"

	"github.com/iwvelando/visitor-stats/pkg/cell"
)

// Column is a named header cell.
type Column struct {
	Index int
	Name  string
}

// Header maps the header row of a range to column indexes. It is built once
// per range read and drives extraction for sheets whose column set changes
// between reporting periods.
type Header struct {
	columns []Column
	index   map[string]int
}

// ParseHeader builds a Header from row 0 of a range. Blank header cells are
// skipped; when a name repeats, the first column wins.
func ParseHeader(row []string) Header {
	h := Header{index: make(map[string]int, len(row))}
	for i := range row {
		name := NormalizeColumnName(cell.At(row, i))
		if name == "" {
			continue
		}
		if _, exists := h.index[name]; exists {
			continue
		}
		h.index[name] = i
		h.columns = append(h.columns, Column{Index: i, Name: name})
	}
	return h
}

// Index returns the column index of name.
func (h Header) Index(name string) (int, bool) {
	i, ok := h.index[NormalizeColumnName(name)]
	return i, ok
}

// Columns returns the named columns at or after index from, in sheet order.
func (h Header) Columns(from int) []Column {
	out := make([]Column, 0, len(h.columns))
	for _, c := range h.columns {
		if c.Index >= from {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the column names at or after index from.
func (h Header) Names(from int) []string {
	cols := h.Columns(from)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// NormalizeColumnName removes all whitespace, including line breaks that
// sheet authors put inside header cells.
func NormalizeColumnName(name string) string {
	return strings.Join(strings.Fields(name), "")
}
