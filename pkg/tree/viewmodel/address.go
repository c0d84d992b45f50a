package viewmodel

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/treedrag/pkg/tree"
)

// Address is the model's opaque handle for a tree position: a row and
// column under the node's current parent plus the node itself. The zero
// Address is invalid and stands for the root context.
//
// The row is a snapshot. It goes stale as soon as a sibling is inserted or
// removed; use Model.Refresh to recompute it from the node.
type Address struct {
	row    int
	column int
	node   *tree.Node
}

// IsValid reports whether a refers to a node.
func (a Address) IsValid() bool {
	return a.node != nil && a.row >= 0 && a.column == 0
}

// Row returns the row captured when the address was created, or -1.
func (a Address) Row() int {
	if !a.IsValid() {
		return -1
	}
	return a.row
}

// Column returns the column, always 0 for a valid address.
func (a Address) Column() int {
	if !a.IsValid() {
		return -1
	}
	return a.column
}

// Node returns the referenced node, or nil.
func (a Address) Node() *tree.Node {
	if !a.IsValid() {
		return nil
	}
	return a.node
}

// String renders the address for debugging.
func (a Address) String() string {
	if !a.IsValid() {
		return "Address(invalid)"
	}
	return fmt.Sprintf("Address(%d,%d,%q)", a.row, a.column, a.node.Name())
}

// ParsePath reads a slash separated list of rows such as "0/2". The empty
// string is the root path.
func ParsePath(s string) ([]int, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	path := make([]int, 0, len(parts))
	for _, part := range parts {
		row, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("viewmodel: invalid path %q: %w", s, err)
		}
		if row < 0 {
			return nil, fmt.Errorf("viewmodel: invalid path %q: negative row", s)
		}
		path = append(path, row)
	}
	return path, nil
}

// FormatPath is the inverse of ParsePath.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, row := range path {
		parts[i] = strconv.Itoa(row)
	}
	return strings.Join(parts, "/")
}

// comparePaths orders root-first paths lexicographically, a prefix first.
func comparePaths(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
