package viewmodel

import (
	"slices"

	"tableflip.dev/treedrag/pkg/tree"
)

// movable pins a source before any mutation: row based addresses go stale
// as soon as the first node of the batch moves.
type movable struct {
	node       *tree.Node
	parentPath []int
	row        int
}

// Move relocates every valid source under parent, starting at row, and
// reports whether anything moved.
//
// Sources may come from different parents. They are moved one at a time in
// (source parent path, source row) order and land next to each other in that
// order. Row follows InsertChild semantics: the slot before the child
// currently at row, so row == RowCount(parent) appends.
//
// The whole batch is refused before any mutation when parent is invalid,
// row is out of [0, RowCount(parent)], or a source is parent itself or one
// of its ancestors.
func (m *Model) Move(sources []Address, parent Address, row int) bool {
	dstAddr := m.Refresh(parent)
	dst := dstAddr.Node()
	if dst == nil {
		return false
	}
	if row < 0 || row > dst.ChildCount() {
		return false
	}

	batch := m.capture(sources)
	if len(batch) == 0 {
		return false
	}
	for _, mv := range batch {
		if mv.node == dst || mv.node.IsAncestorOf(dst) {
			return false
		}
	}

	for _, mv := range batch {
		srcParent := mv.node.Parent()
		srcRow := mv.node.Row()
		intraParent := srcParent == dst

		ev := MoveEvent{
			Node:         mv.node,
			SourceParent: m.AddressOf(srcParent),
			SourceRow:    srcRow,
			DestParent:   dstAddr,
			DestRow:      row,
		}
		dst.InsertChild(mv.node, row)
		m.emit(ev)

		if !(intraParent && srcRow < row) {
			row++
		}
	}
	return true
}

// capture resolves sources to nodes, drops invalid and duplicate entries,
// and sorts the rest deterministically.
func (m *Model) capture(sources []Address) []movable {
	seen := make(map[*tree.Node]struct{}, len(sources))
	batch := make([]movable, 0, len(sources))
	for _, src := range sources {
		a := m.Refresh(src)
		if !a.IsValid() {
			continue
		}
		if _, dup := seen[a.node]; dup {
			continue
		}
		seen[a.node] = struct{}{}
		batch = append(batch, movable{
			node:       a.node,
			parentPath: m.PathOf(m.Parent(a)),
			row:        a.row,
		})
	}
	slices.SortStableFunc(batch, func(x, y movable) int {
		if c := comparePaths(x.parentPath, y.parentPath); c != 0 {
			return c
		}
		return x.row - y.row
	})
	return batch
}
