// Package tree holds the in-memory n-ary tree behind the treedrag view model.
package tree

import (
	"fmt"
	"slices"
	"weak"
)

// Node is a named tree entry. It owns its children and keeps a weak,
// lookup-only link to its parent.
type Node struct {
	name     string
	children []*Node
	parent   weak.Pointer[Node]
}

// New returns a detached node with the given display name.
func New(name string) *Node {
	return &Node{name: name}
}

// Name returns the display label set at construction.
func (n *Node) Name() string {
	return n.name
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return n.name
}

// Parent returns the owning parent, or nil for the root, a detached node, or
// a node whose parent has already been collected.
func (n *Node) Parent() *Node {
	return n.parent.Value()
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// ChildAt returns the child at row. An out of range row is a caller bug and
// panics.
func (n *Node) ChildAt(row int) *Node {
	if row < 0 || row >= len(n.children) {
		panic(fmt.Sprintf("tree: row %d out of range [0,%d) for %q", row, len(n.children), n.name))
	}
	return n.children[row]
}

// Children returns a copy of the children in display order.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Row returns the position of n among its parent's children, or -1 when n
// has no live parent.
func (n *Node) Row() int {
	p := n.Parent()
	if p == nil {
		return -1
	}
	return p.indexOf(n)
}

func (n *Node) indexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// AddChild appends child and points its parent link at n. A child attached
// elsewhere is detached first.
func (n *Node) AddChild(child *Node) {
	n.InsertChild(child, len(n.children))
}

// InsertChild detaches child from its current parent and inserts it under n
// before the child currently at atRow. atRow is clamped to
// [0, ChildCount()]. When child already sits under n at a row lower than
// atRow, removing it shifts the slot left, so it lands at atRow-1.
//
// Inserting a node under itself or one of its descendants panics.
func (n *Node) InsertChild(child *Node, atRow int) {
	if child == nil {
		panic("tree: insert of nil child")
	}
	if child == n || child.IsAncestorOf(n) {
		panic(fmt.Sprintf("tree: cannot insert %q under itself", child.name))
	}

	if old := child.Parent(); old != nil {
		if src := old.indexOf(child); src >= 0 {
			if old == n && src < atRow {
				atRow--
			}
			old.children = slices.Delete(old.children, src, src+1)
		}
	}

	atRow = max(0, min(atRow, len(n.children)))
	n.children = slices.Insert(n.children, atRow, child)
	child.parent = weak.Make(n)
}

// RemoveChild detaches child from n. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.indexOf(child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = weak.Pointer[Node]{}
	return true
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	if other == nil {
		return false
	}
	for p := other.Parent(); p != nil; p = p.Parent() {
		if p == n {
			return true
		}
	}
	return false
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// Walk visits the descendants of n depth-first in display order. depth is 1
// for direct children. Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 1)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	for _, child := range n.children {
		if fn(child, depth) {
			child.walk(fn, depth+1)
		}
	}
}
