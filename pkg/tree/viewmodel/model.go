// Package viewmodel adapts a tree.Node hierarchy to the row/column/parent
// addressing a tree view expects, and implements drag and drop on top of it:
// payload encoding of selected paths, drop eligibility, and the multi-node
// move.
//
// A Model is not safe for concurrent use. Hosts that share one across
// goroutines must serialize access themselves.
package viewmodel

import (
	"slices"

	"tableflip.dev/treedrag/pkg/tree"
)

// Model exposes a tree through Addresses.
type Model struct {
	root      *tree.Node
	listeners []*listener
}

type listener struct {
	fn func(MoveEvent)
}

// New wraps root. The root itself is never addressed; its children are the
// top-level groups.
func New(root *tree.Node) *Model {
	if root == nil {
		root = tree.New(tree.RootName)
	}
	return &Model{root: root}
}

// NewSample returns a model over tree.Sample(groups, items).
func NewSample(groups, items int) *Model {
	return New(tree.Sample(groups, items))
}

// Root returns the container node.
func (m *Model) Root() *tree.Node {
	return m.root
}

func (m *Model) nodeOrRoot(parent Address) *tree.Node {
	if n := parent.Node(); n != nil {
		return n
	}
	return m.root
}

// Index returns the address of the child at row under parent, or under the
// root when parent is invalid. Out of range rows and non-zero columns yield
// the invalid Address.
func (m *Model) Index(row, column int, parent Address) Address {
	p := m.nodeOrRoot(parent)
	if column != 0 || row < 0 || row >= p.ChildCount() {
		return Address{}
	}
	return Address{row: row, column: column, node: p.ChildAt(row)}
}

// Parent returns the address of a's parent. Top-level nodes, nodes whose
// parent has expired, and invalid addresses all yield the invalid Address.
func (m *Model) Parent(a Address) Address {
	n := a.Node()
	if n == nil {
		return Address{}
	}
	p := n.Parent()
	if p == nil || p == m.root {
		return Address{}
	}
	return m.AddressOf(p)
}

// RowCount returns the number of children under parent, or under the root
// when parent is invalid.
func (m *Model) RowCount(parent Address) int {
	return m.nodeOrRoot(parent).ChildCount()
}

// ColumnCount is always 1.
func (m *Model) ColumnCount(Address) int {
	return 1
}

// Data returns the display label of a, or "" when a is invalid.
func (m *Model) Data(a Address) string {
	if n := a.Node(); n != nil {
		return n.Name()
	}
	return ""
}

// AddressOf returns the current address of n. The root, nil, and nodes not
// attached below the model's root yield the invalid Address.
func (m *Model) AddressOf(n *tree.Node) Address {
	if n == nil || n == m.root || !m.root.IsAncestorOf(n) {
		return Address{}
	}
	row := n.Row()
	if row < 0 {
		return Address{}
	}
	return Address{row: row, node: n}
}

// Refresh recomputes the row of a after structural changes.
func (m *Model) Refresh(a Address) Address {
	return m.AddressOf(a.Node())
}

// IsTopLevel reports whether a is a direct child of the root.
func (m *Model) IsTopLevel(a Address) bool {
	n := a.Node()
	return n != nil && n.Parent() == m.root
}

// PathOf returns the rows from the root down to a. The invalid Address maps
// to the empty path.
func (m *Model) PathOf(a Address) []int {
	var path []int
	for cur := m.Refresh(a); cur.IsValid(); cur = m.Parent(cur) {
		path = append(path, cur.Row())
	}
	slices.Reverse(path)
	return path
}

// AddressAt resolves a root-first path. A path that leaves the tree yields
// the invalid Address; the empty path is the root context.
func (m *Model) AddressAt(path []int) Address {
	var cur Address
	for _, row := range path {
		cur = m.Index(row, 0, cur)
		if !cur.IsValid() {
			return Address{}
		}
	}
	return cur
}

// Flags describes what a host may do with a. Top-level groups accept
// drops, everything below them can be dragged.
func (m *Model) Flags(a Address) ItemFlags {
	if !a.IsValid() {
		return ItemNoFlags
	}
	flags := ItemIsEnabled | ItemIsSelectable
	if m.IsTopLevel(a) {
		flags |= ItemIsDropEnabled
	} else {
		flags |= ItemIsDragEnabled
	}
	return flags
}

// MoveEvent describes one relocation performed during a move batch. Rows are
// the positions before (source) and the requested slot (destination) for
// that single step.
type MoveEvent struct {
	Node         *tree.Node
	SourceParent Address
	SourceRow    int
	DestParent   Address
	DestRow      int
}

// Subscribe registers fn to run after every single-node relocation. The
// returned func removes the subscription.
func (m *Model) Subscribe(fn func(MoveEvent)) (cancel func()) {
	l := &listener{fn: fn}
	m.listeners = append(m.listeners, l)
	return func() {
		m.listeners = slices.DeleteFunc(m.listeners, func(other *listener) bool {
			return other == l
		})
	}
}

func (m *Model) emit(ev MoveEvent) {
	for _, l := range slices.Clone(m.listeners) {
		l.fn(ev)
	}
}
