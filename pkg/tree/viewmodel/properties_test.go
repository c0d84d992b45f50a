package viewmodel

import (
	"slices"
	"testing"

	"pgregory.net/rapid"

	"tableflip.dev/treedrag/pkg/tree"
)

func drawLeaves(t *rapid.T, m *Model) []Address {
	n := rapid.IntRange(0, 6).Draw(t, "sources")
	out := make([]Address, 0, n)
	for i := 0; i < n; i++ {
		g := rapid.IntRange(0, m.RowCount(Address{})-1).Draw(t, "group")
		group := m.Index(g, 0, Address{})
		if m.RowCount(group) == 0 {
			continue
		}
		row := rapid.IntRange(0, m.RowCount(group)-1).Draw(t, "row")
		out = append(out, m.Index(row, 0, group))
	}
	return out
}

func leafCount(m *Model) int {
	total := 0
	for g := 0; g < m.RowCount(Address{}); g++ {
		total += m.RowCount(m.Index(g, 0, Address{}))
	}
	return total
}

func checkRows(t *rapid.T, m *Model) {
	m.Root().Walk(func(n *tree.Node, _ int) bool {
		for i, c := range n.Children() {
			if c.Row() != i || c.Parent() != n {
				t.Fatalf("%q: child %q reports row %d parent %v", n.Name(), c.Name(), c.Row(), c.Parent())
			}
		}
		return true
	})
}

func TestPropertyMovePreservesNodes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewSample(rapid.IntRange(1, 4).Draw(t, "groups"), rapid.IntRange(0, 6).Draw(t, "items"))
		before := leafCount(m)

		steps := rapid.IntRange(1, 5).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			sources := drawLeaves(t, m)
			group := m.Index(rapid.IntRange(0, m.RowCount(Address{})-1).Draw(t, "dest"), 0, Address{})
			row := rapid.IntRange(0, m.RowCount(group)).Draw(t, "destRow")

			var moved []*tree.Node
			for _, s := range sources {
				if !slices.Contains(moved, s.Node()) {
					moved = append(moved, s.Node())
				}
			}

			ok := m.Move(sources, group, row)
			if ok != (len(moved) > 0) {
				t.Fatalf("Move returned %v for %d sources", ok, len(moved))
			}
			for _, n := range moved {
				if n.Parent() != group.Node() {
					t.Fatalf("%q did not land under %q", n.Name(), group.Node().Name())
				}
			}
			checkRows(t, m)
		}

		if after := leafCount(m); after != before {
			t.Fatalf("leaf count changed from %d to %d", before, after)
		}
	})
}

func TestPropertyMovedBlockIsContiguous(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewSample(3, rapid.IntRange(1, 6).Draw(t, "items"))
		sources := drawLeaves(t, m)
		if len(sources) == 0 {
			return
		}
		batch := m.capture(sources)
		group := m.Index(rapid.IntRange(0, 2).Draw(t, "dest"), 0, Address{})
		row := rapid.IntRange(0, m.RowCount(group)).Draw(t, "destRow")

		if !m.Move(sources, group, row) {
			t.Fatalf("expected move to succeed")
		}
		first := m.AddressOf(batch[0].node).Row()
		for i, mv := range batch {
			if got := m.AddressOf(mv.node).Row(); got != first+i {
				t.Fatalf("block member %d at row %d, want %d", i, got, first+i)
			}
		}
	})
}

func TestPropertyPayloadRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewSample(rapid.IntRange(1, 4).Draw(t, "groups"), rapid.IntRange(1, 5).Draw(t, "items"))
		in := drawLeaves(t, m)
		if rapid.Bool().Draw(t, "withGroup") {
			in = append(in, m.Index(0, 0, Address{}))
		}
		if rapid.Bool().Draw(t, "withInvalid") {
			in = append(in, Address{})
		}
		out := m.Deserialize(m.Serialize(in))
		if !slices.Equal(in, out) {
			t.Fatalf("round trip mismatch: %v != %v", in, out)
		}
	})
}

func TestPropertyDeserializeNeverPanics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewSample(3, 5)
		data := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "data")
		for _, a := range m.Deserialize(data) {
			if a.IsValid() && !m.Root().IsAncestorOf(a.Node()) {
				t.Fatalf("decoded address %v outside the tree", a)
			}
		}
	})
}

func TestPropertyIndexParentRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewSample(rapid.IntRange(0, 4).Draw(t, "groups"), rapid.IntRange(0, 5).Draw(t, "items"))
		m.Root().Walk(func(n *tree.Node, _ int) bool {
			parent := m.AddressOf(n)
			for row := 0; row < m.RowCount(parent); row++ {
				if got := m.Parent(m.Index(row, 0, parent)); got != parent {
					t.Fatalf("Parent(Index(%d, %v)) = %v", row, parent, got)
				}
			}
			return true
		})
	})
}
