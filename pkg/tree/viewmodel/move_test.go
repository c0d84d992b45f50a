package viewmodel

import (
	"fmt"
	"slices"
	"testing"

	"tableflip.dev/treedrag/pkg/tree"
)

func at(m *Model, path ...int) Address {
	return m.AddressAt(path)
}

func itemNames(group int, items ...int) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, fmt.Sprintf("Item %d of Group %d", i, group))
	}
	return out
}

func TestMoveSingleWithinParent(t *testing.T) {
	tests := []struct {
		name    string
		src     int
		dest    int
		want    []int
		wantRow int
	}{
		{name: "forward lands at dest-1", src: 1, dest: 4, want: []int{0, 2, 3, 1, 4}, wantRow: 3},
		{name: "backward lands at dest", src: 3, dest: 0, want: []int{3, 0, 1, 2, 4}, wantRow: 0},
		{name: "to end", src: 0, dest: 5, want: []int{1, 2, 3, 4, 0}, wantRow: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newSampleModel()
			group := at(m, 0)
			node := at(m, 0, tt.src).Node()

			if !m.Move([]Address{at(m, 0, tt.src)}, group, tt.dest) {
				t.Fatalf("expected move to succeed")
			}
			if got, want := labels(m, group), itemNames(0, tt.want...); !slices.Equal(got, want) {
				t.Fatalf("expected %v, got %v", want, got)
			}
			if row := m.AddressOf(node).Row(); row != tt.wantRow {
				t.Fatalf("expected moved node at row %d, got %d", tt.wantRow, row)
			}
		})
	}
}

func TestMoveMultipleWithinParent(t *testing.T) {
	tests := []struct {
		name string
		src  []int
		dest int
		want []int
	}{
		{name: "forward block", src: []int{1, 2}, dest: 4, want: []int{0, 3, 1, 2, 4}},
		{name: "backward block", src: []int{3, 4}, dest: 1, want: []int{0, 3, 4, 1, 2}},
		{name: "straddling", src: []int{0, 4}, dest: 2, want: []int{1, 0, 4, 2, 3}},
		{name: "reverse selection order", src: []int{4, 0}, dest: 2, want: []int{1, 0, 4, 2, 3}},
		{name: "append", src: []int{0, 2}, dest: 5, want: []int{1, 3, 4, 0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newSampleModel()
			var sources []Address
			for _, r := range tt.src {
				sources = append(sources, at(m, 1, r))
			}
			if !m.Move(sources, at(m, 1), tt.dest) {
				t.Fatalf("expected move to succeed")
			}
			if got, want := labels(m, at(m, 1)), itemNames(1, tt.want...); !slices.Equal(got, want) {
				t.Fatalf("expected %v, got %v", want, got)
			}
		})
	}
}

func TestMoveAcrossParentsScenario(t *testing.T) {
	m := newSampleModel()
	sources := []Address{at(m, 0, 2), at(m, 1, 4)}

	if !m.Move(sources, at(m, 2), 1) {
		t.Fatalf("expected move to succeed")
	}

	want2 := []string{
		"Item 0 of Group 2",
		"Item 2 of Group 0",
		"Item 4 of Group 1",
		"Item 1 of Group 2",
		"Item 2 of Group 2",
		"Item 3 of Group 2",
		"Item 4 of Group 2",
	}
	if got := labels(m, at(m, 2)); !slices.Equal(got, want2) {
		t.Fatalf("group 2: expected %v, got %v", want2, got)
	}
	if got, want := labels(m, at(m, 0)), itemNames(0, 0, 1, 3, 4); !slices.Equal(got, want) {
		t.Fatalf("group 0: expected %v, got %v", want, got)
	}
	if got, want := labels(m, at(m, 1)), itemNames(1, 0, 1, 2, 3); !slices.Equal(got, want) {
		t.Fatalf("group 1: expected %v, got %v", want, got)
	}

	for g := 0; g < 3; g++ {
		group := at(m, g)
		for row := 0; row < m.RowCount(group); row++ {
			a := m.Index(row, 0, group)
			if a.Node().Row() != row {
				t.Fatalf("group %d row %d: node reports row %d", g, row, a.Node().Row())
			}
		}
	}
}

func TestMoveMixedSourcesIntoOneOfThem(t *testing.T) {
	m := newSampleModel()
	// Item 3 of Group 0 stays in its parent, Item 1 of Group 1 joins it.
	sources := []Address{at(m, 1, 1), at(m, 0, 3)}

	if !m.Move(sources, at(m, 0), 1) {
		t.Fatalf("expected move to succeed")
	}
	want := []string{
		"Item 0 of Group 0",
		"Item 3 of Group 0",
		"Item 1 of Group 1",
		"Item 1 of Group 0",
		"Item 2 of Group 0",
		"Item 4 of Group 0",
	}
	if got := labels(m, at(m, 0)); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMoveRefusals(t *testing.T) {
	tests := []struct {
		name    string
		sources func(m *Model) []Address
		parent  func(m *Model) Address
		row     int
	}{
		{
			name:    "empty selection",
			sources: func(*Model) []Address { return nil },
			parent:  func(m *Model) Address { return at(m, 0) },
		},
		{
			name:    "only invalid sources",
			sources: func(*Model) []Address { return []Address{{}, {}} },
			parent:  func(m *Model) Address { return at(m, 0) },
		},
		{
			name:    "root context destination",
			sources: func(m *Model) []Address { return []Address{at(m, 0, 0)} },
			parent:  func(*Model) Address { return Address{} },
		},
		{
			name:    "negative row",
			sources: func(m *Model) []Address { return []Address{at(m, 0, 0)} },
			parent:  func(m *Model) Address { return at(m, 1) },
			row:     -1,
		},
		{
			name:    "row past end",
			sources: func(m *Model) []Address { return []Address{at(m, 0, 0)} },
			parent:  func(m *Model) Address { return at(m, 1) },
			row:     6,
		},
		{
			name:    "group into its own leaf",
			sources: func(m *Model) []Address { return []Address{at(m, 1, 4), at(m, 0)} },
			parent:  func(m *Model) Address { return at(m, 0, 0) },
		},
		{
			name:    "group into itself",
			sources: func(m *Model) []Address { return []Address{at(m, 0)} },
			parent:  func(m *Model) Address { return at(m, 0) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newSampleModel()
			before := snapshot(m)
			if m.Move(tt.sources(m), tt.parent(m), tt.row) {
				t.Fatalf("expected move to be refused")
			}
			if after := snapshot(m); !slices.Equal(before, after) {
				t.Fatalf("refused move mutated the tree:\nbefore %v\nafter  %v", before, after)
			}
		})
	}
}

func TestMoveSkipsInvalidAndDuplicateSources(t *testing.T) {
	m := newSampleModel()
	leaf := at(m, 0, 0)
	if !m.Move([]Address{{}, leaf, leaf, m.Index(9, 0, at(m, 1))}, at(m, 1), 0) {
		t.Fatalf("expected move to succeed")
	}
	if m.RowCount(at(m, 1)) != 6 || m.RowCount(at(m, 0)) != 4 {
		t.Fatalf("expected exactly one node moved")
	}
}

func TestMoveWithStaleSourceRows(t *testing.T) {
	m := newSampleModel()
	a := at(m, 0, 3)
	// Shift a's siblings so its captured row goes stale.
	if !m.Move([]Address{at(m, 0, 0)}, at(m, 2), 0) {
		t.Fatalf("setup move failed")
	}
	if !m.Move([]Address{a}, at(m, 1), 0) {
		t.Fatalf("expected move with stale row to succeed")
	}
	if got := m.Data(at(m, 1, 0)); got != "Item 3 of Group 0" {
		t.Fatalf("expected stale address to move its own node, got %q", got)
	}
}

func TestMoveEmitsEvents(t *testing.T) {
	m := newSampleModel()
	var events []MoveEvent
	cancel := m.Subscribe(func(ev MoveEvent) { events = append(events, ev) })

	m.Move([]Address{at(m, 1, 4), at(m, 0, 2)}, at(m, 2), 1)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	first := events[0]
	if first.Node.Name() != "Item 2 of Group 0" || first.SourceRow != 2 || first.DestRow != 1 {
		t.Fatalf("unexpected first event %+v", first)
	}
	if m.Data(first.SourceParent) != "Group 0" || m.Data(first.DestParent) != "Group 2" {
		t.Fatalf("unexpected parents in first event %+v", first)
	}
	if second := events[1]; second.Node.Name() != "Item 4 of Group 1" || second.DestRow != 2 {
		t.Fatalf("unexpected second event %+v", second)
	}

	cancel()
	m.Move([]Address{at(m, 0, 0)}, at(m, 1), 0)
	if len(events) != 2 {
		t.Fatalf("expected no events after cancel, got %d", len(events))
	}
}

func snapshot(m *Model) []string {
	var out []string
	m.Root().Walk(func(n *tree.Node, depth int) bool {
		out = append(out, fmt.Sprintf("%d:%s", depth, n.Name()))
		return true
	})
	return out
}
