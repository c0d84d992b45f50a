package viewmodel

// CanDropMimeData reports whether p may be dropped under parent before the
// child at row.
//
// Only top-level groups accept drops; the root context and anything deeper
// are refused. The action must be MoveAction and the payload must carry
// PayloadFormat. row must lie in [0, RowCount(parent)]: dropping onto an item
// (row -1) is not supported, appending (row == RowCount) is. column is
// ignored.
func (m *Model) CanDropMimeData(p Payload, action DropAction, row, _ int, parent Address) bool {
	parent = m.Refresh(parent)
	switch {
	case !parent.IsValid():
		return false
	case !m.Flags(parent).Has(ItemIsDropEnabled):
		return false
	case action != MoveAction:
		return false
	case p.Format != PayloadFormat:
		return false
	case row < 0 || row > m.RowCount(parent):
		return false
	}
	return true
}

// DropMimeData applies a drop of p and reports whether anything moved. It
// re-checks CanDropMimeData so an ineligible drop never mutates the tree.
func (m *Model) DropMimeData(p Payload, action DropAction, row, column int, parent Address) bool {
	if !m.CanDropMimeData(p, action, row, column, parent) {
		return false
	}
	addrs := m.Deserialize(p.Data)
	if len(addrs) == 0 {
		return false
	}
	return m.Move(addrs, parent, row)
}
