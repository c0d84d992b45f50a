package viewmodel

import "strings"

// ItemFlags is the capability set of an address.
type ItemFlags uint8

// ItemNoFlags is returned for invalid addresses.
const ItemNoFlags ItemFlags = 0

const (
	ItemIsEnabled ItemFlags = 1 << iota
	ItemIsSelectable
	ItemIsDragEnabled
	ItemIsDropEnabled
)

// Has reports whether all of want are set.
func (f ItemFlags) Has(want ItemFlags) bool {
	return f&want == want
}

func (f ItemFlags) String() string {
	if f == ItemNoFlags {
		return "none"
	}
	var parts []string
	for _, flag := range []struct {
		bit  ItemFlags
		name string
	}{
		{ItemIsEnabled, "enabled"},
		{ItemIsSelectable, "selectable"},
		{ItemIsDragEnabled, "drag"},
		{ItemIsDropEnabled, "drop"},
	} {
		if f.Has(flag.bit) {
			parts = append(parts, flag.name)
		}
	}
	return strings.Join(parts, ",")
}

// DropAction is the kind of drop a host requests.
type DropAction uint8

const (
	CopyAction DropAction = 1 << iota
	MoveAction
	LinkAction
)

func (a DropAction) String() string {
	switch a {
	case CopyAction:
		return "copy"
	case MoveAction:
		return "move"
	case LinkAction:
		return "link"
	default:
		return "unknown"
	}
}

// SupportedDropActions lists the actions DropMimeData honours.
func (m *Model) SupportedDropActions() DropAction {
	return MoveAction
}
