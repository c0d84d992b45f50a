package tree

import "fmt"

const (
	// RootName labels the implicit container of the top-level groups.
	RootName = "ROOT_NODE"

	// DefaultGroups and DefaultItems give the shape of the stock sample tree.
	DefaultGroups = 3
	DefaultItems  = 5
)

// Sample builds a root holding groups top-level nodes named "Group k", each
// with items leaves named "Item i of Group k".
func Sample(groups, items int) *Node {
	root := New(RootName)
	for g := 0; g < groups; g++ {
		group := New(fmt.Sprintf("Group %d", g))
		root.AddChild(group)
		for i := 0; i < items; i++ {
			group.AddChild(New(fmt.Sprintf("Item %d of %s", i, group.Name())))
		}
	}
	return root
}
