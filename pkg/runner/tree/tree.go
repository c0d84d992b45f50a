// Package tree provides the runner that prints the sample tree.
package tree

import (
	"context"
	"errors"

	"tableflip.dev/treedrag/pkg/app"
	"tableflip.dev/treedrag/pkg/printers"
)

// Tree prints every row with its path and flags.
type Tree struct {
	Service *app.Service
	JSON    bool
}

// Do renders the tree.
func (t *Tree) Do(_ context.Context) error {
	if t.Service == nil {
		return errors.New("can not list, no service")
	}
	pp := printers.PrettyPrint{JSON: t.JSON}
	return pp.Tree(t.Service.Tree())
}
