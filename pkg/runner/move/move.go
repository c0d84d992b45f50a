// Package move provides the runner that drags and drops in one step.
package move

import (
	"context"
	"errors"

	"tableflip.dev/treedrag/pkg/app"
	"tableflip.dev/treedrag/pkg/printers"
)

// Move relocates Paths under Target at Row without using the pasteboard.
type Move struct {
	Service *app.Service
	Paths   []string
	Target  string
	Row     int
	JSON    bool
}

// Do performs the move and prints the resulting tree.
func (m *Move) Do(ctx context.Context) error {
	if m.Service == nil {
		return errors.New("can not move, no service")
	}
	res, err := m.Service.Move(ctx, m.Paths, m.Target, m.Row)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{JSON: m.JSON}
	if m.JSON {
		return pp.JSONValue(map[string]any{
			"result": res,
			"rows":   m.Service.Tree(),
		})
	}
	if err := pp.Dropped(res); err != nil {
		return err
	}
	return pp.Tree(m.Service.Tree(), res.Moved...)
}
