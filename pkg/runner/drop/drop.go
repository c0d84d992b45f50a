// Package drop provides the runner that applies a stored payload.
package drop

import (
	"context"
	"errors"

	"tableflip.dev/treedrag/pkg/app"
	"tableflip.dev/treedrag/pkg/clip"
	"tableflip.dev/treedrag/pkg/printers"
	"tableflip.dev/treedrag/pkg/tree/viewmodel"
)

// Drop applies the pending payload under Target at Row and prints the tree
// that results.
type Drop struct {
	Service   *app.Service
	Target    string
	Row       int
	Clipboard bool
	JSON      bool
}

// Do performs the drop.
func (d *Drop) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not drop, no service")
	}

	var (
		res app.DropResult
		err error
	)
	if d.Clipboard {
		var p viewmodel.Payload
		if p, err = clip.Read(); err != nil {
			return err
		}
		res, err = d.Service.DropPayload(p, d.Target, d.Row)
	} else {
		res, err = d.Service.Drop(ctx, d.Target, d.Row)
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{JSON: d.JSON}
	if d.JSON {
		return pp.JSONValue(map[string]any{
			"result": res,
			"rows":   d.Service.Tree(),
		})
	}
	if err := pp.Dropped(res); err != nil {
		return err
	}
	return pp.Tree(d.Service.Tree(), res.Moved...)
}
