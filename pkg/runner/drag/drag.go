// Package drag provides the runner that picks items up into a payload.
package drag

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/treedrag/pkg/app"
	"tableflip.dev/treedrag/pkg/clip"
	"tableflip.dev/treedrag/pkg/printers"
)

// Drag serializes the items at Paths onto the pasteboard, and optionally
// the system clipboard.
type Drag struct {
	Service   *app.Service
	Paths     []string
	Clipboard bool
	JSON      bool
}

// Do performs the drag.
func (d *Drag) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not drag, no service")
	}
	payload, err := d.Service.Drag(ctx, d.Paths)
	if err != nil {
		return err
	}
	if d.Clipboard {
		if err := clip.Write(payload); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{JSON: d.JSON}
	if d.JSON {
		return pp.JSONValue(map[string]any{
			"format":  payload.Format,
			"payload": clip.Encode(payload),
			"paths":   d.Paths,
		})
	}
	_, _ = color.New(color.FgGreen).Fprintf(color.Output, "dragged %d item(s)\n", len(d.Paths))
	return pp.Tree(d.Service.Tree(), d.Paths...)
}
