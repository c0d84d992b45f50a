// Package payload provides the runner that inspects the pending payload.
package payload

import (
	"context"
	"errors"

	"tableflip.dev/treedrag/pkg/app"
	"tableflip.dev/treedrag/pkg/clip"
	"tableflip.dev/treedrag/pkg/printers"
	"tableflip.dev/treedrag/pkg/tree/viewmodel"
)

// Payload decodes the pending payload, from the pasteboard or the system
// clipboard, and prints the paths it carries.
type Payload struct {
	Service   *app.Service
	Clipboard bool
	Clear     bool
	JSON      bool
}

// Do prints the decoded paths, each with the label it resolves to in a
// fresh tree.
func (p *Payload) Do(ctx context.Context) error {
	if p.Service == nil {
		return errors.New("can not inspect payload, no service")
	}
	if p.Clear {
		if p.Service.Pasteboard == nil {
			return app.ErrNoPasteboard
		}
		return p.Service.Pasteboard.Clear(ctx)
	}

	var (
		pending viewmodel.Payload
		err     error
	)
	if p.Clipboard {
		pending, err = clip.Read()
	} else {
		pending, err = p.Service.Pending(ctx)
	}
	if err != nil {
		return err
	}

	paths, err := p.Service.Decode(pending)
	if err != nil {
		return err
	}
	labels := make(map[string]string)
	for _, r := range p.Service.Tree() {
		labels[r.Path] = r.Label
	}

	pp := printers.PrettyPrint{JSON: p.JSON}
	return pp.Paths(paths, labels)
}
