package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/treedrag/pkg/commands/options"
	"tableflip.dev/treedrag/pkg/runner/drag"
)

func addDrag(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	co := &options.ClipboardOptions{}

	cmd := &cobra.Command{
		Use:   "drag <path>...",
		Short: "Pick up items so a later drop can move them",
		Long: `Pick up one or more items by path. The payload is kept on the shared
pasteboard, and with --clipboard also copied to the system clipboard.`,
		Example: `
treedrag drag 0/2 1/4
treedrag drag 0/0 --clipboard
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completePaths,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			d := drag.Drag{
				Service:   svc,
				Paths:     args,
				Clipboard: co.Clipboard,
				JSON:      oo.JSON,
			}
			return oo.HandleError(d.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddClipboardArg(cmd, co)
	topLevel.AddCommand(cmd)
}
