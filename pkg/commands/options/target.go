package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/treedrag/pkg/app"
)

// TargetOptions names where a drop lands.
type TargetOptions struct {
	Target string
	Row    int
}

// AddTargetArgs wires --target and --row. A row of -1 appends.
func AddTargetArgs(cmd *cobra.Command, o *TargetOptions) {
	cmd.Flags().StringVarP(&o.Target, "target", "t", "",
		"Path of the group to drop into, e.g. 2.")
	cmd.Flags().IntVarP(&o.Row, "row", "r", app.AppendRow,
		"Insert before the child at this row. -1 appends.")
	_ = cmd.MarkFlagRequired("target")
}

// ClipboardOptions switches payload exchange to the system clipboard.
type ClipboardOptions struct {
	Clipboard bool
}

func AddClipboardArg(cmd *cobra.Command, o *ClipboardOptions) {
	cmd.Flags().BoolVar(&o.Clipboard, "clipboard", false,
		"Exchange the payload through the system clipboard instead of the pasteboard.")
}
