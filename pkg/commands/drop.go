package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/treedrag/pkg/commands/options"
	"tableflip.dev/treedrag/pkg/runner/drop"
)

func addDrop(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	to := &options.TargetOptions{}
	co := &options.ClipboardOptions{}

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop the dragged items into a group",
		Long: `Apply the pending payload under --target. Items are inserted before the
child at --row, or appended when --row is omitted.`,
		Example: `
treedrag drop --target 2 --row 1
treedrag drop --target 0 --clipboard
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			d := drop.Drop{
				Service:   svc,
				Target:    to.Target,
				Row:       to.Row,
				Clipboard: co.Clipboard,
				JSON:      oo.JSON,
			}
			return oo.HandleError(d.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddTargetArgs(cmd, to)
	options.AddClipboardArg(cmd, co)
	_ = cmd.RegisterFlagCompletionFunc("target", completeGroups)
	topLevel.AddCommand(cmd)
}
