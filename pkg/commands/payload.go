package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/treedrag/pkg/commands/options"
	"tableflip.dev/treedrag/pkg/runner/payload"
)

func addPayload(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	co := &options.ClipboardOptions{}
	clearPending := false

	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Show or clear the pending payload",
		Example: `
treedrag payload
treedrag payload --clipboard
treedrag payload --clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			p := payload.Payload{
				Service:   svc,
				Clipboard: co.Clipboard,
				Clear:     clearPending,
				JSON:      oo.JSON,
			}
			return oo.HandleError(p.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddClipboardArg(cmd, co)
	cmd.Flags().BoolVar(&clearPending, "clear", false, "Empty the pasteboard.")
	topLevel.AddCommand(cmd)
}
