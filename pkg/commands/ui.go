package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/treedrag/pkg/commands/options"
	teaui "tableflip.dev/treedrag/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	uo := &options.UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
treedrag ui
treedrag ui --log-file /tmp/treedrag.log
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			u := teaui.UI{Service: svc, LogFile: uo.LogFile}
			return u.Do(cmd.Context())
		},
	}

	options.AddUIArgs(cmd, uo)
	topLevel.AddCommand(cmd)
}
