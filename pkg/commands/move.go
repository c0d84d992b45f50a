package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/treedrag/pkg/commands/options"
	"tableflip.dev/treedrag/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	to := &options.TargetOptions{}

	cmd := &cobra.Command{
		Use:   "move <path>...",
		Short: "Drag and drop in one step",
		Example: `
treedrag move 0/2 1/4 --target 2 --row 1
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completePaths,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			m := move.Move{
				Service: svc,
				Paths:   args,
				Target:  to.Target,
				Row:     to.Row,
				JSON:    oo.JSON,
			}
			return oo.HandleError(m.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddTargetArgs(cmd, to)
	_ = cmd.RegisterFlagCompletionFunc("target", completeGroups)
	topLevel.AddCommand(cmd)
}
