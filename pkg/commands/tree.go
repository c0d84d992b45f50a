package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/treedrag/pkg/commands/options"
	"tableflip.dev/treedrag/pkg/runner/tree"
)

func addTree(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the tree with paths and flags",
		Example: `
treedrag tree
treedrag tree --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			t := tree.Tree{Service: svc, JSON: oo.JSON}
			return oo.HandleError(t.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
