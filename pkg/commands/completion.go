package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(treedrag completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(treedrag completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// completePaths offers the paths of draggable items not already named.
func completePaths(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	svc, err := loadService()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	seen := make(map[string]bool, len(args))
	for _, a := range args {
		seen[a] = true
	}
	var out []string
	for _, r := range svc.Tree() {
		if r.Draggable && !seen[r.Path] {
			out = append(out, r.Path+"\t"+r.Label)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeGroups offers the paths that accept drops.
func completeGroups(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	svc, err := loadService()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, r := range svc.Tree() {
		if r.Droppable {
			out = append(out, r.Path+"\t"+r.Label)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
