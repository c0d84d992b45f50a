package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/treedrag/pkg/app"
	"tableflip.dev/treedrag/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "treedrag",
		Short: base.Wrap80("Drag and drop items between the groups of a tree."),
		Long: base.Wrap80("treedrag keeps a two level tree of groups and items. " +
			"Items can be dragged from one invocation and dropped in another; the " +
			"dragged paths wait on a shared pasteboard until a drop applies them."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTree(topLevel)
	addDrag(topLevel)
	addDrop(topLevel)
	addMove(topLevel)
	addPayload(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadService builds a service over a fresh sample tree with the configured
// pasteboard attached.
func loadService() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	pb, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, pb), nil
}
