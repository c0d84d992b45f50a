package options

import "github.com/spf13/cobra"

// UIOptions configures the interactive UI.
type UIOptions struct {
	LogFile string
}

func AddUIArgs(cmd *cobra.Command, o *UIOptions) {
	cmd.Flags().StringVar(&o.LogFile, "log-file", "",
		"Append every move step to this file.")
}
