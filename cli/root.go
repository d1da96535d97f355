// Package cli is the chowmate-survey command tree.
package cli

import (
	"github.com/joules19/chowmate-web-sub002/config"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/spf13/cobra"
)

func Execute() error {
	// flag defaults come from the environment, so .env goes first
	config.LoadEnv()
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	cfg := &config.Config{}
	root := &cobra.Command{
		Use:          "chowmate-survey",
		Short:        "Serve surveys and take them from the terminal",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg.Debug {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	config.BindCommon(root.PersistentFlags(), cfg)

	root.AddCommand(
		serveCmd(cfg),
		takeCmd(cfg),
		importCmd(cfg),
		tokenCmd(cfg),
	)
	return root
}
