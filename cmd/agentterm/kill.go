package main

import (
	"github.com/spf13/cobra"

	"agentterm/internal/agentterminal"
	"agentterm/internal/config"
)

// newKillCmd demonstrates the facade's Kill() call; see newListCmd's
// comment for why it only acts within a single process's session set.
func newKillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kill <session-id>",
		Short: "Kill a session tracked by this process's facade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			facade := agentterminal.New(builtinAdapters(cfg), "", false)
			return facade.Kill(args[0])
		},
	}
}
