package main

import (
	"github.com/spf13/cobra"

	"agentterm/internal/agentadapter"
	"agentterm/internal/agentadapter/claude"
	"agentterm/internal/agentadapter/codex"
	"agentterm/internal/agentadapter/generic"
	"agentterm/internal/config"
)

// newRootCmd builds the agentterm root command with all subcommands.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agentterm",
		Short: "Supervise an AI coding agent CLI under a pseudo-terminal",
		Long: `agentterm spawns a Claude Code or Codex CLI (streaming or TUI mode)
under a pseudo-terminal, normalizes its output into a closed set of
lifecycle events, and either attaches your terminal to it directly or
prints the normalized event stream.`,
	}

	rootCmd.AddCommand(
		newSpawnCmd(),
		newEventsCmd(),
		newListCmd(),
		newKillCmd(),
	)
	return rootCmd
}

// builtinAdapters returns one adapter instance per closed agent_kind,
// keyed the way Terminal.New expects. The generic pass-through adapter
// is not included; resolveAdapter builds one on demand.
func builtinAdapters(cfg config.Config) []agentadapter.Adapter {
	return []agentadapter.Adapter{
		claude.NewStreamAdapter(),
		claude.NewTUIAdapter(cfg.ScrollbackRows),
		codex.NewStreamAdapter(),
		codex.NewTUIAdapter(),
	}
}

// resolveAdapter returns the registered adapter for name, or a generic
// pass-through adapter if name doesn't match one of the four closed
// kinds — it is then treated as a bare command to run.
func resolveAdapter(name string, cfg config.Config) agentadapter.Adapter {
	for _, a := range builtinAdapters(cfg) {
		if a.AgentKind() == name {
			return a
		}
	}
	return generic.New(name)
}
