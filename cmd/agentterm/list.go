package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"agentterm/internal/agentterminal"
	"agentterm/internal/config"
	"agentterm/internal/ptysession"
)

var listOutput = termenv.NewOutput(os.Stdout)

// stateColor picks the same kind of state-to-color mapping h2's own
// "list" command uses for its status dots, restated with termenv's
// profile-aware styling instead of hardcoded ANSI escapes so the color
// degrades gracefully on a dumb terminal or when output is piped.
func stateColor(s ptysession.State) termenv.Color {
	if s == ptysession.Exited {
		return listOutput.Color("1") // red
	}
	return listOutput.Color("2") // green
}

// newListCmd demonstrates the facade's List() call. agentterm has no
// daemon or cross-process session registry (see spec.md's "IPC wiring
// to the UI" non-goal), so this only ever reports sessions spawned
// earlier in the same process — which for a one-shot CLI invocation is
// always empty. It is included for completeness against the facade's
// documented operation set and as a building block for an embedder
// that keeps a Terminal alive across multiple spawns in one run.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions tracked by this process's facade",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			facade := agentterminal.New(builtinAdapters(cfg), "", false)
			infos := facade.List()
			if len(infos) == 0 {
				fmt.Println("No sessions in this process.")
				return nil
			}
			for _, info := range infos {
				state := listOutput.String(info.State.String()).Foreground(stateColor(info.State))
				fmt.Printf("%s  %-16s %-10s started %s\n", info.ID, info.AgentKind, state, info.StartedAt.Format("15:04:05"))
			}
			return nil
		},
	}
}
