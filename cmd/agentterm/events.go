package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agentterm/internal/agentadapter"
	"agentterm/internal/agentterminal"
	"agentterm/internal/config"
)

func newEventsCmd() *cobra.Command {
	var (
		extraArgs  string
		prompt     string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "events <agent>",
		Short: "Spawn an agent and print its normalized event stream as JSON lines",
		Long: `Like spawn, but instead of attaching the terminal to the raw byte
stream, prints one JSON line per normalized lifecycle event (ready,
message, tool-start, tool-end, task-complete, ...) to stdout. Useful for
observing what the adapter pipeline extracts from a given agent CLI.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			adapter := resolveAdapter(args[0], cfg)
			facade := agentterminal.New(append(builtinAdapters(cfg), adapter), "", false)

			sess, err := facade.Spawn(agentterminal.SpawnOptions{
				Agent: adapter.AgentKind(),
				SpawnOptions: agentadapter.SpawnOptions{
					Prompt:    prompt,
					ExtraArgs: extraArgs,
					Cols:      cfg.DefaultCols,
					Rows:      cfg.DefaultRows,
				},
			})
			if err != nil {
				return fmt.Errorf("spawn %s: %w", args[0], err)
			}

			events, cancel := sess.Events(256)
			defer cancel()

			enc := json.NewEncoder(os.Stdout)
			for ev := range events {
				_ = enc.Encode(ev)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&extraArgs, "extra-args", "", "extra CLI arguments, shell-split before being appended")
	cmd.Flags().StringVar(&prompt, "prompt", "", "initial prompt")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	return cmd
}
