package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"agentterm/internal/agentadapter"
	"agentterm/internal/agentterminal"
	"agentterm/internal/config"
)

func newSpawnCmd() *cobra.Command {
	var (
		extraArgs    string
		prompt       string
		model        string
		allowedTools string
		configPath   string
	)

	cmd := &cobra.Command{
		Use:   "spawn <agent>",
		Short: "Spawn an agent and attach your terminal to it",
		Long: `Spawns the named agent (claude_stream, claude_tui, codex_stream,
codex_tui, or any bare command name for the generic pass-through
adapter) and attaches the calling terminal to its raw byte stream until
the child exits or you detach with Ctrl-].`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			adapter := resolveAdapter(args[0], cfg)
			facade := agentterminal.New(append(builtinAdapters(cfg), adapter), "", false)

			cols, rows := cfg.DefaultCols, cfg.DefaultRows
			if isatty.IsTerminal(os.Stdin.Fd()) {
				if c, r, err := getSize(); err == nil {
					cols, rows = c, r
				}
			}

			var tools []string
			if allowedTools != "" {
				tools = strings.Split(allowedTools, ",")
			}

			sess, err := facade.Spawn(agentterminal.SpawnOptions{
				Agent: adapter.AgentKind(),
				Cwd:   "",
				SpawnOptions: agentadapter.SpawnOptions{
					Prompt:       prompt,
					ExtraArgs:    extraArgs,
					AllowedTools: tools,
					Model:        model,
					Cols:         cols,
					Rows:         rows,
				},
			})
			if err != nil {
				return fmt.Errorf("spawn %s: %w", args[0], err)
			}

			return attach(sess)
		},
	}

	cmd.Flags().StringVar(&extraArgs, "extra-args", "", "extra CLI arguments, shell-split before being appended")
	cmd.Flags().StringVar(&prompt, "prompt", "", "initial prompt (typed in once the agent reports ready for claude_tui, passed as argv for claude_stream, codex_stream and codex_tui)")
	cmd.Flags().StringVar(&model, "model", "", "model override")
	cmd.Flags().StringVar(&allowedTools, "allowed-tools", "", "comma-separated allowed tool names")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	return cmd
}

// attach puts the controlling terminal into raw mode, pipes the
// session's raw output to stdout, and forwards stdin keystrokes to the
// session until it exits or the user detaches.
func attach(sess *agentterminal.Session) error {
	raw, cancel := sess.Raw(256)
	defer cancel()

	fd := int(os.Stdin.Fd())
	var restore *term.State
	if isatty.IsTerminal(uintptr(fd)) {
		var err error
		restore, err = term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("set raw mode: %w", err)
		}
		defer term.Restore(fd, restore)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	go watchResize(sess, fd, sigCh)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for chunk := range raw {
			os.Stdout.Write(chunk)
		}
	}()

	detached := make(chan struct{})
	go func() {
		if forwardInput(sess, os.Stdin) {
			close(detached)
		}
	}()

	select {
	case <-done:
	case <-detached:
	}
	return nil
}

// forwardInput copies stdin bytes to the session until EOF or Ctrl-]
// (0x1d). It reports true when it stopped on Ctrl-] (a detach request);
// it sends no signal to the child itself.
func forwardInput(sess *agentterminal.Session, in io.Reader) bool {
	buf := make([]byte, 256)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			for _, b := range buf[:n] {
				if b == 0x1d {
					return true
				}
			}
			_ = sess.Write(buf[:n])
		}
		if err != nil {
			return false
		}
	}
}

func watchResize(sess *agentterminal.Session, fd int, sigCh <-chan os.Signal) {
	for range sigCh {
		cols, rows, err := term.GetSize(fd)
		if err != nil {
			continue
		}
		_ = sess.Resize(cols, rows)
	}
}

func getSize() (cols, rows int, err error) {
	return term.GetSize(int(os.Stdin.Fd()))
}
