// Command agentterm is a thin operator-facing entry point over the
// agentterminal facade: it spawns one agent CLI under a PTY, attaches
// the controlling terminal to it (or prints its parsed event stream),
// and exits when the child does. It is a demonstration harness, not a
// daemon — there is no cross-process session registry, matching
// spec.md's listed out-of-scope concern of "IPC wiring to the UI."
// Grounded in the teacher's internal/cmd package (cobra root plus one
// file per subcommand).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "agentterm:", err)
		os.Exit(1)
	}
}
