// Package agentadapter defines the Adapter capability interface shared
// by the four closed agent kinds (claude_stream, claude_tui,
// codex_stream, codex_tui) plus the generic passthrough harness.
// Adapters are stateless regarding command/argv/env construction and
// stateful regarding parsing — each owns one Parser instance per
// session. Grounded in the teacher's harness.Harness interface shape
// (Name/Command/BuildCommandArgs/BuildCommandEnvVars/Start/Stop), with
// the OTEL/hook-socket machinery that interface's real implementations
// used replaced by this subsystem's bit-exact stdout/stream-json and
// xterm-screen contracts.
package agentadapter

import (
	"agentterm/internal/event"
)

// SpawnOptions carries the caller-supplied parameters that shape argv
// and env for one session.
type SpawnOptions struct {
	Prompt       string
	ExtraArgs    string // user-supplied extra CLI args, split with shlex before appending
	AllowedTools []string
	Model        string
	Cols, Rows   int
}

// Parser is a stateful per-session byte-stream-to-event-stream
// converter. Feed is called once per raw chunk, in order. Flush drains
// any buffered partial state at end of stream (JSON-lines adapters).
// Tick is driven by a timer and is a no-op for adapters that don't need
// one (the JSON-stream adapters; only the TUI parser uses it).
type Parser interface {
	Feed(chunk []byte) []event.Event
	Flush() []event.Event
	Tick() []event.Event
}

// Adapter binds one agent kind's command/argv/env construction to a
// Parser factory.
type Adapter interface {
	// AgentKind is this adapter's entry in the closed agent_kind set.
	AgentKind() string

	// Command is the binary name to execute.
	Command() string

	// BuildArgs returns the complete argv (not including argv[0]) for
	// opts. Stateless: calling it twice with equal opts yields equal
	// argv.
	BuildArgs(opts SpawnOptions) []string

	// BuildEnv returns extra environment variables (KEY=VALUE form) to
	// add on top of the inherited environment.
	BuildEnv(opts SpawnOptions) []string

	// NewParser returns a fresh Parser instance for one session.
	NewParser() Parser

	// InteractivePrompt reports whether the facade should type
	// opts.Prompt into the PTY once the session reaches the ready
	// event, rather than passing it as a CLI argument.
	InteractivePrompt() bool
}
