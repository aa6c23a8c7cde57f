package codex

import (
	"agentterm/internal/agentadapter"
	"agentterm/internal/event"
)

// TUIAdapter builds the same argv as StreamAdapter minus --json, prompt
// included as the last argument.
// Per spec §4.5 this adapter's parser is not currently required to emit
// events — a future implementation would apply the same screen-reader
// pipeline the Claude TUI adapter uses. For now it forwards raw output
// only, which keeps the agent_kind wired into the facade without
// fabricating a screen-reading contract nothing has verified against a
// real Codex TUI frame.
type TUIAdapter struct{}

func NewTUIAdapter() *TUIAdapter { return &TUIAdapter{} }

func (a *TUIAdapter) AgentKind() string { return "codex_tui" }
func (a *TUIAdapter) Command() string   { return "codex" }

func (a *TUIAdapter) BuildArgs(opts agentadapter.SpawnOptions) []string {
	args := []string{"exec", "--full-auto"}
	args = append(args, splitExtra(opts.ExtraArgs)...)
	if opts.Model != "" {
		args = append(args, "-c", "model="+opts.Model)
	}
	if opts.Prompt != "" {
		args = append(args, opts.Prompt)
	}
	return args
}

func (a *TUIAdapter) BuildEnv(opts agentadapter.SpawnOptions) []string { return nil }

func (a *TUIAdapter) InteractivePrompt() bool { return false }

func (a *TUIAdapter) NewParser() agentadapter.Parser { return &passthroughParser{} }

type passthroughParser struct{}

func (p *passthroughParser) Feed(chunk []byte) []event.Event {
	return []event.Event{event.NewOutput(string(chunk))}
}
func (p *passthroughParser) Flush() []event.Event { return nil }
func (p *passthroughParser) Tick() []event.Event  { return nil }
