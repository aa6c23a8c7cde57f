// Package generic implements the pass-through harness supplement from
// SPEC_FULL.md §6: a third, open-ended path that runs any shell command
// under the same PTY Session + Virtual Terminal pipeline with no
// semantic event parsing, only ready (on the first byte) and output{}
// forwarding. Grounded in the
// original h2 project's generic-command harness concept, bounded here
// to never attempt event extraction per the spec's "re-deriving AI
// semantics" non-goal.
package generic

import (
	"strings"

	"github.com/google/shlex"

	"agentterm/internal/agentadapter"
	"agentterm/internal/event"
)

// Adapter runs command as a bare passthrough: no argv conventions, no
// event extraction, just ready-on-first-byte and output forwarding.
type Adapter struct {
	command string
}

// New builds a generic adapter for an arbitrary command name.
func New(command string) *Adapter { return &Adapter{command: command} }

func (a *Adapter) AgentKind() string { return "generic:" + a.command }
func (a *Adapter) Command() string   { return a.command }

func (a *Adapter) BuildArgs(opts agentadapter.SpawnOptions) []string {
	if strings.TrimSpace(opts.ExtraArgs) == "" {
		return nil
	}
	tokens, err := shlex.Split(opts.ExtraArgs)
	if err != nil {
		return nil
	}
	return tokens
}

func (a *Adapter) BuildEnv(opts agentadapter.SpawnOptions) []string { return nil }
func (a *Adapter) InteractivePrompt() bool                          { return false }
func (a *Adapter) NewParser() agentadapter.Parser                   { return &passthroughParser{} }

type passthroughParser struct {
	firstByteSeen bool
}

func (p *passthroughParser) Feed(chunk []byte) []event.Event {
	var events []event.Event
	if !p.firstByteSeen && len(chunk) > 0 {
		p.firstByteSeen = true
		events = append(events, event.NewReady())
	}
	events = append(events, event.NewOutput(string(chunk)))
	return events
}

func (p *passthroughParser) Flush() []event.Event { return nil }
func (p *passthroughParser) Tick() []event.Event  { return nil }
