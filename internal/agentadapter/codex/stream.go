// Package codex implements the Codex stream and TUI adapters.
package codex

import (
	"strings"

	"github.com/google/shlex"

	"agentterm/internal/agentadapter"
	"agentterm/internal/event"
	"agentterm/internal/jsonlines"
)

// StreamAdapter binds `codex exec --json --full-auto` argv construction
// to the thread/turn/item/error vocabulary in spec §4.5.
type StreamAdapter struct{}

func NewStreamAdapter() *StreamAdapter { return &StreamAdapter{} }

func (a *StreamAdapter) AgentKind() string { return "codex_stream" }
func (a *StreamAdapter) Command() string   { return "codex" }

func (a *StreamAdapter) BuildArgs(opts agentadapter.SpawnOptions) []string {
	args := []string{"exec", "--json", "--full-auto"}
	args = append(args, splitExtra(opts.ExtraArgs)...)
	if opts.Model != "" {
		args = append(args, "-c", "model="+opts.Model)
	}
	if opts.Prompt != "" {
		args = append(args, opts.Prompt)
	}
	return args
}

func (a *StreamAdapter) BuildEnv(opts agentadapter.SpawnOptions) []string { return nil }

func (a *StreamAdapter) InteractivePrompt() bool { return false }

func (a *StreamAdapter) NewParser() agentadapter.Parser { return newStreamParser() }

func splitExtra(extra string) []string {
	if strings.TrimSpace(extra) == "" {
		return nil
	}
	tokens, err := shlex.Split(extra)
	if err != nil {
		return nil
	}
	return tokens
}

type codexItem struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Command          string `json:"command"`
	AggregatedOutput string `json:"aggregated_output"`
	Name             string `json:"name"`
	Arguments        any    `json:"arguments"`
	Output           any    `json:"output"`
	Text             string `json:"text"`
}

type streamLine struct {
	Type    string     `json:"type"`
	Message string     `json:"message"`
	Item    *codexItem `json:"item"`
}

type streamParser struct {
	p *jsonlines.Parser[streamLine, event.Event]
}

func newStreamParser() *streamParser {
	sp := &streamParser{}
	sp.p = jsonlines.New(sp.mapLine, func(line string) []event.Event {
		return []event.Event{event.NewOutput(line)}
	})
	return sp
}

func (sp *streamParser) mapLine(l streamLine) []event.Event {
	switch l.Type {
	case "thread.started":
		return []event.Event{event.NewReady()}
	case "turn.started":
		return nil
	case "turn.completed":
		return []event.Event{event.NewTaskComplete()}
	case "error":
		return []event.Event{event.NewError(l.Message)}
	case "item.started":
		if l.Item == nil {
			return nil
		}
		switch l.Item.Type {
		case "command_execution":
			return []event.Event{
				event.NewToolStart("command", l.Item.Command),
				event.NewCommandRun(l.Item.Command),
			}
		case "mcp_tool_call":
			return []event.Event{event.NewToolStart(l.Item.Name, l.Item.Arguments)}
		}
		return nil
	case "item.completed":
		if l.Item == nil {
			return nil
		}
		switch l.Item.Type {
		case "reasoning":
			return []event.Event{event.NewThinking(l.Item.Text)}
		case "command_execution":
			return []event.Event{event.NewToolEnd("command", l.Item.AggregatedOutput)}
		case "mcp_tool_call":
			return []event.Event{event.NewToolEnd(l.Item.Name, l.Item.Output)}
		case "agent_message":
			return []event.Event{event.NewMessage(l.Item.Text)}
		case "error":
			return []event.Event{event.NewError(l.Item.Text)}
		}
		return nil
	default:
		return nil
	}
}

func (sp *streamParser) Feed(chunk []byte) []event.Event { return sp.p.Feed(chunk) }
func (sp *streamParser) Flush() []event.Event             { return sp.p.Flush() }
func (sp *streamParser) Tick() []event.Event              { return nil }
