// Package claude implements the Claude stream and TUI adapters.
package claude

import (
	"strings"

	"github.com/google/shlex"

	"agentterm/internal/agentadapter"
	"agentterm/internal/event"
	"agentterm/internal/jsonlines"
)

// StreamAdapter binds `claude -p --verbose --output-format stream-json`
// argv construction to the JSON-lines vocabulary in spec §4.5: system/
// init, assistant content blocks, user tool_result blocks, and result.
// Line shapes are grounded in the retrieved streamjson type
// definitions (content blocks keyed by "type": text/tool_use/thinking/
// tool_result).
type StreamAdapter struct{}

func NewStreamAdapter() *StreamAdapter { return &StreamAdapter{} }

func (a *StreamAdapter) AgentKind() string { return "claude_stream" }
func (a *StreamAdapter) Command() string   { return "claude" }

func (a *StreamAdapter) BuildArgs(opts agentadapter.SpawnOptions) []string {
	args := []string{"-p", "--verbose", "--output-format", "stream-json"}
	args = append(args, splitExtra(opts.ExtraArgs)...)
	if len(opts.AllowedTools) > 0 {
		args = append(args, "--allowedTools", strings.Join(opts.AllowedTools, ","))
	}
	if opts.Prompt != "" {
		args = append(args, "--", opts.Prompt)
	}
	return args
}

func (a *StreamAdapter) BuildEnv(opts agentadapter.SpawnOptions) []string { return nil }

func (a *StreamAdapter) InteractivePrompt() bool { return false }

func (a *StreamAdapter) NewParser() agentadapter.Parser { return newStreamParser() }

// splitExtra tokenizes a user-supplied extra-argument string with
// shlex before it is appended to the adapter's built-in argv, the way
// the teacher's internal/bridge.ExecCommand does for user-supplied
// command strings.
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

type contentBlock struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	Name      string `json:"name"`
	Input     any    `json:"input"`
	ToolUseID string `json:"tool_use_id"`
	Content   any    `json:"content"`
}

type messageBody struct {
	Content []contentBlock `json:"content"`
}

type streamLine struct {
	Type    string       `json:"type"`
	Subtype string       `json:"subtype"`
	Message *messageBody `json:"message"`
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
	case "system":
		if l.Subtype == "init" {
			return []event.Event{event.NewReady()}
		}
		return nil
	case "assistant":
		if l.Message == nil {
			return nil
		}
		var out []event.Event
		for _, b := range l.Message.Content {
			switch b.Type {
			case "text":
				out = append(out, event.NewMessage(b.Text))
			case "tool_use":
				out = append(out, event.NewToolStart(b.Name, b.Input))
			case "thinking":
				out = append(out, event.NewThinking(b.Text))
			}
		}
		return out
	case "user":
		if l.Message == nil {
			return nil
		}
		var out []event.Event
		for _, b := range l.Message.Content {
			if b.Type == "tool_result" {
				out = append(out, event.NewToolEnd(b.ToolUseID, b.Content))
			}
		}
		return out
	case "result":
		return []event.Event{event.NewTaskComplete()}
	default:
		return nil
	}
}

func (sp *streamParser) Feed(chunk []byte) []event.Event { return sp.p.Feed(chunk) }
func (sp *streamParser) Flush() []event.Event             { return sp.p.Flush() }
func (sp *streamParser) Tick() []event.Event              { return nil }
