package claude

import (
	"strings"

	"agentterm/internal/agentadapter"
	"agentterm/internal/event"
	"agentterm/internal/tuiparser"
)

// TUIAdapter drives the xterm-screen Claude TUI. The prompt is not
// passed as an argument; the facade types it in after the ready event
// (see agentterminal.Spawn).
type TUIAdapter struct {
	ScrollbackRows int
}

func NewTUIAdapter(scrollbackRows int) *TUIAdapter {
	return &TUIAdapter{ScrollbackRows: scrollbackRows}
}

func (a *TUIAdapter) AgentKind() string { return "claude_tui" }
func (a *TUIAdapter) Command() string   { return "claude" }

func (a *TUIAdapter) BuildArgs(opts agentadapter.SpawnOptions) []string {
	args := splitExtra(opts.ExtraArgs)
	if len(opts.AllowedTools) > 0 {
		args = append(args, "--allowedTools", strings.Join(opts.AllowedTools, ","))
	}
	return args
}

func (a *TUIAdapter) BuildEnv(opts agentadapter.SpawnOptions) []string { return nil }

func (a *TUIAdapter) InteractivePrompt() bool { return true }

func (a *TUIAdapter) NewParser() agentadapter.Parser {
	cols, rows := 80, 30
	return &tuiParserAdapter{p: tuiparser.New(cols, rows, a.ScrollbackRows)}
}

// tuiParserAdapter adapts tuiparser.Parser (which has no Flush concept
// — the TUI protocol has no trailing partial-JSON-line state) to the
// agentadapter.Parser interface.
type tuiParserAdapter struct {
	p *tuiparser.Parser
}

func (t *tuiParserAdapter) Feed(chunk []byte) []event.Event { return t.p.Feed(chunk) }
func (t *tuiParserAdapter) Flush() []event.Event             { return nil }
func (t *tuiParserAdapter) Tick() []event.Event              { return t.p.Tick() }
