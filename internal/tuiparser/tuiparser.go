// Package tuiparser is the central TUI state machine (initializing →
// ready → processing → idle) used by the Claude TUI adapter (the Codex
// TUI adapter forwards raw output only). It owns a Virtual Terminal, feeds it raw chunks, and derives
// AgentEvents from footer transitions and on-screen content blocks.
package tuiparser

import (
	"strings"
	"sync"
	"time"

	"agentterm/internal/event"
	"agentterm/internal/screenreader"
	"agentterm/internal/vt"
)

// State is the parser's lifecycle phase.
type State string

const (
	StateInitializing State = "initializing"
	StateReady        State = "ready"
	StateProcessing   State = "processing"
	StateIdle         State = "idle"
)

// idleAfterSilence is how long a processing turn may go without a
// refreshed processing footer, with a prompt already seen, before the
// parser gives up waiting for an explicit idle footer and declares the
// turn complete anyway.
const idleAfterSilence = 3 * time.Second

// Parser is a per-session TUI state machine. Not safe for use from
// multiple goroutines without the caller serializing Feed/Tick calls,
// beyond the internal lock that protects state reads from Tick racing a
// concurrent Feed.
type Parser struct {
	mu sync.Mutex

	vt    *vt.Terminal
	state State

	seenBlockKeys             map[string]struct{}
	lastFooter                screenreader.FooterState
	lastProcessingTs          time.Time
	promptSeenSinceProcessing bool
	seenProcessingFooter      bool
	inInteractiveMenu         bool
}

// New creates a Parser with its own Virtual Terminal of the given
// dimensions and scrollback capacity.
func New(cols, rows, scrollbackMax int) *Parser {
	return &Parser{
		vt:            vt.New(cols, rows, scrollbackMax),
		state:         StateInitializing,
		seenBlockKeys: make(map[string]struct{}),
	}
}

// State reports the parser's current lifecycle phase.
func (p *Parser) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Feed processes one raw chunk and returns the events it produces, in
// order: a raw output passthrough first, then footer-transition events
// other than the processing->idle one, then any content-block events
// extracted while processing, and only then the processing->idle
// transition itself (task-complete), if this chunk triggers both. Spec
// §4.6 scenario 4(c) requires a content block discovered in the same
// chunk that completes a turn to be reported before task-complete.
func (p *Parser) Feed(chunk []byte) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var events []event.Event
	events = append(events, event.NewOutput(strings.ToValidUTF8(string(chunk), "�")))

	p.vt.Write(chunk)
	screen := p.vt.GetScreen()

	wasProcessing := p.state == StateProcessing
	footer := screenreader.ReadFooter(screen)
	events = append(events, p.runTransitions(footer)...)

	if wasProcessing || p.state == StateProcessing {
		events = append(events, p.extractContent()...)
	}

	if wasProcessing && p.state == StateProcessing {
		if ev, ok := p.tryIdleTransition(footer); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Tick is timer-driven (typically every >= 500ms) and attempts the
// idle transition even when no new bytes have arrived, since a turn can
// end with a quiescent re-render and no further chunks.
func (p *Parser) Tick() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateProcessing {
		return nil
	}
	screen := p.vt.GetScreen()
	footer := screenreader.ReadFooter(screen)
	if ev, ok := p.tryIdleTransition(footer); ok {
		return []event.Event{ev}
	}
	return nil
}

func (p *Parser) runTransitions(footer screenreader.FooterState) []event.Event {
	var events []event.Event

	switch p.state {
	case StateInitializing:
		if footer.HasPrompt {
			p.state = StateReady
			events = append(events, event.NewReady())
		}

	case StateReady, StateIdle:
		if footer.Signal == screenreader.SignalProcessing {
			p.state = StateProcessing
			p.promptSeenSinceProcessing = false
			p.seenProcessingFooter = true
			p.lastProcessingTs = time.Now()
		}

	case StateProcessing:
		if footer.HasPrompt {
			p.promptSeenSinceProcessing = true
		}
		if footer.Signal == screenreader.SignalProcessing {
			p.lastProcessingTs = time.Now()
			p.seenProcessingFooter = true
		}
		if footer.Signal == screenreader.SignalInteractiveMenu {
			if !p.inInteractiveMenu {
				events = append(events, event.NewQuestion(""))
				p.inInteractiveMenu = true
			}
		} else {
			p.inInteractiveMenu = false
		}
	}

	p.lastFooter = footer
	return events
}

// tryIdleTransition implements the processing->idle escape described in
// spec §4.6: never while a permission or interactive-menu footer is
// showing, never before a processing footer has been seen this turn,
// and otherwise either on an explicit idle footer (once a prompt has
// reappeared) or after idleAfterSilence of no refreshed processing
// footer.
func (p *Parser) tryIdleTransition(footer screenreader.FooterState) (event.Event, bool) {
	if footer.Signal == screenreader.SignalPermission || footer.Signal == screenreader.SignalInteractiveMenu {
		return event.Event{}, false
	}
	if !p.seenProcessingFooter {
		return event.Event{}, false
	}
	if !p.promptSeenSinceProcessing {
		return event.Event{}, false
	}
	if footer.Signal == screenreader.SignalIdle || time.Since(p.lastProcessingTs) > idleAfterSilence {
		p.state = StateIdle
		p.seenProcessingFooter = false
		return event.NewTaskComplete(), true
	}
	return event.Event{}, false
}

func (p *Parser) extractContent() []event.Event {
	full := p.vt.GetFullBuffer()
	footerStart := screenreader.FindFooterStart(full)
	blocks := screenreader.ExtractContentBlocks(full, p.vt.IsWrapped, footerStart)

	var events []event.Event
	for _, b := range blocks {
		t, ok := screenreader.NormalizeBlockText(b.Text)
		if !ok {
			continue
		}
		key := b.Marker + "|" + t
		if _, seen := p.seenBlockKeys[key]; seen {
			continue
		}
		p.seenBlockKeys[key] = struct{}{}
		if ev := screenreader.BlockToEvent(b.Marker, t); ev != nil {
			events = append(events, *ev)
		}
	}
	return events
}
