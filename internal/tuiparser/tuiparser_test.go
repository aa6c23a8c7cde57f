package tuiparser

import (
	"testing"
	"time"

	"agentterm/internal/event"
)

func render(lines ...string) []byte {
	var out []byte
	out = append(out, []byte("\x1b[2J\x1b[H")...)
	for i, l := range lines {
		if i > 0 {
			out = append(out, '\r', '\n')
		}
		out = append(out, []byte(l)...)
	}
	return out
}

func kinds(events []event.Event) []event.Kind {
	var out []event.Kind
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func containsKind(events []event.Event, k event.Kind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func TestReadyOnFirstPrompt(t *testing.T) {
	p := New(80, 30, 1000)
	events := p.Feed(render("", "❯", "? for shortcuts"))
	if !containsKind(events, event.Ready) {
		t.Fatalf("expected ready event, got %v", kinds(events))
	}
	if p.State() != StateReady {
		t.Errorf("state = %v, want ready", p.State())
	}
}

func TestProcessingToIdleHappyPath(t *testing.T) {
	p := New(80, 30, 1000)
	p.Feed(render("", "❯", "? for shortcuts"))

	events := p.Feed(render("⏺ Working…", "esc to interrupt"))
	if p.State() != StateProcessing {
		t.Fatalf("state = %v, want processing", p.State())
	}
	if containsKind(events, event.TaskComplete) {
		t.Fatal("did not expect task-complete while still processing")
	}

	events = p.Feed(render("⏺ The answer is 42.", "", "❯", "? for shortcuts"))
	if p.State() != StateIdle {
		t.Fatalf("state = %v, want idle", p.State())
	}

	msgIdx, doneIdx := -1, -1
	for i, e := range events {
		if e.Kind == event.Message {
			msgIdx = i
		}
		if e.Kind == event.TaskComplete {
			doneIdx = i
		}
	}
	if msgIdx == -1 || doneIdx == -1 || msgIdx >= doneIdx {
		t.Fatalf("expected message before task-complete, got %v", kinds(events))
	}
}

func TestPermissionPromptSuppressesIdle(t *testing.T) {
	p := New(80, 30, 1000)
	p.Feed(render("", "❯", "? for shortcuts"))
	p.Feed(render("⏺ Working…", "esc to interrupt"))

	events := p.Feed(render("⏺ Allow Bash?", "❯", "esc to cancel"))
	if containsKind(events, event.TaskComplete) {
		t.Fatal("did not expect task-complete during permission prompt")
	}
	if !containsKind(events, event.PermissionRequest) {
		t.Fatalf("expected permission-request, got %v", kinds(events))
	}
	if p.State() != StateProcessing {
		t.Errorf("state = %v, want still processing", p.State())
	}
}

func TestDedupOnClearAndRedraw(t *testing.T) {
	p := New(80, 30, 1000)
	p.Feed(render("", "❯", "? for shortcuts"))
	p.Feed(render("⏺ Working…", "esc to interrupt"))
	first := p.Feed(render("⏺ The answer is 42.", "", "❯", "? for shortcuts"))
	if !containsKind(first, event.Message) || !containsKind(first, event.TaskComplete) {
		t.Fatalf("expected message+task-complete on first redraw, got %v", kinds(first))
	}

	// Force back into processing so extraction runs again on the redraw.
	p.Feed(render("⏺ Working…", "esc to interrupt"))
	p.Feed(render("\x1b[2J\x1b[H"))
	redraw := p.Feed(render("⏺ The answer is 42.", "", "❯", "? for shortcuts"))

	for _, e := range redraw {
		if e.Kind == event.Message {
			t.Errorf("unexpected duplicate message event on redraw: %v", kinds(redraw))
		}
	}
}

func TestTickDeclaresIdleAfterSilence(t *testing.T) {
	p := New(80, 30, 1000)
	p.Feed(render("", "❯", "? for shortcuts"))
	p.Feed(render("⏺ Working…", "esc to interrupt"))
	// Simulate a prompt having reappeared without an explicit idle footer.
	p.mu.Lock()
	p.promptSeenSinceProcessing = true
	p.lastProcessingTs = time.Now().Add(-4 * time.Second)
	p.mu.Unlock()

	events := p.Tick()
	if !containsKind(events, event.TaskComplete) {
		t.Fatalf("expected task-complete from tick, got %v", kinds(events))
	}
}
