package screenreader

import (
	"testing"

	"agentterm/internal/event"
)

func TestNormalizeBlockTextStripsTreeFragment(t *testing.T) {
	// The text before the tree glyph is not an agents phrase, so it
	// survives once the fragment is cut off.
	got, ok := NormalizeBlockText("Delegating work ├ sub-agent-1")
	if !ok {
		t.Fatal("expected normalization to keep a non-empty result")
	}
	if got != "Delegating work" {
		t.Errorf("got %q, want %q (tree fragment stripped)", got, "Delegating work")
	}

	// "Ran 2 agents" is itself a stripped agents phrase, so once the tree
	// fragment is gone nothing is left and the block is discarded.
	if got, ok := NormalizeBlockText("Ran 2 agents ├ sub-agent-1"); ok {
		t.Errorf("got (%q, true), want the block discarded", got)
	}
}

func TestNormalizeBlockTextPureTreeLineDiscarded(t *testing.T) {
	_, ok := NormalizeBlockText("├ sub-agent-1")
	if ok {
		t.Error("expected pure tree line to be discarded")
	}
}

func TestNormalizeBlockTextStripsCtrlBHint(t *testing.T) {
	got, ok := NormalizeBlockText("Working on it ctrl+b to run in background")
	if !ok || got != "Working on it" {
		t.Errorf("got (%q, %v), want (%q, true)", got, ok, "Working on it")
	}
}

func TestBlockToEventToolCall(t *testing.T) {
	ev := BlockToEvent(MarkerPrimary, `Bash("ls -la")`)
	if ev == nil || ev.Kind != event.ToolStart {
		t.Fatalf("got %+v, want tool-start", ev)
	}
}

func TestBlockToEventVerbForm(t *testing.T) {
	ev := BlockToEvent(MarkerPrimary, "Reading /etc/hosts")
	if ev == nil || ev.Kind != event.ToolStart {
		t.Fatalf("got %+v, want tool-start", ev)
	}
	data := ev.Data.(event.ToolStartData)
	if data.Tool != "Reading" || data.Input != "/etc/hosts" {
		t.Errorf("data = %+v", data)
	}
}

func TestBlockToEventThinking(t *testing.T) {
	ev := BlockToEvent(MarkerPrimary, "Thinking for a moment… 12s")
	if ev == nil || ev.Kind != event.Thinking {
		t.Fatalf("got %+v, want thinking", ev)
	}
	data := ev.Data.(event.ThinkingData)
	if data.Text != "Thinking for 12s" {
		t.Errorf("text = %q", data.Text)
	}
}

func TestBlockToEventPermission(t *testing.T) {
	ev := BlockToEvent(MarkerPrimary, "Allow Bash?")
	if ev == nil || ev.Kind != event.PermissionRequest {
		t.Fatalf("got %+v, want permission-request", ev)
	}
	data := ev.Data.(event.PermissionRequestData)
	if data.Tool != "Bash" {
		t.Errorf("tool = %q, want Bash", data.Tool)
	}
}

func TestBlockToEventTipIgnored(t *testing.T) {
	if ev := BlockToEvent(MarkerPrimary, "Tip: try asking for a plan"); ev != nil {
		t.Errorf("expected nil, got %+v", ev)
	}
}

func TestBlockToEventDefaultMessage(t *testing.T) {
	ev := BlockToEvent(MarkerPrimary, "The answer is 42.")
	if ev == nil || ev.Kind != event.Message {
		t.Fatalf("got %+v, want message", ev)
	}
}

func TestBlockToEventSubCompletedVerb(t *testing.T) {
	ev := BlockToEvent(MarkerSub, "Read 10 lines")
	if ev == nil || ev.Kind != event.ToolEnd {
		t.Fatalf("got %+v, want tool-end", ev)
	}
}

func TestBlockToEventSubMessage(t *testing.T) {
	ev := BlockToEvent(MarkerSub, "a plain continuation line")
	if ev == nil || ev.Kind != event.Message {
		t.Fatalf("got %+v, want message", ev)
	}
}
