package claude

import (
	"testing"

	"agentterm/internal/event"
)

func kinds(events []event.Event) []event.Kind {
	out := make([]event.Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func equalKinds(a, b []event.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClaudeStreamToolUse(t *testing.T) {
	input := `{"type":"system","subtype":"init","session_id":"s"}
{"type":"assistant","message":{"content":[{"type":"tool_use","id":"t","name":"Read","input":{"file":"/x"}}]}}
{"type":"user","message":{"content":[{"type":"tool_result","tool_use_id":"t","content":"ok"}]}}
{"type":"result","subtype":"success"}
`
	p := newStreamParser()
	events := p.Feed([]byte(input))

	want := []event.Kind{event.Ready, event.ToolStart, event.ToolEnd, event.TaskComplete}
	if !equalKinds(kinds(events), want) {
		t.Fatalf("got %v, want %v", kinds(events), want)
	}

	toolStart := events[1].Data.(event.ToolStartData)
	if toolStart.Tool != "Read" {
		t.Errorf("tool = %q, want Read", toolStart.Tool)
	}
	toolEnd := events[2].Data.(event.ToolEndData)
	if toolEnd.Tool != "t" || toolEnd.Output != "ok" {
		t.Errorf("tool-end = %+v", toolEnd)
	}
}

func TestNonJSONPassthroughThenReady(t *testing.T) {
	input := "Loading...\n" + `{"type":"system","subtype":"init"}` + "\n"
	p := newStreamParser()
	events := p.Feed([]byte(input))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %v", len(events), kinds(events))
	}
	if events[0].Kind != event.Output {
		t.Errorf("first event = %v, want output", events[0].Kind)
	}
}
