package generic

import (
	"reflect"
	"testing"

	"agentterm/internal/agentadapter"
	"agentterm/internal/event"
)

func TestReadyOnFirstByteThenOutput(t *testing.T) {
	a := New("some-tool")
	p := a.NewParser()

	events := p.Feed([]byte("hello\n"))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != event.Ready {
		t.Errorf("first event = %v, want ready", events[0].Kind)
	}
	if events[1].Kind != event.Output {
		t.Errorf("second event = %v, want output", events[1].Kind)
	}

	events = p.Feed([]byte("more\n"))
	for _, e := range events {
		if e.Kind == event.Ready {
			t.Fatal("expected ready to be emitted at most once")
		}
	}
}

func TestBuildArgsSplitsExtra(t *testing.T) {
	a := New("mytool")
	if a.AgentKind() != "generic:mytool" {
		t.Errorf("agent kind = %q", a.AgentKind())
	}
	got := a.BuildArgs(agentadapter.SpawnOptions{ExtraArgs: `--flag "two words"`})
	want := []string{"--flag", "two words"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildArgs = %q, want %q", got, want)
	}
}
