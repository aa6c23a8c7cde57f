package main

import (
	"testing"

	"agentterm/internal/config"
)

func TestResolveAdapterMatchesClosedKinds(t *testing.T) {
	cfg := config.Default()
	for _, kind := range []string{"claude_stream", "claude_tui", "codex_stream", "codex_tui"} {
		a := resolveAdapter(kind, cfg)
		if a.AgentKind() != kind {
			t.Errorf("resolveAdapter(%q) = %q", kind, a.AgentKind())
		}
	}
}

func TestResolveAdapterFallsBackToGeneric(t *testing.T) {
	cfg := config.Default()
	a := resolveAdapter("htop", cfg)
	if a.AgentKind() != "generic:htop" {
		t.Errorf("got %q, want generic:htop", a.AgentKind())
	}
}

func TestRootCommandHasExpectedSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"spawn", "events", "list", "kill"} {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}
