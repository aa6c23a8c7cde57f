package screenreader

import "testing"

func TestReadFooterIdle(t *testing.T) {
	rows := []string{"", "hello", "", "❯ ", "? for shortcuts"}
	fs := ReadFooter(rows)
	if fs.Signal != SignalIdle {
		t.Errorf("signal = %v, want idle", fs.Signal)
	}
	if !fs.HasPrompt {
		t.Error("expected has_prompt = true")
	}
}

func TestReadFooterProcessing(t *testing.T) {
	rows := []string{"⏺ Working…", "esc to interrupt"}
	fs := ReadFooter(rows)
	if fs.Signal != SignalProcessing {
		t.Errorf("signal = %v, want processing", fs.Signal)
	}
}

func TestReadFooterPermission(t *testing.T) {
	rows := []string{"❯", "esc to cancel", "Allow Bash?"}
	fs := ReadFooter(rows)
	if fs.Signal != SignalPermission {
		t.Errorf("signal = %v, want permission", fs.Signal)
	}
}

func TestReadFooterInteractiveMenu(t *testing.T) {
	rows := []string{"Select an option", "↑/↓ to navigate"}
	fs := ReadFooter(rows)
	if fs.Signal != SignalInteractiveMenu {
		t.Errorf("signal = %v, want interactive_menu", fs.Signal)
	}
}

func TestFindFooterStartSkipsRuleAndPrompt(t *testing.T) {
	rows := []string{
		"⏺ The answer is 42.",
		"",
		"──────────",
		"❯",
		"? for shortcuts",
	}
	got := FindFooterStart(rows)
	if got != 1 {
		t.Errorf("footer start = %d, want 1", got)
	}
}
