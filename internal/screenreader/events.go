package screenreader

import (
	"regexp"
	"strings"

	"agentterm/internal/event"
)

// toolNames is the closed set of builtin tool names the tool-call
// pattern recognises directly (vs. the verb-form pattern below).
var toolNames = []string{
	"Bash", "Read", "Write", "Edit", "MultiEdit", "Grep", "Glob",
	"WebFetch", "WebSearch", "Task", "TodoWrite", "NotebookEdit",
}

var (
	toolCallRegex      = regexp.MustCompile(`^(` + strings.Join(toolNames, "|") + `)\((.*)\)$`)
	verbFormRegex      = regexp.MustCompile(`^(Reading|Editing|Writing|Running|Searching) (.+)$`)
	completedVerbRegex = regexp.MustCompile(`^(Read|Wrote|Edited|Ran|Searched|Fetched)\b.*`)
	expansionHintRegex = regexp.MustCompile(`\(ctrl\+o`)
	thinkingRegex      = regexp.MustCompile(`(?i)(thinking|thought|churning)[^0-9]*(\d+)s`)
	permissionTextRegex = regexp.MustCompile(`(?i)(Allow ([A-Za-z0-9_]+)\?|Do you want to (allow|create|run|execute|proceed))`)

	treeFragmentRegex  = regexp.MustCompile(`[├└│]`)
	runningAgentsRegex = regexp.MustCompile(`(?i)\s*(Running|Ran) \d+ agents?.*$`)
	finishedAgentsRegex = regexp.MustCompile(`(?i)\s*\d+ agents? finished \([^)]*\)\s*$`)
	ctrlBBackgroundRegex = regexp.MustCompile(`(?i)\s*ctrl\+b to run in background\s*$`)
)

// NormalizeBlockText cleans block text before it is used as a
// dedup key or turned into an event. Returns ok=false if the block
// should be discarded entirely.
func NormalizeBlockText(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	if idx := strings.IndexAny(text, "├└│"); idx == 0 {
		// A pure tree line (tree char at position 0) carries no content.
		return "", false
	}

	t := text
	if loc := treeFragmentRegex.FindStringIndex(t); loc != nil {
		t = strings.TrimRight(t[:loc[0]], " ")
	}
	t = runningAgentsRegex.ReplaceAllString(t, "")
	t = finishedAgentsRegex.ReplaceAllString(t, "")
	t = ctrlBBackgroundRegex.ReplaceAllString(t, "")
	t = strings.TrimSpace(t)

	if t == "" {
		return "", false
	}
	return t, true
}

// BlockToEvent maps a normalized block to an AgentEvent, or nil if the
// block carries no event (e.g. a tip line).
func BlockToEvent(marker, text string) *event.Event {
	if marker == MarkerSub {
		if completedVerbRegex.MatchString(text) {
			ev := event.NewToolEnd("unknown", text)
			return &ev
		}
		ev := event.NewMessage(text)
		return &ev
	}

	if m := toolCallRegex.FindStringSubmatch(text); m != nil {
		arg := strings.Trim(m[2], `"`)
		ev := event.NewToolStart(m[1], arg)
		return &ev
	}
	if m := verbFormRegex.FindStringSubmatch(text); m != nil {
		ev := event.NewToolStart(m[1], m[2])
		return &ev
	}
	if completedVerbRegex.MatchString(text) && expansionHintRegex.MatchString(text) {
		ev := event.NewToolEnd("unknown", text)
		return &ev
	}
	if m := thinkingRegex.FindStringSubmatch(text); m != nil {
		ev := event.NewThinking("Thinking for " + m[2] + "s")
		return &ev
	}
	if m := permissionTextRegex.FindStringSubmatch(text); m != nil {
		tool := m[2]
		ev := event.NewPermissionRequest(tool, text)
		return &ev
	}
	if strings.HasPrefix(text, "Tip:") || strings.HasPrefix(text, "Did you know") {
		return nil
	}
	ev := event.NewMessage(text)
	return &ev
}
