// Package outputmodes implements the optional stream transformer from
// SPEC_FULL.md §4.8: it turns an agent's event stream into a plain
// string stream suitable for a chat-style consumer, collapsing the
// noisy tool/thinking churn of a turn into only its substantive text.
// Grounded in the teacher's overlay rendering loop's notion of
// "what's worth putting on screen" but restated as a pure function over
// events rather than a terminal-painting side effect.
package outputmodes

import (
	"regexp"
	"strings"

	"agentterm/internal/ansiutil"
	"agentterm/internal/event"
	"agentterm/internal/screenreader"
)

// AnswerStream is the create_answer_stream state machine. A live caller
// calls Feed once per event as they arrive; Run is the batch form, for
// tests and offline replay, that returns every emitted string in order.
type AnswerStream struct {
	processing bool
}

// NewAnswerStream returns a fresh transformer.
func NewAnswerStream() *AnswerStream { return &AnswerStream{} }

// Feed advances the state machine by one event and returns zero or one
// strings to emit.
func (a *AnswerStream) Feed(ev event.Event) []string {
	switch ev.Kind {
	case event.Ready, event.TaskComplete:
		a.processing = false
		return nil

	case event.ToolStart, event.Thinking:
		a.processing = true
		return nil

	case event.Message:
		a.processing = true
		if data, ok := ev.Data.(event.MessageData); ok {
			return []string{data.Text}
		}
		return nil

	case event.Output:
		data, ok := ev.Data.(event.OutputData)
		if !ok {
			return nil
		}
		clean := stripChrome(data.Text)
		if a.processing {
			if clean != "" {
				return []string{clean}
			}
			return nil
		}
		if clean != "" {
			a.processing = true
			return []string{clean}
		}
		return nil

	default:
		return nil
	}
}

// Run feeds every event in events and returns the full emitted
// sequence.
func Run(events []event.Event) []string {
	a := NewAnswerStream()
	var out []string
	for _, ev := range events {
		out = append(out, a.Feed(ev)...)
	}
	return out
}

var spinnerLineRegex = regexp.MustCompile(`^[\s⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏]*$`)

// stripChrome normalizes ANSI, keeps only content-marker lines, and
// drops pure spinner/status noise, returning the joined remainder.
// Grounded in the teacher's CapturePlainHistory byte-level ANSI
// handling (shared via internal/ansiutil) plus the content markers the
// screen reader already recognizes.
func stripChrome(text string) string {
	plain := ansiutil.Strip(text)
	lines := strings.Split(plain, "\n")

	var kept []string
	for _, line := range lines {
		trimmed := ansiutil.TrimTrailingSpace(line)
		stripped := strings.TrimLeft(trimmed, " ")
		hasMarker := strings.HasPrefix(stripped, screenreader.PrimaryGlyph) || strings.HasPrefix(stripped, screenreader.SubGlyph)
		if !hasMarker {
			continue
		}
		rest := strings.TrimPrefix(strings.TrimPrefix(stripped, screenreader.PrimaryGlyph), screenreader.SubGlyph)
		if spinnerLineRegex.MatchString(rest) {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}
