// Package screenreader implements the pure, stateless functions that
// turn a rendered screen ([]string of row text) into footer
// classification and content-block/event extraction. None of these
// functions touch the emulator or hold state across calls — all state
// (seen_block_keys, parser phase) lives in the TUI parser that calls
// them.
package screenreader

import (
	"regexp"
	"strings"
)

// Signal is the closed set of footer classifications.
type Signal string

const (
	SignalUnknown         Signal = "unknown"
	SignalIdle            Signal = "idle"
	SignalProcessing      Signal = "processing"
	SignalPermission      Signal = "permission"
	SignalInteractiveMenu Signal = "interactive_menu"
)

// FooterState is the result of reading a screen's footer region.
type FooterState struct {
	Signal    Signal
	HasPrompt bool
}

var (
	promptGlyph = "❯"

	interactiveMenuRegex = regexp.MustCompile(`(?i)(↑/↓ to navigate|select an option|\(plan mode\)|esc to go back)`)
	permissionRegex      = regexp.MustCompile(`(?i)(allow [a-z0-9_]+\?|do you want to (allow|create|run|execute|proceed))`)
	processingRegex      = regexp.MustCompile(`(?i)(esc to interrupt|working…|thinking…)`)
	idleRegex            = regexp.MustCompile(`(?i)(\? for shortcuts|\? for help)`)

	ruleLineRegex  = regexp.MustCompile(`^─+$`)
	tokenCountRegex = regexp.MustCompile(`(?i)\d+(\.\d+)?[km]?\s*tokens`)
)

// ReadFooter classifies the footer using the full screen (the TUI does
// not always keep the footer pinned to the last rows), trying signals
// in priority order: interactive menu, permission, processing, idle.
func ReadFooter(rows []string) FooterState {
	joined := strings.Join(rows, "\n")

	fs := FooterState{Signal: SignalUnknown}
	switch {
	case interactiveMenuRegex.MatchString(joined):
		fs.Signal = SignalInteractiveMenu
	case permissionRegex.MatchString(joined):
		fs.Signal = SignalPermission
	case processingRegex.MatchString(joined):
		fs.Signal = SignalProcessing
	case idleRegex.MatchString(joined):
		fs.Signal = SignalIdle
	}
	fs.HasPrompt = strings.Contains(joined, promptGlyph)
	return fs
}

// isFooterRow reports whether row belongs to the footer band: a
// footer-phrase match, a horizontal rule, a token-count readout, or the
// prompt line itself.
func isFooterRow(row string) bool {
	if ruleLineRegex.MatchString(strings.TrimSpace(row)) {
		return true
	}
	if strings.Contains(row, promptGlyph) {
		return true
	}
	if interactiveMenuRegex.MatchString(row) || permissionRegex.MatchString(row) ||
		processingRegex.MatchString(row) || idleRegex.MatchString(row) {
		return true
	}
	if tokenCountRegex.MatchString(row) {
		return true
	}
	return false
}

// FindFooterStart scans bottom-up classifying rows into the footer
// band (blank rows between or below footer rows are skipped); it returns
// the index one past the first non-empty, non-footer row above that band.
func FindFooterStart(rows []string) int {
	i := len(rows) - 1
	for i >= 0 && (isFooterRow(rows[i]) || strings.TrimSpace(rows[i]) == "") {
		i--
	}
	for i >= 0 && strings.TrimSpace(rows[i]) == "" {
		i--
	}
	return i + 1
}
