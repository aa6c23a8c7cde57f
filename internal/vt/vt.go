// Package vt is the Virtual Terminal: it feeds raw PTY bytes into a
// headless terminal emulator and exposes a stable rendered screen plus
// scrollback. Adapted from the teacher's virtualterminal.VT, with the
// PTY-process half of that type removed (ptysession now owns that) and
// only the midterm.Terminal wrapping and scroll capture kept.
package vt

import (
	"sync"

	"github.com/vito/midterm"

	"agentterm/internal/ansiutil"
)

// Terminal owns one midterm.Terminal instance plus an append-only
// scrollback buffer fed by midterm's OnScrollback callback.
type Terminal struct {
	mu sync.Mutex

	vt   *midterm.Terminal
	cols int
	rows int

	scrollback    []string
	scrollbackMax int
}

// New creates a Terminal with the given viewport size and scrollback
// capacity. scrollbackMax should be at least config.MinScrollbackRows.
func New(cols, rows, scrollbackMax int) *Terminal {
	t := &Terminal{
		cols:          cols,
		rows:          rows,
		scrollbackMax: scrollbackMax,
	}
	t.vt = midterm.NewTerminal(rows, cols)
	t.vt.OnScrollback(func(line midterm.Line) {
		t.appendScrollback(line)
	})
	return t
}

// appendScrollback is midterm's OnScrollback callback. midterm invokes
// it from inside Write/Resize, which already hold t.mu, so it must not
// lock again.
func (t *Terminal) appendScrollback(line midterm.Line) {
	plain := ansiutil.TrimTrailingSpace(ansiutil.Strip(line.Display()))
	t.scrollback = append(t.scrollback, plain)
	if len(t.scrollback) > t.scrollbackMax {
		trim := len(t.scrollback) - t.scrollbackMax
		t.scrollback = t.scrollback[trim:]
	}
}

// Write feeds bytes to the emulator. midterm processes synchronously, so
// Write has returned only once those bytes are fully reflected in
// GetScreen/GetFullBuffer — no partial state is visible to readers.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.vt.Write(p)
}

// Resize changes the viewport dimensions atomically.
func (t *Terminal) Resize(cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cols, t.rows = cols, rows
	t.vt.Resize(rows, cols)
}

// Cols and Rows report the current viewport dimensions.
func (t *Terminal) Cols() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cols
}

func (t *Terminal) Rows() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows
}

// GetScreen returns exactly Rows() strings, trailing spaces trimmed,
// reflecting the active viewport.
func (t *Terminal) GetScreen() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, t.rows)
	for i := 0; i < t.rows; i++ {
		out[i] = t.renderRowLocked(i)
	}
	return out
}

// GetFullBuffer returns baseY+rows strings: scrollback history followed
// by the current viewport.
func (t *Terminal) GetFullBuffer() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.scrollback)+t.rows)
	out = append(out, t.scrollback...)
	for i := 0; i < t.rows; i++ {
		out = append(out, t.renderRowLocked(i))
	}
	return out
}

func (t *Terminal) renderRowLocked(row int) string {
	if row < 0 || row >= len(t.vt.Content) {
		return ""
	}
	return ansiutil.TrimTrailingSpace(string(t.vt.Content[row]))
}

// IsWrapped reports whether the row at abs_row (an index into
// GetFullBuffer's slice) is a soft-wrapped continuation of the row
// above it. midterm does not expose a wrap bit on scrolled-off lines,
// so this uses the same signal real terminals rely on for reflow: when
// the row above fills the full column width with no trailing blank, it
// is presumed to have wrapped into this row rather than ended with a
// natural break.
func (t *Terminal) IsWrapped(absRow int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	var text string
	prev := absRow - 1
	if prev < 0 {
		return false
	}
	if prev < len(t.scrollback) {
		text = t.scrollback[prev]
	} else {
		text = t.renderRowLocked(prev - len(t.scrollback))
	}
	return len([]rune(text)) >= t.cols
}

// BaseY is the number of scrollback rows preceding the live viewport in
// GetFullBuffer's index space.
func (t *Terminal) BaseY() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.scrollback)
}
