// Package ansiutil provides pure ANSI-stripping helpers shared by the
// Virtual Terminal's plain scrollback capture, the screen reader, and
// output-mode chrome stripping. Adapted from the teacher's byte-level
// CapturePlainHistory state machine (virtualterminal/vt.go), simplified
// to a single stateless pass since none of our callers need the
// scroll-region/cursor-position side effects that function also tracked.
package ansiutil

import "strings"

const esc = 0x1b

const (
	stateNorm = iota
	stateEsc  // saw ESC
	stateCSI  // saw ESC [
	stateOSC  // saw ESC ]
	stateOSCEsc
)

// Strip removes ANSI CSI and OSC escape sequences from s, converting
// cursor-forward (`\x1b[NC`) into N literal spaces first so word
// boundaries survive stripping — the target TUIs use cursor-forward in
// place of literal spaces, and naive stripping would glue words
// together.
func Strip(s string) string {
	var out strings.Builder
	state := stateNorm
	var params strings.Builder

	flushCSI := func(final byte) {
		if final == 'C' {
			n := 1
			if params.Len() > 0 {
				if v, ok := atoi(params.String()); ok && v > 0 {
					n = v
				}
			}
			for i := 0; i < n; i++ {
				out.WriteByte(' ')
			}
		}
		params.Reset()
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case stateNorm:
			if c == esc {
				state = stateEsc
				continue
			}
			out.WriteByte(c)
		case stateEsc:
			switch c {
			case '[':
				state = stateCSI
			case ']':
				state = stateOSC
			default:
				// Single-character escape (e.g. ESC M) — consume and return.
				state = stateNorm
			}
		case stateCSI:
			if c >= '0' && c <= '9' || c == ';' || c == '?' {
				params.WriteByte(c)
				continue
			}
			// Any byte in 0x40-0x7e is a CSI final byte.
			flushCSI(c)
			state = stateNorm
		case stateOSC:
			if c == 0x07 { // BEL terminates OSC
				state = stateNorm
			} else if c == esc {
				state = stateOSCEsc
			}
		case stateOSCEsc:
			if c == '\\' { // ST (ESC \) terminates OSC
				state = stateNorm
			} else if c == esc {
				state = stateOSCEsc
			} else {
				state = stateOSC
			}
		}
	}
	return out.String()
}

func atoi(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// TrimTrailingSpace trims trailing ASCII spaces, matching the
// get_screen/get_full_buffer contract of trailing-space-trimmed rows.
func TrimTrailingSpace(s string) string {
	return strings.TrimRight(s, " ")
}
