// Package jsonlines implements a generic newline-delimited JSON splitter
// with partial-chunk buffering and a non-JSON passthrough hook. Every
// stream adapter (Claude and Codex JSON-stream) is built on top of one
// Parser instance. Grounded in the teacher's eventstore.Tail incremental-
// line-reading loop and catnip's SessionFileReader incremental read
// pattern, adapted from "tail a file" to "feed PTY chunks".
package jsonlines

import (
	"encoding/json"
	"strings"
)

// Parser is generic over the per-line JSON shape L it unmarshals into
// and the event type T its MapLine/NonJSON callbacks produce.
type Parser[L any, T any] struct {
	buffer string

	// MapLine converts one successfully-parsed line into zero or more
	// output items, in order.
	MapLine func(L) []T

	// NonJSON, if set, is called with the raw (trimmed) line when it
	// fails to parse as JSON. If nil, unparsable lines are dropped.
	NonJSON func(line string) []T
}

// New constructs a Parser with the given line mapper and optional
// non-JSON handler.
func New[L any, T any](mapLine func(L) []T, nonJSON func(string) []T) *Parser[L, T] {
	return &Parser[L, T]{MapLine: mapLine, NonJSON: nonJSON}
}

// Feed appends chunk to the internal buffer, splits on newline, and
// processes every completed line. The trailing partial line (if any) is
// retained for the next Feed call. Returns the collected items in
// input order.
//
// Invariant: for any split c = a + b, Feed(a) followed by Feed(b)
// yields the same items (in concatenation) as Feed(c), measured in
// completed lines.
func (p *Parser[L, T]) Feed(chunk []byte) []T {
	p.buffer += string(chunk)
	return p.drainCompletedLines()
}

// Flush drains a terminal non-empty buffer by re-feeding with an
// appended newline, forcing any trailing partial line to be treated as
// complete.
func (p *Parser[L, T]) Flush() []T {
	if strings.TrimSpace(p.buffer) == "" {
		p.buffer = ""
		return nil
	}
	p.buffer += "\n"
	return p.drainCompletedLines()
}

func (p *Parser[L, T]) drainCompletedLines() []T {
	var out []T
	for {
		idx := strings.IndexByte(p.buffer, '\n')
		if idx < 0 {
			break
		}
		line := p.buffer[:idx]
		p.buffer = p.buffer[idx+1:]

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		var parsed L
		if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
			if p.NonJSON != nil {
				out = append(out, p.NonJSON(trimmed)...)
			}
			continue
		}
		out = append(out, p.MapLine(parsed)...)
	}
	return out
}
