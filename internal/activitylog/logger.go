// Package activitylog writes one JSON line per notable lifecycle event of
// an agent terminal session: spawn, adapter state transitions, parse
// failures, and kill. It exists so an operator can reconstruct what a
// session did after the fact without re-running it.
package activitylog

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Logger appends JSON lines to a file. A disabled Logger is a no-op.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	enabled   bool
	agentKind string
	sessionID string
}

// New opens (creating if necessary) the log file at path and returns a
// Logger that tags every line with agentKind and sessionID. If enabled is
// false, no file is opened and every method is a no-op.
func New(enabled bool, path string, agentKind string, sessionID string) *Logger {
	l := &Logger{enabled: enabled, agentKind: agentKind, sessionID: sessionID}
	if !enabled {
		return l
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		// A logger that can't open its file degrades to disabled rather
		// than failing session spawn.
		l.enabled = false
		return l
	}
	l.file = f
	return l
}

// Nop returns a Logger that discards everything and never touches disk.
func Nop() *Logger {
	return &Logger{enabled: false}
}

// SessionSpawn records that a session started.
func (l *Logger) SessionSpawn(command string, argv []string) {
	l.write(map[string]any{
		"event":   "session_spawn",
		"command": command,
		"argv":    argv,
	})
}

// StateChange records a parser state transition.
func (l *Logger) StateChange(from, to string) {
	l.write(map[string]any{
		"event": "state_change",
		"from":  from,
		"to":    to,
	})
}

// ParseFailure records a non-fatal parse anomaly (malformed JSON line,
// malformed UTF-8, unrecognised event kind).
func (l *Logger) ParseFailure(reason string, detail string) {
	entry := map[string]any{
		"event":  "parse_failure",
		"reason": reason,
	}
	if detail != "" {
		entry["detail"] = detail
	}
	l.write(entry)
}

// Kill records that a session was killed, and with which signal.
func (l *Logger) Kill(signal string) {
	l.write(map[string]any{
		"event":  "kill",
		"signal": signal,
	})
}

// Exit records the PTY's exit record.
func (l *Logger) Exit(code int, signal string) {
	entry := map[string]any{
		"event": "exit",
		"code":  code,
	}
	if signal != "" {
		entry["signal"] = signal
	}
	l.write(entry)
}

func (l *Logger) write(fields map[string]any) {
	if !l.enabled {
		return
	}
	fields["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	fields["actor"] = l.agentKind
	fields["session_id"] = l.sessionID

	l.mu.Lock()
	defer l.mu.Unlock()
	data, err := json.Marshal(fields)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = l.file.Write(data)
}

// Close closes the underlying file, if one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
