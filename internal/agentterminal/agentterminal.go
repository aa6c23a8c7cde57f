// Package agentterminal is the facade described in SPEC_FULL.md §4.7: it
// tracks live sessions, routes spawn requests to the adapter registered
// for opts.Agent, multicasts each session's raw and event streams, and
// owns session cleanup on exit. Grounded in the teacher's
// ClaudeMonitorService/ParserService pattern of one coarse map mutex
// per registry (see monitor.AgentMonitor and catnip's
// ClaudeProcessRegistry for the shape this generalizes), with the
// teacher's channel-based Events()+Tail fan-out replaced by the
// internal broadcast package.
package agentterminal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"agentterm/internal/activitylog"
	"agentterm/internal/agentadapter"
	"agentterm/internal/broadcast"
	"agentterm/internal/event"
	"agentterm/internal/ptysession"
)

// ErrUnknownAgent is returned by Spawn when opts.Agent has no registered
// adapter.
var ErrUnknownAgent = errors.New("agentterminal: unknown agent")

// SpawnOptions carries everything Spawn needs: which adapter to route
// to, plus the adapter-level options it forwards unchanged.
type SpawnOptions struct {
	Agent string
	Cwd   string
	Env   []string
	agentadapter.SpawnOptions
}

// Info is a read-only snapshot of a Session's identity, returned by
// List and Get.
type Info struct {
	ID        string
	AgentKind string
	Command   string
	StartedAt time.Time
	State     ptysession.State
}

// Session is one running agent: its PTY process, its adapter-owned
// parser, and the two multicast streams subscribers observe.
type Session struct {
	id        string
	agentKind string
	command   string
	startedAt time.Time

	pty    *ptysession.Session
	parser agentadapter.Parser

	// raw drops a slow subscriber's oldest buffered chunk rather than
	// stalling the pump loop. events blocks the pump loop instead, so a
	// slow subscriber never silently loses a ready/tool-start/
	// task-complete event.
	raw    *broadcast.Broadcaster[[]byte]
	events *broadcast.Broadcaster[event.Event]

	log *activitylog.Logger
}

// Info returns a point-in-time snapshot of the session's identity.
func (s *Session) Info() Info {
	return Info{
		ID:        s.id,
		AgentKind: s.agentKind,
		Command:   s.command,
		StartedAt: s.startedAt,
		State:     s.pty.State(),
	}
}

// Raw subscribes to this session's raw byte stream.
func (s *Session) Raw(buffer int) (<-chan []byte, func()) { return s.raw.Subscribe(buffer) }

// Events subscribes to this session's parsed event stream.
func (s *Session) Events(buffer int) (<-chan event.Event, func()) { return s.events.Subscribe(buffer) }

// Write sends raw bytes to the session's PTY, for a caller driving it
// interactively (e.g. a terminal attach loop).
func (s *Session) Write(p []byte) error { return s.pty.Write(p) }

// Resize changes the session's PTY dimensions.
func (s *Session) Resize(cols, rows int) error { return s.pty.Resize(cols, rows) }

// Terminal is the facade: a registry of live sessions plus the adapter
// table used to route Spawn requests.
type Terminal struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	adapters map[string]agentadapter.Adapter

	logDir     string
	logEnabled bool
}

// New returns an empty Terminal with the given adapters registered
// under their AgentKind(). logDir/logEnabled configure each session's
// activity logger; pass logEnabled=false to disable logging entirely.
func New(adapters []agentadapter.Adapter, logDir string, logEnabled bool) *Terminal {
	t := &Terminal{
		sessions:   make(map[string]*Session),
		adapters:   make(map[string]agentadapter.Adapter),
		logDir:     logDir,
		logEnabled: logEnabled,
	}
	for _, a := range adapters {
		t.adapters[a.AgentKind()] = a
	}
	return t
}

// Spawn starts a new session for opts.Agent and begins pumping its PTY
// output through the adapter's parser. It returns as soon as the child
// is launched; ready/task-complete and all other events arrive on the
// returned Session's Events stream.
func (t *Terminal) Spawn(opts SpawnOptions) (*Session, error) {
	t.mu.RLock()
	adapter, ok := t.adapters[opts.Agent]
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, opts.Agent)
	}

	cols, rows := opts.Cols, opts.Rows
	if cols == 0 {
		cols = 80
	}
	if rows == 0 {
		rows = 30
	}

	argv := adapter.BuildArgs(opts.SpawnOptions)
	env := adapter.BuildEnv(opts.SpawnOptions)
	if len(opts.Env) > 0 {
		env = append(append([]string{}, opts.Env...), env...)
	}
	if len(env) > 0 {
		// ptysession.Start replaces the child's environment with a
		// non-nil env, so layer the extras over the inherited one.
		env = append(os.Environ(), env...)
	}

	ptyOpts := ptysession.DefaultOptions()
	proc, err := ptysession.Start(adapter.Command(), argv, opts.Cwd, env, cols, rows, ptyOpts)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := activitylog.Nop()
	if t.logEnabled {
		logger = activitylog.New(true, filepath.Join(t.logDir, id+".jsonl"), adapter.AgentKind(), id)
	}
	logger.SessionSpawn(adapter.Command(), argv)

	sess := &Session{
		id:        id,
		agentKind: adapter.AgentKind(),
		command:   adapter.Command(),
		startedAt: time.Now(),
		pty:       proc,
		parser:    adapter.NewParser(),
		raw:       broadcast.New[[]byte](),
		events:    broadcast.NewBlocking[event.Event](),
		log:       logger,
	}

	t.mu.Lock()
	t.sessions[id] = sess
	t.mu.Unlock()

	go t.pump(sess, adapter, opts)
	return sess, nil
}

// pump drains the PTY's raw stream into the parser, multicasting both
// the raw bytes and the resulting events, and handles the one place
// the facade acts on a semantic event: typing an interactive prompt
// once the adapter reports ready.
func (t *Terminal) pump(sess *Session, adapter agentadapter.Adapter, opts SpawnOptions) {
	promptPending := adapter.InteractivePrompt() && opts.Prompt != ""

	stopTick := make(chan struct{})
	go t.tickIdle(sess, stopTick)

	defer func() {
		close(stopTick)
		for _, ev := range sess.parser.Flush() {
			sess.events.Publish(ev)
		}
		sess.raw.Close()
		sess.events.Close()

		t.mu.Lock()
		delete(t.sessions, sess.id)
		t.mu.Unlock()
	}()

	for chunk := range sess.pty.Raw() {
		sess.raw.Publish(chunk)
		events := sess.parser.Feed(chunk)
		for _, ev := range events {
			sess.events.Publish(ev)
			if promptPending && ev.Kind == event.Ready {
				promptPending = false
				_ = sess.pty.Write([]byte(opts.Prompt + "\r"))
			}
		}
	}

	rec := <-sess.pty.Exit()
	sess.log.Exit(derefOrZero(rec.Code), rec.Signal)
}

// tickIdle drives the TUI parser's silence-based idle escape hatch
// (spec §4.6: a turn can end with a quiescent re-render and no further
// bytes arriving). Stream adapters' Tick is a no-op, so this costs them
// nothing. Grounded in the teacher overlay's TickStatus ticker-plus-
// stop-channel loop.
func (t *Terminal) tickIdle(sess *Session, stop <-chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			for _, ev := range sess.parser.Tick() {
				sess.events.Publish(ev)
			}
		case <-stop:
			return
		}
	}
}

func derefOrZero(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

// Send writes text to the named session's PTY. A no-op for an unknown
// id.
func (t *Terminal) Send(id string, text string) error {
	sess := t.lookup(id)
	if sess == nil {
		return nil
	}
	return sess.pty.Write([]byte(text))
}

// Interrupt sends Ctrl-C to the named session. A no-op for an unknown
// id.
func (t *Terminal) Interrupt(id string) error {
	sess := t.lookup(id)
	if sess == nil {
		return nil
	}
	return sess.pty.Write([]byte{0x03})
}

// Kill terminates the named session (SIGTERM, escalating to SIGKILL).
// A no-op for an unknown id.
func (t *Terminal) Kill(id string) error {
	sess := t.lookup(id)
	if sess == nil {
		return nil
	}
	sess.log.Kill("SIGTERM")
	return sess.pty.Kill(nil)
}

// KillAll terminates every live session.
func (t *Terminal) KillAll() {
	t.mu.RLock()
	sessions := make([]*Session, 0, len(t.sessions))
	for _, s := range t.sessions {
		sessions = append(sessions, s)
	}
	t.mu.RUnlock()

	for _, s := range sessions {
		s.log.Kill("SIGTERM")
		_ = s.pty.Kill(nil)
	}
}

// List returns a snapshot of every live session's Info.
func (t *Terminal) List() []Info {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Info, 0, len(t.sessions))
	for _, s := range t.sessions {
		out = append(out, s.Info())
	}
	return out
}

// Get returns the live Session for id, or nil if there is none.
func (t *Terminal) Get(id string) *Session {
	return t.lookup(id)
}

func (t *Terminal) lookup(id string) *Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sessions[id]
}
