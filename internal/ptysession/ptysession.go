// Package ptysession owns a single child process bound to a pseudo-
// terminal: it exposes the raw byte stream, an exit record, and
// write/resize/kill controls. It knows nothing about terminal emulation
// or agent semantics — that is the Virtual Terminal's and the adapters'
// job. Grounded in the teacher's virtualterminal.VT.StartPTY/PipeOutput/
// KillChild/WritePTY, split out of that type's terminal-emulation half.
package ptysession

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
)

// State is the last-value-wins lifecycle state of a Session.
type State int

const (
	Running State = iota
	Exited
)

func (s State) String() string {
	if s == Exited {
		return "exited"
	}
	return "running"
}

// ExitRecord is delivered exactly once on a Session's exit channel.
type ExitRecord struct {
	Code   *int
	Signal string
}

// SpawnError is returned by Start when the child cannot be launched.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Command, e.Err)
}
func (e *SpawnError) Unwrap() error { return e.Err }

// debuggerBanners is the fixed substring set that, when a chunk consists
// of nothing else, marks it as development-environment noise.
var debuggerBanners = []string{
	"Debugger listening on",
	"docs/inspector",
	"Debugger attached",
	"Waiting for the debugger to disconnect",
}

// Options configures Start.
type Options struct {
	// FilterDebuggerBanners drops chunks that are entirely one of the
	// fixed debugger-attach banners. Defaults to true; this is a
	// development-environment concession and must stay togglable.
	FilterDebuggerBanners bool

	// RawBufferSize bounds the raw channel. The raw stream favors
	// drop-oldest over back-pressuring the reader, since it is a
	// best-effort passthrough consumed mainly for debugging.
	RawBufferSize int

	// KillTimeout is how long dispose/kill wait after SIGTERM before
	// escalating to SIGKILL.
	KillTimeout time.Duration
}

// DefaultOptions returns the spec's defaults: filter on, 5s kill timeout.
func DefaultOptions() Options {
	return Options{
		FilterDebuggerBanners: true,
		RawBufferSize:         256,
		KillTimeout:           5 * time.Second,
	}
}

// Session is the exclusive owner of one child process and its PTY.
type Session struct {
	ptm *os.File
	cmd *exec.Cmd
	opt Options

	rawCh  chan []byte
	exitCh chan ExitRecord
	doneCh chan struct{}

	mu       sync.Mutex
	state    State
	disposed bool
}

// Start spawns command with args under cwd and env, attached to a PTY of
// size cols x rows. env, if non-nil, replaces the child's environment
// entirely (pass os.Environ()-derived slices to inherit selectively).
func Start(command string, args []string, cwd string, env []string, cols, rows int, opt Options) (*Session, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = cwd
	if env != nil {
		cmd.Env = env
	}

	ptm, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, &SpawnError{Command: command, Err: err}
	}

	s := &Session{
		ptm:    ptm,
		cmd:    cmd,
		opt:    opt,
		rawCh:  make(chan []byte, opt.RawBufferSize),
		exitCh: make(chan ExitRecord, 1),
		doneCh: make(chan struct{}),
		state:  Running,
	}
	go s.readLoop()
	return s, nil
}

// Raw returns the ordered sequence of raw byte chunks. The channel is
// closed once the exit record has been delivered.
func (s *Session) Raw() <-chan []byte { return s.rawCh }

// Exit delivers a single ExitRecord then is never sent to again.
func (s *Session) Exit() <-chan ExitRecord { return s.exitCh }

// State reports the last-value-wins lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptm.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if !s.isFilteredBanner(chunk) {
				s.publish(chunk)
			}
		}
		if err != nil {
			s.finish()
			return
		}
	}
}

func (s *Session) isFilteredBanner(chunk []byte) bool {
	if !s.opt.FilterDebuggerBanners {
		return false
	}
	text := strings.TrimSpace(string(chunk))
	if text == "" {
		return false
	}
	for _, banner := range debuggerBanners {
		if text == banner {
			return true
		}
	}
	return false
}

func (s *Session) publish(chunk []byte) {
	select {
	case s.rawCh <- chunk:
	default:
		// Drop-oldest policy for the raw stream under a slow consumer.
		select {
		case <-s.rawCh:
		default:
		}
		select {
		case s.rawCh <- chunk:
		default:
		}
	}
}

func (s *Session) finish() {
	s.mu.Lock()
	s.state = Exited
	s.mu.Unlock()

	rec := ExitRecord{}
	if err := s.cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				rec.Signal = status.Signal().String()
			} else {
				rec.Code = &code
			}
		}
	} else {
		code := 0
		rec.Code = &code
	}

	s.exitCh <- rec
	close(s.exitCh)
	close(s.rawCh)
	close(s.doneCh)
}

// Write sends bytes to the child's stdin (the PTY master). A no-op after
// exit.
func (s *Session) Write(p []byte) error {
	if s.State() == Exited {
		return nil
	}
	_, err := s.ptm.Write(p)
	return err
}

// Resize changes the PTY dimensions. A no-op after exit.
func (s *Session) Resize(cols, rows int) error {
	if s.State() == Exited {
		return nil
	}
	return pty.Setsize(s.ptm, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// Kill sends sig (SIGTERM if nil) to the child, then escalates to
// SIGKILL if it has not exited within opt.KillTimeout. A no-op after
// exit.
func (s *Session) Kill(sig os.Signal) error {
	if s.State() == Exited {
		return nil
	}
	if sig == nil {
		sig = syscall.SIGTERM
	}
	if s.cmd.Process == nil {
		return nil
	}
	if err := s.cmd.Process.Signal(sig); err != nil {
		return err
	}

	timeout := s.opt.KillTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	go func() {
		select {
		case <-s.doneCh:
			return
		case <-time.After(timeout):
		}
		if s.State() != Exited && s.cmd.Process != nil {
			_ = s.cmd.Process.Signal(syscall.SIGKILL)
		}
	}()
	return nil
}

// Dispose idempotently kills the child if still running. Safe to call
// more than once.
func (s *Session) Dispose() error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}
	s.disposed = true
	s.mu.Unlock()
	return s.Kill(syscall.SIGTERM)
}
