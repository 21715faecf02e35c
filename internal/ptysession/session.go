// Package ptysession spawns the wrapped CLI under a pseudo-terminal and
// exposes its byte streams as channels the event loop can poll without
// blocking. The session owns the child pid, the PTY master, and the reader
// and writer goroutines; nothing else touches them.
package ptysession

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/creack/pty"
)

// readBufBytes caps one PTY read, and therefore one output chunk.
const readBufBytes = 8192

// Channel depths. The output channel is deep enough to ride out a slow
// writer tick; input is small because the kernel serializes sends anyway.
const (
	outputChanDepth = 64
	inputChanDepth  = 16
)

// closeGrace is how long Close waits between SIGTERM and SIGKILL.
const closeGrace = 200 * time.Millisecond

// Options configures a session start.
type Options struct {
	Rows, Cols int
	ExtraEnv   map[string]string

	// OscFg/OscBg are the real terminal's colors in X11 rgb: form. When
	// set, the session answers the child's OSC 10/11 color queries with
	// them, since the child cannot reach the real terminal itself.
	OscFg, OscBg string
}

// Session is a child process running under a PTY.
type Session struct {
	cmd *exec.Cmd
	ptm *os.File

	oscFg, oscBg string

	outputCh chan []byte
	inputCh  chan []byte

	stop       chan struct{}
	writerDone chan struct{}
	waitDone   chan struct{}
	waitErr    error

	closed bool
}

// Start spawns command[0] with command[1:] under a new PTY of the given
// size. The child becomes a session leader on its own controlling terminal,
// so process-group signaling reaches its descendants. ExtraEnv entries
// override the inherited environment.
func Start(command []string, opts Options) (*Session, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("spawn: empty command")
	}
	cmd := exec.Command(command[0], command[1:]...)
	if len(opts.ExtraEnv) > 0 {
		env := make([]string, 0, len(os.Environ())+len(opts.ExtraEnv))
		for _, e := range os.Environ() {
			key := e
			if idx := strings.Index(e, "="); idx >= 0 {
				key = e[:idx]
			}
			if _, override := opts.ExtraEnv[key]; !override {
				env = append(env, e)
			}
		}
		for k, v := range opts.ExtraEnv {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}

	ptm, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(opts.Rows),
		Cols: uint16(opts.Cols),
	})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", command[0], err)
	}

	s := &Session{
		cmd:        cmd,
		ptm:        ptm,
		oscFg:      opts.OscFg,
		oscBg:      opts.OscBg,
		outputCh:   make(chan []byte, outputChanDepth),
		inputCh:    make(chan []byte, inputChanDepth),
		stop:       make(chan struct{}),
		writerDone: make(chan struct{}),
		waitDone:   make(chan struct{}),
	}
	go s.readLoop()
	go s.writeLoop()
	go func() {
		s.waitErr = cmd.Wait()
		close(s.waitDone)
	}()
	return s, nil
}

// Output returns the channel of child output chunks. Chunks arrive in read
// order for the whole child lifetime and never exceed the reader buffer.
// The channel closes when the child side of the PTY goes away.
func (s *Session) Output() <-chan []byte {
	return s.outputCh
}

// TryRecvOutput is the non-blocking receive the kernel polls with. closed
// reports that the output stream has ended.
func (s *Session) TryRecvOutput() (chunk []byte, ok, closed bool) {
	select {
	case chunk, more := <-s.outputCh:
		if !more {
			return nil, false, true
		}
		return chunk, true, false
	default:
		return nil, false, false
	}
}

// SendInput queues bytes for the child's stdin. Writes are applied in send
// order. Returns false once the session is closed.
func (s *Session) SendInput(data []byte) bool {
	select {
	case <-s.writerDone:
		return false
	default:
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	select {
	case s.inputCh <- buf:
		return true
	case <-s.writerDone:
		return false
	case <-s.stop:
		return false
	}
}

// Resize propagates a new window size to the PTY master.
func (s *Session) Resize(rows, cols int) error {
	return pty.Setsize(s.ptm, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Pid returns the child process id, or -1 if it never started.
func (s *Session) Pid() int {
	if s.cmd.Process == nil {
		return -1
	}
	return s.cmd.Process.Pid
}

// Exited reports whether the child has been reaped, and its wait error.
func (s *Session) Exited() (bool, error) {
	select {
	case <-s.waitDone:
		return true, s.waitErr
	default:
		return false, nil
	}
}

// Close tears the session down: SIGTERM to the child's process group (pid
// fallback), a short grace for voluntary exit, then SIGKILL. Safe to call
// more than once. ESRCH during teardown means the child is already gone and
// counts as success.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	pid := s.Pid()
	SignalProcessGroupOrPid(pid, syscall.SIGTERM, true)

	select {
	case <-s.waitDone:
	case <-time.After(closeGrace):
		SignalProcessGroupOrPid(pid, syscall.SIGKILL, true)
		<-s.waitDone
	}

	close(s.stop)
	return s.ptm.Close()
}

// readLoop moves PTY output onto the output channel, preserving order and
// chunk boundaries. On read failure (child exited, fd closed) the channel
// closes, which downstream treats as end-of-session.
func (s *Session) readLoop() {
	defer close(s.outputCh)
	for {
		buf := make([]byte, readBufBytes)
		n, err := s.ptm.Read(buf)
		if n > 0 {
			s.respondOSCColors(buf[:n])
			s.outputCh <- buf[:n]
		}
		if err != nil {
			return
		}
	}
}

// respondOSCColors answers OSC 10/11 color queries from the child with the
// real terminal's colors.
func (s *Session) respondOSCColors(data []byte) {
	if s.oscFg != "" && bytes.Contains(data, []byte("\x1b]10;?")) {
		fmt.Fprintf(s.ptm, "\x1b]10;%s\x1b\\", s.oscFg)
	}
	if s.oscBg != "" && bytes.Contains(data, []byte("\x1b]11;?")) {
		fmt.Fprintf(s.ptm, "\x1b]11;%s\x1b\\", s.oscBg)
	}
}

// writeLoop drains queued input into the PTY master. A single writer keeps
// input writes ordered relative to each other.
func (s *Session) writeLoop() {
	defer close(s.writerDone)
	for {
		select {
		case data := <-s.inputCh:
			if _, err := s.ptm.Write(data); err != nil {
				return
			}
		case <-s.stop:
			return
		}
	}
}
