// Package capture owns the lifecycle of a long-running child process whose
// stdout is streamed to a sink: start, timed or manual cancellation, and a
// wait that only returns once the process has actually exited and the sink
// is flushed.
package capture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog"

	"github.com/akoreshkov/adbhelper/internal/cli"
)

// killGrace is how long a cancelled process gets to exit on its own after
// the graceful interrupt before it is forcefully killed.
const killGrace = 5 * time.Second

// Session wraps exactly one child process and one output sink. The sink is
// owned by the session from Start on: it is closed (when it is a Closer)
// before Wait returns.
type Session struct {
	ID      string
	Started time.Time

	cmd    *exec.Cmd
	sink   io.Writer
	stderr bytes.Buffer
	log    zerolog.Logger

	copyDone chan struct{}
	copyErr  error
	exited   chan struct{}

	cancelOnce sync.Once
	cancelT    *time.Timer
	killT      *time.Timer
	killMu     sync.Mutex

	usage *usageMonitor
}

// Start spawns the child process and begins streaming its stdout to sink.
// A spawn failure is a LaunchError; nothing is written to the sink in that
// case.
func Start(binary string, args []string, sink io.Writer, log zerolog.Logger) (*Session, error) {
	s := &Session{
		ID:       shortuuid.New(),
		sink:     sink,
		copyDone: make(chan struct{}),
		exited:   make(chan struct{}),
	}
	s.log = log.With().Str("session", s.ID).Logger()

	s.cmd = exec.Command(binary, args...)
	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return nil, &cli.LaunchError{Msg: "pipe stdout", Err: err}
	}
	s.cmd.Stderr = &s.stderr

	if err := s.cmd.Start(); err != nil {
		return nil, &cli.LaunchError{Msg: fmt.Sprintf("spawn %s", binary), Err: err}
	}
	s.Started = time.Now()
	s.log.Debug().Int("pid", s.cmd.Process.Pid).Str("cmd", binary+" "+strings.Join(args, " ")).Msg("capture started")

	s.usage = newUsageMonitor(s.cmd.Process.Pid, s.exited)

	go func() {
		_, s.copyErr = io.Copy(s.sink, stdout)
		close(s.copyDone)
	}()

	return s, nil
}

// CancelAfter arms a fire-once timer that cancels the session when the
// duration elapses. It never blocks the caller and shares the cancellation
// latch with Cancel, so at most one signal is ever delivered.
func (s *Session) CancelAfter(d time.Duration) {
	s.cancelT = time.AfterFunc(d, s.Cancel)
}

// Cancel delivers the graceful cancellation signal exactly once. Calling it
// again, or after the process has already exited, is a no-op.
func (s *Session) Cancel() {
	s.cancelOnce.Do(func() {
		s.log.Debug().Msg("cancelling capture")
		if err := interrupt(s.cmd.Process); err != nil {
			// already gone, or the platform refused the signal
			if !errors.Is(err, os.ErrProcessDone) {
				s.cmd.Process.Kill()
			}
			return
		}
		s.killMu.Lock()
		s.killT = time.AfterFunc(killGrace, func() {
			s.cmd.Process.Kill()
		})
		s.killMu.Unlock()
	})
}

// Wait blocks until the child has exited, then flushes and closes the sink
// and returns the exit code. A non-zero code is lenient: interrupted
// streams commonly exit non-zero, so it is logged, not returned as an
// error. The capture-duration timer firing is normal termination, never an
// error.
func (s *Session) Wait() (int, error) {
	<-s.copyDone
	werr := s.cmd.Wait()
	close(s.exited)

	if s.cancelT != nil {
		s.cancelT.Stop()
	}
	s.killMu.Lock()
	if s.killT != nil {
		s.killT.Stop()
	}
	s.killMu.Unlock()

	if cpu, rss, ok := s.usage.Last(); ok {
		s.log.Debug().Float64("cpu_pct", cpu).Uint64("rss", rss).Msg("capture process usage")
	}

	if c, ok := s.sink.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return 0, fmt.Errorf("close capture sink: %w", err)
		}
	}
	if s.copyErr != nil {
		return 0, fmt.Errorf("stream capture output: %w", s.copyErr)
	}

	code := 0
	if werr != nil {
		var exitErr *exec.ExitError
		if !errors.As(werr, &exitErr) {
			return 0, fmt.Errorf("wait for capture process: %w", werr)
		}
		code = exitErr.ExitCode()
	}
	if code != 0 {
		s.log.Warn().Int("code", code).Str("stderr", strings.TrimSpace(s.stderr.String())).
			Msg("capture process exited non-zero")
	}
	return code, nil
}

// Stderr returns whatever the child wrote to its stderr so far.
func (s *Session) Stderr() string { return s.stderr.String() }
