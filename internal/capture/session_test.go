package capture

import (
	"bytes"
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/akoreshkov/adbhelper/internal/cli"
)

func needsSh(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test uses /bin/sh")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("needs /bin/sh")
	}
}

// closeBuffer records whether Close was called before reads.
type closeBuffer struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func (b *closeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *closeBuffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *closeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartMissingBinary(t *testing.T) {
	_, err := Start("/nonexistent/binary", nil, &bytes.Buffer{}, zerolog.Nop())
	var le *cli.LaunchError
	if !errors.As(err, &le) {
		t.Fatalf("want LaunchError, got %v", err)
	}
}

func TestWaitStreamsCompleteOutput(t *testing.T) {
	needsSh(t)
	sink := &closeBuffer{}
	s, err := Start("/bin/sh", []string{"-c", "for i in 1 2 3 4 5; do echo line$i; done"}, sink, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	code, err := s.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Errorf("code = %d", code)
	}
	if !sink.closed {
		t.Error("sink must be closed before Wait returns")
	}
	lines := strings.Fields(sink.String())
	if len(lines) != 5 || lines[0] != "line1" || lines[4] != "line5" {
		t.Errorf("incomplete capture: %q", sink.String())
	}
}

func TestCancelAfterBoundsWait(t *testing.T) {
	needsSh(t)
	sink := &closeBuffer{}
	s, err := Start("/bin/sh", []string{"-c", "sleep 30"}, sink, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	s.CancelAfter(100 * time.Millisecond)

	start := time.Now()
	_, err = s.Wait()
	if err != nil {
		t.Fatalf("duration expiry must not be an error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > killGrace+2*time.Second {
		t.Errorf("Wait took %s, expected prompt exit after cancellation", elapsed)
	}
	if !sink.closed {
		t.Error("sink must be closed before Wait returns")
	}
}

func TestCancelIdempotent(t *testing.T) {
	needsSh(t)
	s, err := Start("/bin/sh", []string{"-c", "sleep 30"}, &closeBuffer{}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	s.Cancel()
	s.Cancel()
	if _, err := s.Wait(); err != nil {
		t.Fatalf("double cancel: %v", err)
	}
	// after natural exit, a further cancel is still a no-op
	s.Cancel()
}

func TestCancelAfterNaturalExit(t *testing.T) {
	needsSh(t)
	s, err := Start("/bin/sh", []string{"-c", "true"}, &closeBuffer{}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	code, err := s.Wait()
	if err != nil || code != 0 {
		t.Fatalf("code=%d err=%v", code, err)
	}
	s.Cancel()
}

func TestNonZeroExitIsSoftFailure(t *testing.T) {
	needsSh(t)
	s, err := Start("/bin/sh", []string{"-c", "exit 7"}, &closeBuffer{}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	code, err := s.Wait()
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if code != 7 {
		t.Errorf("code = %d, want 7", code)
	}
}

func TestTimerAndManualCancelRace(t *testing.T) {
	needsSh(t)
	s, err := Start("/bin/sh", []string{"-c", "sleep 30"}, &closeBuffer{}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	s.CancelAfter(10 * time.Millisecond)
	go s.Cancel()
	if _, err := s.Wait(); err != nil {
		t.Fatalf("racing cancellations: %v", err)
	}
}
