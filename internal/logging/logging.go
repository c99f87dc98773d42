// Package logging sets up the diagnostic log: a zerolog logger writing to the
// console and to a size-rotated file. The logger is owned by the invocation
// that created it, not by a process-wide global.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const (
	logFile     = "adbhelper.log"
	maxLogBytes = 1_000_000
	backupCount = 5
)

// Log wraps the configured logger together with its file handle so the
// caller can tear it down explicitly at program end.
type Log struct {
	zerolog.Logger

	file *rotatingFile
}

// Setup builds the logger. Verbose lowers the threshold to debug, quiet
// raises it to warn; the two are mutually exclusive at the flag level.
func Setup(verbose, quiet bool) *Log {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.WarnLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}}

	l := &Log{}
	if rf, err := openRotatingFile(logFile, maxLogBytes, backupCount); err == nil {
		l.file = rf
		writers = append(writers, rf)
	}

	l.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return l
}

// Close flushes and closes the file sink. Safe to call on a console-only log.
func (l *Log) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

// rotatingFile is a size-rotated log file: when the current file would exceed
// maxBytes, it is renamed to <name>.1 (shifting older backups up to
// backupCount) and a fresh file is opened.
type rotatingFile struct {
	mu      sync.Mutex
	path    string
	max     int64
	backups int
	f       *os.File
	size    int64
}

func openRotatingFile(path string, max int64, backups int) (*rotatingFile, error) {
	rf := &rotatingFile{path: path, max: max, backups: backups}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *rotatingFile) open() error {
	f, err := os.OpenFile(rf.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	rf.f = f
	rf.size = info.Size()
	return nil
}

func (rf *rotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.max > 0 && rf.size+int64(len(p)) > rf.max {
		if err := rf.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := rf.f.Write(p)
	rf.size += int64(n)
	return n, err
}

func (rf *rotatingFile) rotate() error {
	rf.f.Close()

	for i := rf.backups - 1; i >= 1; i-- {
		os.Rename(backupName(rf.path, i), backupName(rf.path, i+1))
	}
	os.Rename(rf.path, backupName(rf.path, 1))

	return rf.open()
}

func (rf *rotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.f != nil {
		return rf.f.Close()
	}
	return nil
}

func backupName(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}
