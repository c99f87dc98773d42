// Package adb locates the adb executable and runs one-shot commands against
// it: captured output, a bounded timeout, and a dry-run switch.
package adb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/akoreshkov/adbhelper/internal/cli"
)

// Result of a one-shot adb invocation.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// Runner resolves the adb binary once and executes subcommands with a fixed
// argv convention: [-s serial] subcommand args...
type Runner struct {
	path    string
	timeout time.Duration
	dryRun  bool
	log     zerolog.Logger
}

func NewRunner(path string, timeout time.Duration, dryRun bool, log zerolog.Logger) (*Runner, error) {
	resolved, err := Discover(path)
	if err != nil {
		return nil, err
	}
	return &Runner{path: resolved, timeout: timeout, dryRun: dryRun, log: log}, nil
}

// Path returns the resolved adb executable path.
func (r *Runner) Path() string { return r.path }

// DryRun reports whether invocations are printed instead of executed.
func (r *Runner) DryRun() bool { return r.dryRun }

// Timeout returns the default per-command timeout.
func (r *Runner) Timeout() time.Duration { return r.timeout }

// Discover resolves the adb executable: an explicit file path, a
// platform-tools directory containing adb, or the process search path.
func Discover(explicit string) (string, error) {
	name := exeName()
	if explicit != "" {
		if info, err := os.Stat(explicit); err == nil {
			if info.IsDir() {
				candidate := filepath.Join(explicit, name)
				if _, err := os.Stat(candidate); err == nil {
					return candidate, nil
				}
				return "", cli.Launchf("adb not found in directory %s", explicit)
			}
			return explicit, nil
		}
		return "", cli.Launchf("adb not found at %s", explicit)
	}
	found, err := exec.LookPath(name)
	if err != nil {
		return "", cli.Launchf("adb not found in PATH; install Android SDK Platform Tools or pass --adb")
	}
	return found, nil
}

func exeName() string {
	if runtime.GOOS == "windows" {
		return "adb.exe"
	}
	return "adb"
}

// Argv builds the full command line for a subcommand, including the binary.
func (r *Runner) Argv(serial string, args ...string) []string {
	argv := []string{r.path}
	if serial != "" {
		argv = append(argv, "-s", serial)
	}
	return append(argv, args...)
}

// Run executes an adb subcommand with the default timeout.
func (r *Runner) Run(serial string, args ...string) (Result, error) {
	return r.RunTimeout(r.timeout, serial, args...)
}

// RunTimeout executes an adb subcommand, capturing stdout and stderr as text.
// Exceeding the timeout is an operation timeout: the spawned command is
// killed and a TimeoutError is returned.
func (r *Runner) RunTimeout(timeout time.Duration, serial string, args ...string) (Result, error) {
	argv := r.Argv(serial, args...)
	r.log.Debug().Str("cmd", strings.Join(argv, " ")).Msg("adb run")

	if r.dryRun {
		fmt.Println("[dry-run]", strings.Join(argv, " "))
		return Result{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctx.Err() == context.DeadlineExceeded {
		return res, cli.Timeoutf("command exceeded timeout %s: %s", timeout, strings.Join(argv, " "))
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Code = exitErr.ExitCode()
			return res, nil
		}
		return res, &cli.LaunchError{Msg: "spawn adb", Err: err}
	}
	return res, nil
}

// RunRaw executes an adb subcommand and returns stdout verbatim, for
// commands with binary output such as exec-out screencap.
func (r *Runner) RunRaw(timeout time.Duration, serial string, args ...string) ([]byte, Result, error) {
	argv := r.Argv(serial, args...)
	r.log.Debug().Str("cmd", strings.Join(argv, " ")).Msg("adb run raw")

	if r.dryRun {
		fmt.Println("[dry-run]", strings.Join(argv, " "))
		return nil, Result{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stderr: stderr.String()}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, res, cli.Timeoutf("command exceeded timeout %s: %s", timeout, strings.Join(argv, " "))
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Code = exitErr.ExitCode()
			return stdout.Bytes(), res, nil
		}
		return nil, res, &cli.LaunchError{Msg: "spawn adb", Err: err}
	}
	return stdout.Bytes(), res, nil
}

// Shell is shorthand for `adb shell args...` returning trimmed stdout.
func (r *Runner) Shell(serial string, args ...string) (string, error) {
	res, err := r.Run(serial, append([]string{"shell"}, args...)...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}
