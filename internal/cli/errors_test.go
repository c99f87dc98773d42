package cli

import (
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"launch", Launchf("adb not found"), ExitNoADB},
		{"selection", Selectionf("no devices"), ExitSelection},
		{"argument", Argumentf("--package is required"), ExitBadArgs},
		{"timeout", Timeoutf("command exceeded 30s"), ExitTimeout},
		{"generic", fmt.Errorf("boom"), ExitFailure},
		{"wrapped launch", fmt.Errorf("run: %w", Launchf("adb not found")), ExitNoADB},
		{"wrapped timeout", fmt.Errorf("screenshot: %w", Timeoutf("timed out")), ExitTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestLaunchErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := &LaunchError{Msg: "spawn adb", Err: inner}
	if err.Unwrap() != inner {
		t.Error("Unwrap should return the inner error")
	}
	if err.Error() != "spawn adb: permission denied" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
