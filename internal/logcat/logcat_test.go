package logcat

import (
	"strings"
	"testing"
	"time"
)

func TestParseSinceRelative(t *testing.T) {
	now := time.Date(2025, 9, 4, 12, 0, 0, 0, time.Local)
	tests := []struct {
		in, want string
	}{
		{"5m", "2025-09-04 11:55:00.000"},
		{"2h", "2025-09-04 10:00:00.000"},
		{"30s", "2025-09-04 11:59:30.000"},
		{"1d", "2025-09-03 12:00:00.000"},
	}
	for _, tt := range tests {
		if got := ParseSince(tt.in, now); got != tt.want {
			t.Errorf("ParseSince(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSinceAbsolute(t *testing.T) {
	now := time.Now()
	got := ParseSince("2025-09-04T10:30:00", now)
	if got != "2025-09-04 10:30:00.000" {
		t.Errorf("ParseSince ISO = %q", got)
	}
}

func TestParseSinceInvalid(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"", "yesterday", "5x", "m5", "2025-13-99"} {
		if got := ParseSince(in, now); got != "" {
			t.Errorf("ParseSince(%q) = %q, want empty", in, got)
		}
	}
}

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("2025-09-04 10:00:00.000", []string{"ActivityManager:I", "*:S"})
	got := strings.Join(args, " ")
	want := "logcat -T 2025-09-04 10:00:00.000 ActivityManager:I *:S"
	if got != want {
		t.Errorf("BuildArgs = %q, want %q", got, want)
	}

	args = BuildArgs("", nil)
	if strings.Join(args, " ") != "logcat" {
		t.Errorf("BuildArgs bare = %v", args)
	}
}
