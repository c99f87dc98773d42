package config

import (
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv("ADBHELPER_ADB_PATH", "/opt/platform-tools/adb")
	t.Setenv("ADBHELPER_DEFAULT_SERIAL", "emulator-5554")
	t.Setenv("ADBHELPER_DEFAULT_TIMEOUT", "45")

	cfg := &Config{DefaultTimeout: DefaultTimeout}
	applyEnv(cfg)

	if cfg.ADBPath != "/opt/platform-tools/adb" {
		t.Errorf("ADBPath = %q", cfg.ADBPath)
	}
	if cfg.DefaultSerial != "emulator-5554" {
		t.Errorf("DefaultSerial = %q", cfg.DefaultSerial)
	}
	if cfg.DefaultTimeout != 45 {
		t.Errorf("DefaultTimeout = %d", cfg.DefaultTimeout)
	}
}

func TestApplyEnvInvalidTimeout(t *testing.T) {
	t.Setenv("ADBHELPER_DEFAULT_TIMEOUT", "not-a-number")

	cfg := &Config{DefaultTimeout: DefaultTimeout}
	applyEnv(cfg)

	if cfg.DefaultTimeout != DefaultTimeout {
		t.Errorf("invalid timeout should keep default, got %d", cfg.DefaultTimeout)
	}
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"~/logs", "/home/u/logs"},
		{"/abs/logs", "/abs/logs"},
		{"relative", "relative"},
		{"~", "~"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.path, "/home/u"); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
