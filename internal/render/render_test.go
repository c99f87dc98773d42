package render

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlainTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"serial", "state"}, [][]string{
		{"emulator-5554", "device"},
		{"abc", "offline"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "serial") || !strings.Contains(lines[0], "| state") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "-+-") {
		t.Errorf("separator = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "emulator-5554 | device") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"a"}, nil)
	if strings.TrimSpace(buf.String()) != "(empty)" {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, map[string]int{"lines": 5}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\"lines\": 5") {
		t.Errorf("JSON = %q", buf.String())
	}
}

func TestJSONNoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, map[string]string{"cmd": "a <b> &c"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "a <b> &c") {
		t.Errorf("HTML escaping should be off: %q", buf.String())
	}
}
