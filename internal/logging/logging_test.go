package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRotatingFileRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")

	rf, err := openRotatingFile(path, 64, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer rf.Close()

	line := bytes.Repeat([]byte("x"), 40)
	for i := 0; i < 4; i++ {
		if _, err := rf.Write(line); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	if _, err := os.Stat(backupName(path, 1)); err != nil {
		t.Errorf("expected %s.1 after rotation: %v", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > 64 {
		t.Errorf("current file exceeds max size: %d", info.Size())
	}
}

func TestRotatingFileShiftsBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")

	rf, err := openRotatingFile(path, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer rf.Close()

	for i := 0; i < 6; i++ {
		rf.Write([]byte("0123456789"))
	}

	for _, name := range []string{backupName(path, 1), backupName(path, 2)} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("expected backup %s: %v", name, err)
		}
	}
	if _, err := os.Stat(backupName(path, 3)); err == nil {
		t.Errorf("backup count exceeded: %s.3 exists", path)
	}
}
