package history

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCaptureRoundtrip(t *testing.T) {
	db := openTestDB(t)

	c := Capture{
		ID:        "abc123",
		Serial:    "emulator-5554",
		Kind:      "logcat",
		File:      "logs/emulator-5554_20250904-120000.log",
		StartedAt: "2025-09-04T12:00:00",
		Duration:  60,
		ExitCode:  0,
	}
	if err := db.AddCapture(c); err != nil {
		t.Fatal(err)
	}

	got, err := db.RecentCaptures(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != c {
		t.Errorf("RecentCaptures = %+v", got)
	}

	n, err := db.CaptureCount()
	if err != nil || n != 1 {
		t.Errorf("CaptureCount = %d, %v", n, err)
	}
}

func TestRecentCapturesOrderAndLimit(t *testing.T) {
	db := openTestDB(t)

	for i, ts := range []string{"2025-09-01T10:00:00", "2025-09-03T10:00:00", "2025-09-02T10:00:00"} {
		db.AddCapture(Capture{ID: string(rune('a' + i)), Serial: "s", Kind: "logcat", File: "f", StartedAt: ts})
	}

	got, err := db.RecentCaptures(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].StartedAt != "2025-09-03T10:00:00" || got[1].StartedAt != "2025-09-02T10:00:00" {
		t.Errorf("order wrong: %v, %v", got[0].StartedAt, got[1].StartedAt)
	}
}

func TestAnalysisRoundtrip(t *testing.T) {
	db := openTestDB(t)

	a := Analysis{
		File:       "logs/x.log",
		AnalyzedAt: "2025-09-04T12:05:00",
		Lines:      120,
		Fatals:     2,
		ReportJSON: `{"lines":120}`,
	}
	if err := db.AddAnalysis(a); err != nil {
		t.Fatal(err)
	}

	got, err := db.RecentAnalyses(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].File != a.File || got[0].Lines != 120 || got[0].Fatals != 2 {
		t.Errorf("RecentAnalyses = %+v", got[0])
	}
	if got[0].ID == 0 {
		t.Error("ID should be assigned")
	}
}
