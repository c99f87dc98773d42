// Package history records capture sessions and analysis runs in a local
// sqlite database so past work can be listed and re-analyzed.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS captures (
    id          TEXT PRIMARY KEY,
    serial      TEXT NOT NULL,
    kind        TEXT NOT NULL,
    file        TEXT NOT NULL,
    started_at  TEXT NOT NULL,
    duration_s  INTEGER NOT NULL DEFAULT 0,
    exit_code   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS analyses (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    file        TEXT NOT NULL,
    analyzed_at TEXT NOT NULL,
    lines       INTEGER NOT NULL,
    fatals      INTEGER NOT NULL,
    report_json TEXT NOT NULL
);
`

type DB struct {
	db *sql.DB
}

func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Capture is one recorded capture session (logcat stream, screen recording
// or screenshot).
type Capture struct {
	ID        string
	Serial    string
	Kind      string
	File      string
	StartedAt string
	Duration  int
	ExitCode  int
}

func (d *DB) AddCapture(c Capture) error {
	_, err := d.db.Exec(
		"INSERT INTO captures (id, serial, kind, file, started_at, duration_s, exit_code) VALUES (?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.Serial, c.Kind, c.File, c.StartedAt, c.Duration, c.ExitCode,
	)
	return err
}

func (d *DB) RecentCaptures(limit int) ([]Capture, error) {
	rows, err := d.db.Query(
		"SELECT id, serial, kind, file, started_at, duration_s, exit_code FROM captures ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Capture
	for rows.Next() {
		var c Capture
		if err := rows.Scan(&c.ID, &c.Serial, &c.Kind, &c.File, &c.StartedAt, &c.Duration, &c.ExitCode); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Analysis is one recorded analyzer run.
type Analysis struct {
	ID         int64
	File       string
	AnalyzedAt string
	Lines      int
	Fatals     int
	ReportJSON string
}

func (d *DB) AddAnalysis(a Analysis) error {
	_, err := d.db.Exec(
		"INSERT INTO analyses (file, analyzed_at, lines, fatals, report_json) VALUES (?, ?, ?, ?, ?)",
		a.File, a.AnalyzedAt, a.Lines, a.Fatals, a.ReportJSON,
	)
	return err
}

func (d *DB) RecentAnalyses(limit int) ([]Analysis, error) {
	rows, err := d.db.Query(
		"SELECT id, file, analyzed_at, lines, fatals, report_json FROM analyses ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.File, &a.AnalyzedAt, &a.Lines, &a.Fatals, &a.ReportJSON); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (d *DB) CaptureCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM captures").Scan(&n)
	return n, err
}

// Now is the timestamp format used for history rows.
func Now() string {
	return time.Now().Format("2006-01-02T15:04:05")
}
