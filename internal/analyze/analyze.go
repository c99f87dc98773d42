// Package analyze turns a captured log file into aggregate statistics:
// per-level counts, tag frequency, and fatal-event detection. The parsing is
// heuristic and best-effort; lines that do not look like log records still
// count toward the total.
package analyze

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"time"
)

// TopTagCount is how many tags the report ranks.
const TopTagCount = 10

// levelRecord matches one log record: optional leading timestamp/process
// fields, a single severity letter, a slash, then the tag up to the first
// whitespace or parenthesis.
var levelRecord = regexp.MustCompile(`^(?:\S+\s+)*?([VDIWEF])/([^\s(]+)`)

// fatalMarker flags lines carrying an unhandled application failure.
var fatalMarker = regexp.MustCompile(`(?i)FATAL EXCEPTION|ANR in|java\.lang\.`)

// Levels is the fixed severity order used for reporting.
var Levels = []string{"V", "D", "I", "W", "E", "F"}

// record is one parsed line. Level and Tag are empty when the line did not
// look like a log record; Raw always holds the full line.
type record struct {
	Level string
	Tag   string
	Raw   string
}

// parseRecord is the single place the record pattern is applied; aggregation
// never touches the regexp directly.
func parseRecord(line string) record {
	rec := record{Raw: line}
	if m := levelRecord.FindStringSubmatch(line); m != nil {
		rec.Level = m[1]
		rec.Tag = m[2]
	}
	return rec
}

// TagCount is one entry of the top-tag ranking.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Report is the aggregate over one finite pass; immutable once built.
type Report struct {
	Source     string         `json:"file"`
	AnalyzedAt string         `json:"analyzed_at"`
	Lines      int            `json:"lines"`
	Levels     map[string]int `json:"levels"`
	Fatals     int            `json:"fatals_or_anrs"`
	TopTags    []TagCount     `json:"top10_tags"`
}

// Matched returns how many lines carried a recognizable level record.
func (r *Report) Matched() int {
	n := 0
	for _, c := range r.Levels {
		n += c
	}
	return n
}

// AnalyzeFile runs the analyzer over a log file on disk.
func AnalyzeFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	return Analyze(f, path)
}

// Analyze consumes r line by line and builds the report. A read failure
// aborts the whole analysis; malformed lines never do.
func Analyze(r io.Reader, source string) (*Report, error) {
	levels := make(map[string]int, len(Levels))
	for _, l := range Levels {
		levels[l] = 0
	}

	tagCounts := make(map[string]int)
	var tagOrder []string
	fatals := 0
	total := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		total++

		if rec := parseRecord(line); rec.Level != "" {
			levels[rec.Level]++
			if _, seen := tagCounts[rec.Tag]; !seen {
				tagOrder = append(tagOrder, rec.Tag)
			}
			tagCounts[rec.Tag]++
		}

		// fatal markers are scanned on every line, matched or not,
		// and count once per line no matter how many markers it has
		if fatalMarker.MatchString(line) {
			fatals++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log source %s: %w", source, err)
	}

	return &Report{
		Source:     source,
		AnalyzedAt: time.Now().Format("2006-01-02T15:04:05"),
		Lines:      total,
		Levels:     levels,
		Fatals:     fatals,
		TopTags:    rankTags(tagCounts, tagOrder),
	}, nil
}

// rankTags orders tags by descending count; equal counts keep first-seen
// order. At most TopTagCount entries are returned.
func rankTags(counts map[string]int, order []string) []TagCount {
	ranked := make([]TagCount, 0, len(order))
	for _, tag := range order {
		ranked = append(ranked, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > TopTagCount {
		ranked = ranked[:TopTagCount]
	}
	return ranked
}
