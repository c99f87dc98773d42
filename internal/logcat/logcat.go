// Package logcat builds logcat invocations: the -T since format and the
// final argument vector for a capture.
package logcat

import (
	"regexp"
	"strconv"
	"time"
)

var relativeSince = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseSince converts a --since value into the "YYYY-MM-DD HH:MM:SS.mmm"
// form logcat expects for -T. Supported inputs: relative offsets like "5m"
// or "2h", and absolute ISO-8601 timestamps. Anything else returns "" and
// the caller emits no -T flag at all.
func ParseSince(s string, now time.Time) string {
	if s == "" {
		return ""
	}

	if m := relativeSince.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		var unit time.Duration
		switch m[2] {
		case "s":
			unit = time.Second
		case "m":
			unit = time.Minute
		case "h":
			unit = time.Hour
		case "d":
			unit = 24 * time.Hour
		}
		return format(now.Add(-time.Duration(n) * unit))
	}

	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return format(t)
		}
	}
	return ""
}

func format(t time.Time) string {
	return t.Format("2006-01-02 15:04:05") + ".000"
}

// BuildArgs assembles the logcat argument vector. Filters are tag:level
// pairs appended verbatim.
func BuildArgs(since string, filters []string) []string {
	args := []string{"logcat"}
	if since != "" {
		args = append(args, "-T", since)
	}
	return append(args, filters...)
}
