// Package app builds activity-manager invocations and parses package
// information out of dumpsys output.
package app

import (
	"regexp"
	"strings"
)

// StartOptions describes an `am start` request.
type StartOptions struct {
	Package  string
	Activity string
	Action   string
	Data     string
	Extras   []string // key=value pairs passed as string extras
}

// BuildStartArgs assembles the shell argv for `am start -W`.
func BuildStartArgs(o StartOptions) []string {
	args := []string{"am", "start", "-W"}
	if o.Action != "" {
		args = append(args, "-a", o.Action)
	}
	if o.Data != "" {
		args = append(args, "-d", o.Data)
	}
	for _, ex := range o.Extras {
		if k, v, ok := strings.Cut(ex, "="); ok {
			args = append(args, "--es", k, v)
		}
	}
	if o.Package != "" {
		args = append(args, "-n", Component(o.Package, o.Activity))
	}
	return args
}

// Component joins package and activity into the -n component form. A bare
// activity name or one starting with a dot is qualified with the package.
func Component(pkg, activity string) string {
	if activity == "" {
		return pkg
	}
	if strings.HasPrefix(activity, ".") || !strings.Contains(activity, "/") {
		return pkg + "/" + activity
	}
	return activity
}

// Info is the parsed summary of one installed package.
type Info struct {
	Package      string   `json:"package"`
	VersionName  string   `json:"versionName"`
	VersionCode  string   `json:"versionCode"`
	UID          string   `json:"uid"`
	Granted      []string `json:"grantedPermissions"`
	Path         string   `json:"path"`
	MainActivity string   `json:"mainActivity"`
}

var componentRef = regexp.MustCompile(`cmp=(\S+)`)

// ParseInfo extracts the interesting fields from `dumpsys package` output.
// The dump format is not a stable interface, so all parsing is best-effort
// line scanning.
func ParseInfo(pkg, dump string) *Info {
	info := &Info{Package: pkg, Granted: []string{}}
	for _, line := range strings.Split(dump, "\n") {
		if _, after, ok := strings.Cut(line, "versionName="); ok {
			info.VersionName = strings.TrimSpace(after)
		}
		if _, after, ok := strings.Cut(line, "versionCode="); ok {
			if fields := strings.Fields(after); len(fields) > 0 {
				info.VersionCode = fields[0]
			}
		}
		if _, after, ok := strings.Cut(line, "userId="); ok {
			if fields := strings.Fields(after); len(fields) > 0 {
				info.UID = fields[0]
			}
		}
		if strings.Contains(line, "granted=true") && strings.Contains(line, "android.permission") {
			if fields := strings.Fields(strings.TrimSpace(line)); len(fields) > 0 {
				info.Granted = append(info.Granted, fields[0])
			}
		}
		if strings.Contains(line, "android.intent.action.MAIN") && strings.Contains(line, "LAUNCHER") {
			if m := componentRef.FindStringSubmatch(line); m != nil {
				info.MainActivity = m[1]
			}
		}
	}
	return info
}

// CleanPath strips the `package:` prefix from `pm path` output.
func CleanPath(out string) string {
	return strings.TrimSpace(strings.ReplaceAll(out, "package:", ""))
}
