// Package device lists connected devices, resolves which one a command
// should target, and gathers per-device details.
package device

import (
	"regexp"
	"strings"

	"github.com/akoreshkov/adbhelper/internal/adb"
	"github.com/akoreshkov/adbhelper/internal/cli"
)

// Device is one row of `adb devices -l`.
type Device struct {
	Serial    string `json:"serial"`
	State     string `json:"state"`
	Model     string `json:"model"`
	Android   string `json:"android"`
	SDK       string `json:"sdk"`
	Transport string `json:"transport"`
}

// Online reports whether the device can accept commands.
func (d Device) Online() bool { return d.State == "device" }

var deviceLine = regexp.MustCompile(
	`^(\S+)\s+(device|offline|unauthorized)\b`)

// List runs `adb devices -l` and parses the result. Online devices are
// enriched with Android release and SDK level via getprop.
func List(r *adb.Runner) ([]Device, error) {
	res, err := r.Run("", "devices", "-l")
	if err != nil {
		return nil, err
	}
	if res.Code != 0 {
		return nil, cli.Launchf("adb devices exited %d: %s", res.Code, strings.TrimSpace(res.Stderr))
	}

	devs := Parse(res.Stdout)
	for i := range devs {
		if !devs[i].Online() {
			continue
		}
		if rel, err := r.Shell(devs[i].Serial, "getprop", "ro.build.version.release"); err == nil {
			devs[i].Android = rel
		}
		if sdk, err := r.Shell(devs[i].Serial, "getprop", "ro.build.version.sdk"); err == nil {
			devs[i].SDK = sdk
		}
	}
	return devs, nil
}

// Parse extracts devices from raw `adb devices -l` output.
func Parse(out string) []Device {
	var devs []Device
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(strings.ToLower(line), "list of devices") {
			continue
		}
		m := deviceLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		d := Device{Serial: m[1], State: m[2]}
		for _, field := range strings.Fields(line)[2:] {
			if k, v, ok := strings.Cut(field, ":"); ok {
				switch k {
				case "model":
					d.Model = v
				case "transport_id":
					d.Transport = v
				}
			}
		}
		devs = append(devs, d)
	}
	return devs
}

// Pick resolves the target device. An explicit serial must name an online
// device; otherwise exactly one online device auto-selects, and zero or
// several is a selection error.
func Pick(r *adb.Runner, preferred string) (string, error) {
	devs, err := List(r)
	if err != nil {
		return "", err
	}
	return pick(devs, preferred)
}

func pick(devs []Device, preferred string) (string, error) {
	var online []Device
	for _, d := range devs {
		if d.Online() {
			online = append(online, d)
		}
	}

	if preferred != "" {
		for _, d := range online {
			if d.Serial == preferred {
				return d.Serial, nil
			}
		}
		return "", cli.Selectionf("device %s not found or not in state 'device'", preferred)
	}
	if len(online) == 0 {
		return "", cli.Selectionf("no connected devices in state 'device'")
	}
	if len(online) > 1 {
		var b strings.Builder
		b.WriteString("multiple connected devices, pass --serial:")
		for _, d := range online {
			model := d.Model
			if model == "" {
				model = "n/a"
			}
			b.WriteString("\n- " + d.Serial + " (" + model + ")")
		}
		return "", cli.Selectionf("%s", b.String())
	}
	return online[0].Serial, nil
}
