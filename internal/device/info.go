package device

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/akoreshkov/adbhelper/internal/adb"
)

// Info is the device summary shown by the device-info subcommand.
type Info struct {
	Serial  string `json:"serial"`
	Model   string `json:"model"`
	Brand   string `json:"brand"`
	Android string `json:"android"`
	SDK     string `json:"sdk"`
	ABI     string `json:"abi"`
	Root    string `json:"root"`
	Battery string `json:"battery"`
	Storage string `json:"storage"`
	Mem     string `json:"mem"`
}

var (
	battLevel  = regexp.MustCompile(`level: (\d+)`)
	battStatus = regexp.MustCompile(`status: (\d+)`)
)

// Gather collects the device summary from getprop, dumpsys and df.
func Gather(r *adb.Runner, serial string) (*Info, error) {
	sh := func(args ...string) string {
		out, err := r.Shell(serial, args...)
		if err != nil {
			return ""
		}
		return out
	}

	info := &Info{
		Serial:  serial,
		Model:   sh("getprop", "ro.product.model"),
		Brand:   sh("getprop", "ro.product.brand"),
		Android: sh("getprop", "ro.build.version.release"),
		SDK:     sh("getprop", "ro.build.version.sdk"),
		ABI:     sh("getprop", "ro.product.cpu.abi"),
		Root:    "no",
	}
	if strings.Contains(sh("id"), "uid=0") {
		info.Root = "yes"
	}

	info.Battery = BatterySummary(sh("dumpsys", "battery"))
	info.Storage = strings.Join(strings.Fields(sh("df", "-h", "/data")), " ")
	if mem := sh("dumpsys", "meminfo", "-c"); mem != "" {
		info.Mem = strings.SplitN(mem, "\n", 2)[0]
	}
	return info, nil
}

// BatterySummary condenses dumpsys battery output to "NN% (status=S)"; when
// the expected fields are missing it falls back to a truncated raw dump.
func BatterySummary(dump string) string {
	level := battLevel.FindStringSubmatch(dump)
	status := battStatus.FindStringSubmatch(dump)
	if level != nil && status != nil {
		return fmt.Sprintf("%s%% (status=%s)", level[1], status[1])
	}
	if len(dump) > 60 {
		return dump[:60] + "..."
	}
	return dump
}
