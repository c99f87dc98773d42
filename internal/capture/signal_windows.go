//go:build windows

package capture

import "os"

// interrupt terminates the process outright: Windows has no interrupt
// signal that can be delivered to an arbitrary child.
func interrupt(p *os.Process) error {
	return p.Kill()
}
