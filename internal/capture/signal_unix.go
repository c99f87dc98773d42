//go:build !windows

package capture

import "os"

// interrupt asks the process to shut down gracefully. The kill fallback in
// Cancel handles processes that ignore it.
func interrupt(p *os.Process) error {
	return p.Signal(os.Interrupt)
}
