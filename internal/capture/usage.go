package capture

import (
	"sync"
	"time"

	gopsproc "github.com/shirou/gopsutil/v3/process"
)

// usageMonitor samples the child's CPU and resident memory once a second
// until the process exits, keeping the most recent sample.
type usageMonitor struct {
	mu   sync.Mutex
	cpu  float64
	rss  uint64
	seen bool
}

func newUsageMonitor(pid int, exited <-chan struct{}) *usageMonitor {
	m := &usageMonitor{}
	proc, err := gopsproc.NewProcess(int32(pid))
	if err != nil {
		return m
	}

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-exited:
				return
			case <-ticker.C:
				cpu, cerr := proc.CPUPercent()
				mem, merr := proc.MemoryInfo()
				if cerr != nil || merr != nil || mem == nil {
					continue
				}
				m.mu.Lock()
				m.cpu = cpu
				m.rss = mem.RSS
				m.seen = true
				m.mu.Unlock()
			}
		}
	}()
	return m
}

func (m *usageMonitor) Last() (cpu float64, rss uint64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cpu, m.rss, m.seen
}
