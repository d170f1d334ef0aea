package system

import (
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStats is a point-in-time view of the machine, printed with the performance report.
type HostStats struct {
	LogicalCPUs    int
	TotalMemory    uint64
	AvailMemory    uint64
	MemUsedPercent float64
	HeapAlloc      uint64
}

// Snapshot collects host statistics. Fields gopsutil cannot read stay zero.
func Snapshot() HostStats {
	var s HostStats

	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	} else {
		s.LogicalCPUs = runtime.NumCPU()
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.TotalMemory = vm.Total
		s.AvailMemory = vm.Available
		s.MemUsedPercent = vm.UsedPercent
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s.HeapAlloc = ms.HeapAlloc
	return s
}

func (s HostStats) String() string {
	return fmt.Sprintf("CPUs: %d | RAM: %s free of %s (%.1f%% used) | Heap: %s",
		s.LogicalCPUs, humanize.IBytes(s.AvailMemory), humanize.IBytes(s.TotalMemory), s.MemUsedPercent, humanize.IBytes(s.HeapAlloc))
}
