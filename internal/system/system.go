// Package system holds process-level housekeeping: sizing worker pools
// against the machine and recycling frame buffers.
package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Workers picks a parallel-decode worker count: one per logical CPU,
// capped so the estimated per-worker footprint stays inside available
// memory with headroom. bytesPerTask of 0 skips the memory cap.
func Workers(bytesPerTask uint64) int {
	n := runtime.NumCPU()
	if cnt, err := cpu.Counts(true); err == nil && cnt > 0 {
		n = cnt
	}

	if bytesPerTask == 0 {
		return n
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return n
	}
	fit := int(vm.Available / (bytesPerTask * 2))
	if fit < 1 {
		fit = 1
	}
	if n > fit {
		n = fit
	}
	return n
}
