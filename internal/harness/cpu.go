package harness

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// CPUFeatures lists the detected instruction set extensions that matter for
// word-at-a-time bit manipulation.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasPOPCNT, "popcnt")
		add(cpu.X86.HasBMI1, "bmi1")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasAVX512F, "avx512f")
		add(cpu.X86.HasAVX512BW, "avx512bw")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
		add(cpu.ARM64.HasSVE2, "sve2")
	}
	return features
}

// workerStats is owned by exactly one worker. The padding keeps neighbouring
// workers' counters off each other's cache lines.
type workerStats struct {
	passes int
	_      cpu.CacheLinePad
}
