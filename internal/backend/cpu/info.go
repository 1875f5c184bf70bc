package cpu

import (
	"runtime"

	xcpu "golang.org/x/sys/cpu"
)

// Info describes the host the backend runs on.
type Info struct {
	Arch     string
	Workers  int
	Features []string // SIMD extensions the Go compiler may auto-use.
}

// Info reports the host architecture, worker count and SIMD features.
func (cpu *CPUBackend) Info() Info {
	return Info{
		Arch:     runtime.GOARCH,
		Workers:  cpu.cfg.NumWorkers,
		Features: simdFeatures(),
	}
}

func simdFeatures() []string {
	var f []string
	add := func(ok bool, name string) {
		if ok {
			f = append(f, name)
		}
	}
	add(xcpu.X86.HasSSE41, "sse4.1")
	add(xcpu.X86.HasAVX, "avx")
	add(xcpu.X86.HasAVX2, "avx2")
	add(xcpu.X86.HasFMA, "fma")
	add(xcpu.X86.HasAVX512F, "avx512f")
	add(xcpu.ARM64.HasASIMD, "neon")
	add(xcpu.ARM64.HasSVE, "sve")
	return f
}
