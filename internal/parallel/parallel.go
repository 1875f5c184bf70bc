// Package parallel provides the host launch grid for element-wise kernels.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"

	"github.com/born-ml/eltwise/internal/dtype"
)

// ErrKernelPanic is wrapped by the error Launch returns when a block panics.
var ErrKernelPanic = errors.New("parallel: kernel panic")

// cacheLine is the platform cache line size in bytes.
const cacheLine = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4 * cacheLine, // A few cache lines of bytes per block.
	}
}

func (cfg Config) workers() int {
	if cfg.NumWorkers < 1 {
		return 1
	}
	return cfg.NumWorkers
}

func (cfg Config) minChunk() int {
	if cfg.MinChunkSize < 1 {
		return 1
	}
	return cfg.MinChunkSize
}

// Grid returns the number of blocks of size block needed to cover n items.
func Grid[I dtype.Index](n, block I) I {
	if n <= 0 || block <= 0 {
		return 0
	}
	g := n / block
	if n%block != 0 {
		g++
	}
	return g
}

// Launch runs body over contiguous blocks covering [0, n).
// Blocks run on at most cfg.NumWorkers goroutines; it returns when every block
// has finished. A panic in a block is returned as an error wrapping
// ErrKernelPanic and blocks that have not started yet are skipped.
// n <= 0 schedules nothing.
func Launch[I dtype.Index](ctx context.Context, n I, cfg Config, body func(lo, hi I)) error {
	if n <= 0 {
		return nil
	}
	if !cfg.Enabled || cfg.workers() == 1 || uint64(n) < uint64(cfg.minChunk()) {
		// Sequential fallback.
		return runBlock(0, n, body)
	}

	workers := I(cfg.workers())
	block := max(Grid(n, workers), I(cfg.minChunk()))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())

	// Steps by remaining distance so lo+block never overflows I.
	for lo := I(0); lo < n; {
		if ctx.Err() != nil {
			break
		}
		start, end := lo, n
		if n-lo > block {
			end = lo + block
		}
		g.Go(func() error {
			return runBlock(start, end, body)
		})
		lo = end
	}
	return g.Wait()
}

func runBlock[I dtype.Index](lo, hi I, body func(lo, hi I)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: block [%d, %d): %v", ErrKernelPanic, lo, hi, r)
		}
	}()
	body(lo, hi)
	return nil
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.workers()-1)/cfg.workers(), cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
