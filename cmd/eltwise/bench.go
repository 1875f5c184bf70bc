package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/born-ml/eltwise/internal/backend/cpu"
	"github.com/born-ml/eltwise/internal/backend/webgpu"
	"github.com/born-ml/eltwise/internal/dtype"
	"github.com/born-ml/eltwise/internal/linalg"
	"github.com/born-ml/eltwise/internal/parallel"
	"github.com/born-ml/eltwise/internal/stream"
)

type benchOptions struct {
	op      string
	n       dtype.DefaultIndex
	iters   int
	backend string
	workers int
}

// ops maps CLI op names to the float32 operation they launch.
var ops = map[string]func(out, a, b []float32, n dtype.DefaultIndex, s *stream.Stream){
	"add":     linalg.EltwiseAdd[float32, dtype.DefaultIndex],
	"sub":     linalg.EltwiseSub[float32, dtype.DefaultIndex],
	"mul":     linalg.EltwiseMultiply[float32, dtype.DefaultIndex],
	"div":     linalg.EltwiseDivide[float32, dtype.DefaultIndex],
	"divzero": linalg.EltwiseDivideCheckZero[float32, dtype.DefaultIndex],
	"sadd": func(out, a, _ []float32, n dtype.DefaultIndex, s *stream.Stream) {
		linalg.ScalarAdd(out, a, 1.5, n, s)
	},
	"smul": func(out, a, _ []float32, n dtype.DefaultIndex, s *stream.Stream) {
		linalg.ScalarMultiply(out, a, 1.5, n, s)
	},
}

func newBenchCmd() *cobra.Command {
	opts := benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time an element-wise operation over generated float32 buffers",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBench(opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.op, "op", "add", "operation: add, sub, mul, div, divzero, sadd, smul")
	f.Int32Var(&opts.n, "n", 1<<22, "elements per buffer")
	f.IntVar(&opts.iters, "iters", 20, "launches to time")
	f.StringVar(&opts.backend, "backend", "cpu", "executor: cpu or webgpu")
	f.IntVar(&opts.workers, "workers", 0, "host workers (0 = one per CPU)")
	return cmd
}

func newExecutor(name string, workers int) (stream.Executor, func(), error) {
	cfg := parallel.DefaultConfig()
	if workers > 0 {
		cfg.NumWorkers = workers
		cfg.Enabled = workers > 1
	}
	host := cpu.NewWithConfig(cfg)

	switch name {
	case "cpu":
		return host, func() {}, nil
	case "webgpu":
		gpu, err := webgpu.NewWithFallback(host)
		if err != nil {
			return nil, nil, err
		}
		return gpu, gpu.Release, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", name)
	}
}

func runBench(opts benchOptions) error {
	op, ok := ops[opts.op]
	if !ok {
		return fmt.Errorf("unknown op %q", opts.op)
	}
	if opts.n <= 0 || opts.iters <= 0 {
		return errors.New("n and iters must be positive")
	}

	exec, release, err := newExecutor(opts.backend, opts.workers)
	if err != nil {
		return err
	}
	defer release()

	n := int(opts.n)
	a := make([]float32, n)
	b := make([]float32, n)
	out := make([]float32, n)
	parallel.For(n, func(i int) {
		a[i] = float32(i%1000) + 0.5
		b[i] = float32(i % 7)
	}, parallel.DefaultConfig())

	s := stream.NewWithConfig(exec, stream.Config{
		Name:    "bench",
		OnFault: func(err error) { log.Printf("stream fault: %v", err) },
	})
	defer s.Close()

	// Warm-up launch; also compiles shaders on the GPU path.
	op(out, a, b, opts.n, s)
	if err := s.Synchronize(); err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < opts.iters; i++ {
		op(out, a, b, opts.n, s)
	}
	if err := s.Synchronize(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	per := elapsed / time.Duration(opts.iters)
	log.Printf("%s op=%s n=%d iters=%d: %v/launch, %.2f Melem/s",
		s, opts.op, opts.n, opts.iters, per, float64(opts.n)/per.Seconds()/1e6)
	return nil
}
