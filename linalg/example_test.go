package linalg_test

import (
	"fmt"

	"github.com/born-ml/eltwise/backend/cpu"
	"github.com/born-ml/eltwise/linalg"
)

func ExampleEltwiseDivideCheckZero() {
	s := cpu.New().NewStream()
	defer s.Close()

	in1 := []float32{1, 2, 3, 4}
	in2 := []float32{0, 1, 2, 0}
	out := make([]float32, 4)

	linalg.EltwiseDivideCheckZero(out, in1, in2, int32(4), s)
	if err := s.Synchronize(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)
	// Output: [0 2 1.5 0]
}

func ExampleMap() {
	s := cpu.New().NewStream()
	defer s.Close()

	in := []int32{1, 2, 3}
	out := make([]int32, 3)

	linalg.Map(out, in, int32(3), linalg.UnaryFn[int32](func(x int32) int32 { return x * x }), s)
	_ = s.Synchronize()
	fmt.Println(out)
	// Output: [1 4 9]
}
