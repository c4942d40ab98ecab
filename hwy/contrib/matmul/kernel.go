// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import (
	"strings"

	"github.com/go-highway/mmulbench/hwy/contrib/workerpool"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Func is the calling convention shared by every kernel: result += left ×
// right for row-major n×n buffers.
type Func func(n int, left, right, result []float32)

// Default measurement iterations per kernel in a benchmark sweep.
const (
	ScalarIterations = 1000
	VectorIterations = 10000
)

// parallelStripRows is the number of result rows a worker grabs at a time.
const parallelStripRows = 4

// Kernel is a named member of the kernel family.
type Kernel struct {
	// Name identifies the kernel in benchmark output, e.g. "saxpy_avx_tiled".
	Name string

	// Iterations is the default number of measured calls in a benchmark sweep.
	Iterations int

	// Vectorized is set for kernels whose inner loop runs on 8-lane vectors.
	Vectorized bool

	// External is set for kernels outside the SAXPY family, whose summation
	// order differs from the reference.
	External bool

	rows rowsFunc
}

// Func returns the kernel as a Func that panics on invalid arguments.
func (k Kernel) Func() Func {
	return func(n int, left, right, result []float32) {
		mustValidate(n, left, right, result)
		k.rows(n, left, right, result, 0, n)
	}
}

// Multiply computes result += left × right, returning the Validate error
// instead of panicking.
func (k Kernel) Multiply(n int, left, right, result []float32) error {
	return k.MultiplyRows(n, left, right, result, 0, n)
}

// MultiplyRows computes only rows [i0, i1) of result += left × right. Calls on
// disjoint row ranges touch disjoint parts of result and may run
// concurrently.
func (k Kernel) MultiplyRows(n int, left, right, result []float32, i0, i1 int) error {
	if err := Validate(n, left, right, result); err != nil {
		return errors.WithMessagef(err, "kernel %s", k.Name)
	}
	if err := validateRows(n, i0, i1); err != nil {
		return errors.WithMessagef(err, "kernel %s", k.Name)
	}
	k.rows(n, left, right, result, i0, i1)
	return nil
}

// IsParallel reports whether k was built by Parallel.
func (k Kernel) IsParallel() bool {
	return strings.HasSuffix(k.Name, parallelSuffix)
}

const parallelSuffix = "_parallel"

// Parallel returns k split over the workers of pool by rows of result. Each
// worker owns whole rows and no tile crosses a row, so the output is
// bit-identical to the serial kernel.
func Parallel(k Kernel, pool *workerpool.Pool) Kernel {
	serial := k.rows
	k.Name += parallelSuffix
	k.rows = func(n int, left, right, result []float32, i0, i1 int) {
		pool.ParallelStrips(i1-i0, parallelStripRows, func(start, end int) {
			serial(n, left, right, result, i0+start, i0+end)
		})
	}
	return k
}

var registry = []Kernel{
	{Name: "blocked", Iterations: ScalarIterations, rows: blockedRows},
	{Name: "saxpy_avx_tiled", Iterations: VectorIterations, Vectorized: true,
		rows: tiledRows(&tiledVecRows, DefaultTile)},
	{Name: "saxpy_avx", Iterations: VectorIterations, Vectorized: true,
		rows: vecRows(&saxpyVecRows)},
	{Name: "saxpy_avx_unrolled", Iterations: VectorIterations, Vectorized: true,
		rows: vecRows(&saxpyVecUnrolledRows)},
	{Name: "saxpy_avx_unrolled_twice", Iterations: VectorIterations, Vectorized: true,
		rows: vecRows(&saxpyVecUnrolledTwiceRows)},
	{Name: "saxpy", Iterations: ScalarIterations, rows: saxpyRows},
	{Name: "saxpy_avx_tiled_unrolled", Iterations: VectorIterations, Vectorized: true,
		rows: tiledRows(&tiledVecUnrolledRows, DefaultUnrolledTile)},
	{Name: "gonum_sgemm", Iterations: ScalarIterations, External: true, rows: gonumRows},
}

// All returns every kernel in benchmark sweep order.
func All() []Kernel {
	return append([]Kernel(nil), registry...)
}

// Names returns the names of All, in order.
func Names() []string {
	return lo.Map(registry, func(k Kernel, _ int) string { return k.Name })
}

// Reference returns the scalar reference kernel, "saxpy".
func Reference() Kernel {
	k, _ := lo.Find(registry, func(k Kernel) bool { return k.Name == "saxpy" })
	return k
}

// Lookup returns the named kernels in the order given. With no names it
// returns All.
func Lookup(names ...string) ([]Kernel, error) {
	if len(names) == 0 {
		return All(), nil
	}
	byName := lo.KeyBy(registry, func(k Kernel) string { return k.Name })
	var unknown []string
	kernels := make([]Kernel, 0, len(names))
	for _, name := range lo.Uniq(names) {
		k, found := byName[name]
		if !found {
			unknown = append(unknown, name)
			continue
		}
		kernels = append(kernels, k)
	}
	if len(unknown) > 0 {
		return nil, errors.Errorf("matmul: unknown kernel(s) %q, known kernels are %s",
			unknown, strings.Join(Names(), ", "))
	}
	return kernels, nil
}
