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
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/go-highway/mmulbench/hwy"
	"github.com/go-highway/mmulbench/hwy/contrib/matrix"
	"github.com/google/go-cmp/cmp"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridSteps keeps every product and partial sum exact in float32 for the
// sizes used here, so all kernels must agree bit for bit.
const gridSteps = 8

type namedFunc struct {
	name string
	fn   Func
}

// testFuncs lists the exported kernels plus the registry entries.
func testFuncs() []namedFunc {
	funcs := []namedFunc{
		{"Saxpy", Saxpy},
		{"Blocked", Blocked},
		{"SaxpyAVX", SaxpyAVX},
		{"SaxpyAVXUnrolled", SaxpyAVXUnrolled},
		{"SaxpyAVXUnrolledTwice", SaxpyAVXUnrolledTwice},
		{"SaxpyAVXTiled", SaxpyAVXTiled},
		{"SaxpyAVXTiledUnrolled", SaxpyAVXTiledUnrolled},
		{"GonumSgemm", GonumSgemm},
	}
	for _, k := range All() {
		funcs = append(funcs, namedFunc{"registry/" + k.Name, k.Func()})
	}
	return funcs
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// gridOperands returns grid-valued left and right matrices of size n.
func gridOperands(n int, seed uint64) (left, right *matrix.Matrix) {
	rng := newRNG(seed)
	left, right = matrix.New(n), matrix.New(n)
	left.FillGrid(rng, gridSteps)
	right.FillGrid(rng, gridSteps)
	return left, right
}

func reference(n int, left, right []float32) []float32 {
	want := make([]float32, n*n)
	Saxpy(n, left, right, want)
	return want
}

func TestKernelsMatchReference(t *testing.T) {
	t.Logf("Dispatch level: %s, vector target: %s", hwy.CurrentName(), VectorTarget())
	for _, n := range []int{1, 2, 3, 7, 8, 9, 15, 16, 17, 63, 64, 65, 127, 128} {
		left, right := gridOperands(n, uint64(n))
		want := reference(n, left.Data(), right.Data())
		for _, f := range testFuncs() {
			t.Run(fmt.Sprintf("%s/n=%d", f.name, n), func(t *testing.T) {
				got := matrix.New(n)
				f.fn(n, left.Data(), right.Data(), got.Data())
				if diff := cmp.Diff(want, got.Data()); diff != "" {
					t.Errorf("result mismatch (-want +got):\n%s", diff)
				}
				require.NoError(t, Compare(n, want, got.Data(), DefaultTolerance))
			})
		}
	}
}

func TestKernelsRandomValues(t *testing.T) {
	for _, n := range []int{7, 33, 65} {
		rng := newRNG(42)
		left, right := matrix.New(n), matrix.New(n)
		left.FillRandom(rng, -1, 1)
		right.FillRandom(rng, -1, 1)
		want := reference(n, left.Data(), right.Data())
		// Fused and separate rounding drift apart by at most one rounding per
		// accumulated term.
		tol := DefaultTolerance * float64(n)
		for _, f := range testFuncs() {
			got := matrix.New(n)
			f.fn(n, left.Data(), right.Data(), got.Data())
			assert.NoError(t, Compare(n, want, got.Data(), tol), "%s n=%d", f.name, n)
		}
	}
}

func TestKernelsAccumulate(t *testing.T) {
	const n = 37
	left, right := gridOperands(n, 7)
	for _, f := range testFuncs() {
		once := matrix.New(n)
		f.fn(n, left.Data(), right.Data(), once.Data())
		twice := matrix.New(n)
		f.fn(n, left.Data(), right.Data(), twice.Data())
		f.fn(n, left.Data(), right.Data(), twice.Data())
		for i, v := range once.Data() {
			require.Equal(t, 2*v, twice.Data()[i], "%s: element %d", f.name, i)
		}
	}
}

func TestKernelsKeepExistingResult(t *testing.T) {
	const n = 9
	left, right := gridOperands(n, 11)
	want := reference(n, left.Data(), right.Data())
	for i := range want {
		want[i] += 1
	}
	for _, f := range testFuncs() {
		got := matrix.New(n)
		got.FillSequential(1, 0)
		f.fn(n, left.Data(), right.Data(), got.Data())
		assert.Equal(t, want, got.Data(), f.name)
	}
}

func TestKernelsRemainderColumns(t *testing.T) {
	// n=10 leaves two columns after the only 8-lane strip of each row.
	const n = 10
	left, right := matrix.New(n), matrix.New(n)
	left.FillSequential(1, 1)
	right.FillSequential(-5, 0.5)
	want := reference(n, left.Data(), right.Data())
	for _, f := range testFuncs() {
		got := matrix.New(n)
		f.fn(n, left.Data(), right.Data(), got.Data())
		for i := range n {
			for j := 8; j < n; j++ {
				require.NotZero(t, got.At(i, j), "%s: [%d][%d] left untouched", f.name, i, j)
				assert.InDelta(t, want[i*n+j], got.At(i, j), DefaultTolerance, "%s: [%d][%d]", f.name, i, j)
			}
		}
	}
}

func TestKernelsDeterministic(t *testing.T) {
	const n = 71
	rng := newRNG(3)
	left, right := matrix.New(n), matrix.New(n)
	left.FillRandom(rng, -1e6, 1e6)
	right.FillRandom(rng, -1e6, 1e6)
	for _, f := range testFuncs() {
		first, second := matrix.New(n), matrix.New(n)
		f.fn(n, left.Data(), right.Data(), first.Data())
		f.fn(n, left.Data(), right.Data(), second.Data())
		assert.True(t, cmp.Equal(first.Data(), second.Data()), "%s is not deterministic", f.name)
	}
}

func TestKernelsExample(t *testing.T) {
	left := must.M1(matrix.FromRows([][]float32{{1, 2}, {3, 4}}))
	right := must.M1(matrix.FromRows([][]float32{{5, 6}, {7, 8}}))
	want := []float32{19, 22, 43, 50}
	for _, f := range testFuncs() {
		got := matrix.New(2)
		f.fn(2, left.Data(), right.Data(), got.Data())
		assert.Equal(t, want, got.Data(), f.name)
	}
}

func TestKernelsTileBoundaries(t *testing.T) {
	// Blocked tiles by 8, the tiled kernels by 16 and 64 deep and 256 wide.
	for _, n := range []int{16, 17, 64, 65, 256, 257} {
		if n > 100 && testing.Short() {
			continue
		}
		left, right := gridOperands(n, uint64(1000+n))
		want := reference(n, left.Data(), right.Data())
		for _, f := range testFuncs() {
			got := matrix.New(n)
			f.fn(n, left.Data(), right.Data(), got.Data())
			if diff := cmp.Diff(want, got.Data()); diff != "" {
				t.Errorf("%s n=%d: result mismatch (-want +got):\n%s", f.name, n, diff)
			}
		}
	}
}

func TestTiledCustomTiles(t *testing.T) {
	tiles := []TileConfig{
		{Width: 1, Depth: 1},
		{Width: 8, Depth: 3},
		{Width: 12, Depth: 5},
		{Width: 64, Depth: 64},
		{Width: 72, Depth: 7},
		{Width: 130, Depth: 200},
	}
	for _, tile := range tiles {
		for _, n := range []int{1, 11, 64, 73, 150} {
			left, right := gridOperands(n, uint64(n))
			want := reference(n, left.Data(), right.Data())
			for name, fn := range map[string]Func{
				"tiled":          SaxpyAVXTiledWith(tile),
				"tiled_unrolled": SaxpyAVXTiledUnrolledWith(tile),
			} {
				got := matrix.New(n)
				fn(n, left.Data(), right.Data(), got.Data())
				if diff := cmp.Diff(want, got.Data()); diff != "" {
					t.Errorf("%s tile=%s n=%d: mismatch (-want +got):\n%s", name, tile, n, diff)
				}
			}
		}
	}
	require.Panics(t, func() { SaxpyAVXTiledWith(TileConfig{Width: 0, Depth: 4}) })
	require.Panics(t, func() { SaxpyAVXTiledUnrolledWith(TileConfig{Width: 8, Depth: -1}) })
}

func TestKernelsUnalignedBuffers(t *testing.T) {
	const n = 29
	left, right := gridOperands(n, 5)
	want := reference(n, left.Data(), right.Data())

	// Shift every operand one element off its aligned start.
	shift := func(src []float32) []float32 {
		buf := make([]float32, len(src)+1)
		copy(buf[1:], src)
		return buf[1:]
	}
	uLeft, uRight := shift(left.Data()), shift(right.Data())
	for _, f := range testFuncs() {
		got := shift(make([]float32, n*n))
		f.fn(n, uLeft, uRight, got)
		assert.Equal(t, want, got, f.name)
	}
}

func TestVectorKernelsAgreeBitwise(t *testing.T) {
	// All vector kernels fuse the same products in the same k order.
	const n = 131
	rng := newRNG(99)
	left, right := matrix.New(n), matrix.New(n)
	left.FillRandom(rng, -1, 1)
	right.FillRandom(rng, -1, 1)
	var want []float32
	for _, k := range All() {
		if !k.Vectorized {
			continue
		}
		got := matrix.New(n)
		require.NoError(t, k.Multiply(n, left.Data(), right.Data(), got.Data()))
		if want == nil {
			want = got.Data()
			continue
		}
		assert.True(t, cmp.Equal(want, got.Data()), "%s differs from the other vector kernels", k.Name)
	}
}
