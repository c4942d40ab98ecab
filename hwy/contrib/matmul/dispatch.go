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

//go:generate go run ../../../cmd/kernelgen -output . -targets avx2,fallback

// rowsFunc computes rows [i0, i1) of result += left × right.
type rowsFunc func(n int, left, right, result []float32, i0, i1 int)

// tiledRowsFunc is rowsFunc with the column tile width and k tile depth.
type tiledRowsFunc func(n int, left, right, result []float32, i0, i1, tileW, tileD int)

// Vector implementations, defaulting to the portable hwy.Float32x8 bodies.
// The generated avx2 target upgrades them at init time when the CPU supports
// AVX2 with FMA and HWY_NO_SIMD is not set.
var (
	saxpyVecRows              rowsFunc      = saxpyVecRows_fallback
	saxpyVecUnrolledRows      rowsFunc      = saxpyVecUnrolledRows_fallback
	saxpyVecUnrolledTwiceRows rowsFunc      = saxpyVecUnrolledTwiceRows_fallback
	tiledVecRows              tiledRowsFunc = tiledVecRows_fallback
	tiledVecUnrolledRows      tiledRowsFunc = tiledVecUnrolledRows_fallback

	vecTarget = "fallback"
)

// VectorTarget returns the name of the generated target the vectorized
// kernels run on: "avx2" or "fallback".
func VectorTarget() string {
	return vecTarget
}
