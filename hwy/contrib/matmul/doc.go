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

// Package matmul implements a family of dense single-precision square matrix
// multiplication kernels, all computing result += left × right over row-major
// n×n buffers.
//
// The kernels differ only in loop structure: a scalar reference (Saxpy), a
// scalar cache-blocked variant (Blocked), and vectorized variants that
// broadcast one element of left and fuse multiply-add it into 8-lane strips of
// a result row. Every kernel sums the k terms of each output element in
// ascending k order, so the vectorized variants are bit-identical to each
// other and differ from the scalar ones only by fused rounding.
//
// Example usage:
//
//	n := 256
//	a, b, c := matrix.New(n), matrix.New(n), matrix.New(n)
//	// ... fill a and b ...
//	matmul.SaxpyAVXTiled(n, a.Data(), b.Data(), c.Data()) // c += a × b
//
// Kernels never zero result. They accept unaligned buffers and panic with an
// error wrapping one of the Err* sentinels when the arguments violate the
// contract; Kernel.Multiply is the checked form that returns the error.
//
// The vector bodies live in generated zz_saxpy_<target>.gen.go files. On amd64
// built with GOEXPERIMENT=simd and a CPU with AVX2 and FMA they use archsimd
// registers; everywhere else, or when HWY_NO_SIMD is set, they run on the
// portable hwy.Float32x8.
package matmul
