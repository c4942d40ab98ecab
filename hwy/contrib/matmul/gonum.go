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
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// GonumSgemm computes result += left × right with gonum's single-precision
// GEMM (alpha=1, beta=1). It is a throughput baseline outside the SAXPY
// family: its summation order differs, so it only matches the reference
// within a tolerance.
//
// Panics if the arguments fail Validate.
func GonumSgemm(n int, left, right, result []float32) {
	mustValidate(n, left, right, result)
	gonumRows(n, left, right, result, 0, n)
}

func gonumRows(n int, left, right, result []float32, i0, i1 int) {
	if i0 == i1 {
		return
	}
	rows := i1 - i0
	a := blas32.General{Rows: rows, Cols: n, Stride: n, Data: left[i0*n : i1*n]}
	b := blas32.General{Rows: n, Cols: n, Stride: n, Data: right[:n*n]}
	c := blas32.General{Rows: rows, Cols: n, Stride: n, Data: result[i0*n : i1*n]}
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, a, b, 1, c)
}
