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

// BlockSize is the k and j tile edge of the Blocked kernel.
const BlockSize = 8

// Saxpy computes result += left × right with the plain i-k-j triple loop. It
// is the reference every other kernel is checked against.
//
// Panics if the arguments fail Validate.
func Saxpy(n int, left, right, result []float32) {
	mustValidate(n, left, right, result)
	saxpyRows(n, left, right, result, 0, n)
}

// Blocked computes result += left × right with scalar code, tiling k and j by
// BlockSize. Loop order is kk, jj, i, j, k; partial tiles at the matrix edge
// are clamped.
//
// Panics if the arguments fail Validate.
func Blocked(n int, left, right, result []float32) {
	mustValidate(n, left, right, result)
	blockedRows(n, left, right, result, 0, n)
}

func saxpyRows(n int, left, right, result []float32, i0, i1 int) {
	for i := i0; i < i1; i++ {
		aRow := left[i*n : (i+1)*n]
		cRow := result[i*n : (i+1)*n]
		for k, aik := range aRow {
			axpyTail(aik, right[k*n:(k+1)*n], cRow, 0)
		}
	}
}

func blockedRows(n int, left, right, result []float32, i0, i1 int) {
	for kk := 0; kk < n; kk += BlockSize {
		kEnd := min(kk+BlockSize, n)
		for jj := 0; jj < n; jj += BlockSize {
			jEnd := min(jj+BlockSize, n)
			for i := i0; i < i1; i++ {
				tileTail(n, left[i*n:(i+1)*n], right, result[i*n:(i+1)*n], jj, jEnd, kk, kEnd)
			}
		}
	}
}

// axpyTail accumulates aik*bRow[j:] into cRow[j:] one element at a time.
//
// The explicit float32 conversion keeps the product rounded on its own, so the
// scalar paths give the same result on every GOARCH.
func axpyTail(aik float32, bRow, cRow []float32, j int) {
	for ; j < len(cRow); j++ {
		cRow[j] += float32(aik * bRow[j])
	}
}

// tileTail accumulates the k range [kk, kEnd) of row aRow into the columns
// [j, jEnd) of cRow, keeping each column's sum in a scalar.
func tileTail(n int, aRow, right, cRow []float32, j, jEnd, kk, kEnd int) {
	for ; j < jEnd; j++ {
		sum := cRow[j]
		for k := kk; k < kEnd; k++ {
			sum += float32(aRow[k] * right[k*n+j])
		}
		cRow[j] = sum
	}
}
