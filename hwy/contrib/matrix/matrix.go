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

// Package matrix provides the square float32 buffers the kernels operate on:
// row-major, contiguous, and aligned to 32 bytes so a row of 8 lanes never
// straddles a vector boundary.
//
// Buffers are acquired from a Pool and handed back with Release:
//
//	m := pool.Get(n)
//	defer m.Release()
package matrix

import (
	"fmt"
	"math"
	"math/rand/v2"
	"unsafe"

	"github.com/pkg/errors"
)

// Alignment is the byte alignment of every Matrix buffer.
const Alignment = 32

const lanesPerAlignment = Alignment / 4

// Matrix is a square n×n float32 matrix stored row-major.
type Matrix struct {
	n    int
	data []float32
	pool *Pool
}

// New allocates a zeroed n×n matrix outside of any pool.
// It panics if n <= 0.
func New(n int) *Matrix {
	if n <= 0 {
		panic(fmt.Sprintf("matrix: invalid dimension %d", n))
	}
	return &Matrix{n: n, data: alignedFloat32s(n * n)}
}

// FromRows builds a matrix from literal rows. All rows must have len(rows) elements.
func FromRows(rows [][]float32) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.New("matrix: no rows given")
	}
	m := New(n)
	for i, row := range rows {
		if len(row) != n {
			return nil, errors.Errorf("matrix: row %d has %d elements, want %d", i, len(row), n)
		}
		copy(m.Row(i), row)
	}
	return m, nil
}

// alignedFloat32s returns a slice of size elements whose first element is
// aligned to Alignment bytes. The Go heap does not move objects, so the
// alignment holds for the lifetime of the slice.
func alignedFloat32s(size int) []float32 {
	buf := make([]float32, size+lanesPerAlignment)
	off := 0
	if rem := uintptr(unsafe.Pointer(unsafe.SliceData(buf))) % Alignment; rem != 0 {
		off = int((Alignment - rem) / 4)
	}
	return buf[off : off+size : off+size]
}

// IsAligned reports whether the first element of buf is aligned to Alignment bytes.
func IsAligned(buf []float32) bool {
	if len(buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%Alignment == 0
}

// N returns the dimension of the matrix.
func (m *Matrix) N() int {
	return m.n
}

// Data returns the flat row-major buffer of n*n elements.
func (m *Matrix) Data() []float32 {
	return m.data
}

// Row returns row i as a slice sharing the matrix storage.
func (m *Matrix) Row(i int) []float32 {
	return m.data[i*m.n : (i+1)*m.n]
}

// At returns element (i, j).
func (m *Matrix) At(i, j int) float32 {
	return m.data[i*m.n+j]
}

// Set sets element (i, j) to v.
func (m *Matrix) Set(i, j int, v float32) {
	m.data[i*m.n+j] = v
}

// Zero sets every element to 0.
func (m *Matrix) Zero() {
	clear(m.data)
}

// FillRandom fills the matrix with values drawn uniformly from [lo, hi).
func (m *Matrix) FillRandom(rng *rand.Rand, lo, hi float32) {
	for i := range m.data {
		m.data[i] = uniform(rng.Float32(), lo, hi)
	}
}

// uniform maps u in [0, 1) onto [lo, hi). lo + (hi-lo)*u can round up to hi,
// which is pulled back to the largest float32 below it.
func uniform(u, lo, hi float32) float32 {
	v := lo + (hi-lo)*u
	if v >= hi {
		v = math.Nextafter32(hi, lo)
	}
	return v
}

// FillGrid fills the matrix with random multiples of 1/steps in [-1, 1].
//
// steps should be a power of two: products and running sums of such values
// are then exact in float32 for moderate n, so every kernel variant produces
// the same bits regardless of fused or separate multiply-add.
func (m *Matrix) FillGrid(rng *rand.Rand, steps int) {
	scale := 1 / float32(steps)
	for i := range m.data {
		m.data[i] = float32(rng.IntN(2*steps+1)-steps) * scale
	}
}

// FillSequential sets element k (in row-major order) to start + k*step.
func (m *Matrix) FillSequential(start, step float32) {
	for i := range m.data {
		m.data[i] = start + float32(i)*step
	}
}

// Release hands the buffer back to the pool it came from. The matrix must not
// be used afterwards. Releasing twice, or releasing an unpooled matrix, only
// drops the reference to the buffer.
func (m *Matrix) Release() {
	if m.data == nil {
		return
	}
	if m.pool != nil {
		m.pool.put(m.n, m.data)
	}
	m.data = nil
}
