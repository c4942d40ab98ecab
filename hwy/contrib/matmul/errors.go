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
	"math"
	"unsafe"

	"github.com/go-highway/mmulbench/hwy/contrib/matrix"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidDimension is returned for a non-positive matrix dimension or
	// one whose square overflows int.
	ErrInvalidDimension = errors.New("invalid matrix dimension")

	// ErrBufferSizeMismatch is returned when a buffer holds fewer than n*n elements.
	ErrBufferSizeMismatch = errors.New("buffer size mismatch")

	// ErrAliasedBuffers is returned when result overlaps left or right.
	ErrAliasedBuffers = errors.New("result aliases an input buffer")

	// ErrAlignment is returned by CheckAlignment for a buffer not aligned to
	// matrix.Alignment bytes. Kernels themselves accept unaligned buffers.
	ErrAlignment = errors.New("buffer not aligned")
)

// Validate checks the arguments of a kernel call: n must be positive, every
// buffer must hold at least n*n elements and result must not share memory
// with left or right. left and right may be the same buffer.
func Validate(n int, left, right, result []float32) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "matmul: n=%d", n)
	}
	if n > math.MaxInt/n {
		return errors.Wrapf(ErrInvalidDimension, "matmul: n=%d overflows n*n", n)
	}
	size := n * n
	for _, buf := range []struct {
		name string
		data []float32
	}{{"left", left}, {"right", right}, {"result", result}} {
		if len(buf.data) < size {
			return errors.Wrapf(ErrBufferSizeMismatch, "matmul: %s has %d elements, need %d for n=%d",
				buf.name, len(buf.data), size, n)
		}
	}
	if overlaps(result[:size], left[:size]) {
		return errors.Wrap(ErrAliasedBuffers, "matmul: result overlaps left")
	}
	if overlaps(result[:size], right[:size]) {
		return errors.Wrap(ErrAliasedBuffers, "matmul: result overlaps right")
	}
	return nil
}

// mustValidate panics with the error returned by Validate.
func mustValidate(n int, left, right, result []float32) {
	if err := Validate(n, left, right, result); err != nil {
		panic(err)
	}
}

// validateRows checks a row range [i0, i1) against n.
func validateRows(n, i0, i1 int) error {
	if i0 < 0 || i1 > n || i0 > i1 {
		return errors.Wrapf(ErrInvalidDimension, "matmul: row range [%d, %d) outside [0, %d)", i0, i1, n)
	}
	return nil
}

// CheckAlignment reports, with an error wrapping ErrAlignment, the first of
// bufs whose data does not start on a matrix.Alignment byte boundary.
// Buffers from matrix.New always pass.
func CheckAlignment(bufs ...[]float32) error {
	for i, buf := range bufs {
		if len(buf) > 0 && !matrix.IsAligned(buf) {
			return errors.Wrapf(ErrAlignment, "matmul: buffer #%d at %p is not %d-byte aligned",
				i, unsafe.SliceData(buf), matrix.Alignment)
		}
	}
	return nil
}

// overlaps reports whether two non-empty slices share any element.
func overlaps(a, b []float32) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	const elem = unsafe.Sizeof(float32(0))
	aStart := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bStart := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	aEnd := aStart + uintptr(len(a))*elem
	bEnd := bStart + uintptr(len(b))*elem
	return aStart < bEnd && bStart < aEnd
}
