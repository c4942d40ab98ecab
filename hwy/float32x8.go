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

package hwy

// Float32x8 is a portable 256-bit vector of eight float32 lanes.
//
// Its method set mirrors the subset of archsimd.Float32x8 the kernels use, so
// the fallback target is generated from the same template as the AVX2 one.
type Float32x8 [Lanes32]float32

// BroadcastFloat32x8 returns a vector with every lane set to x.
func BroadcastFloat32x8(x float32) Float32x8 {
	return Float32x8{x, x, x, x, x, x, x, x}
}

// LoadFloat32x8Slice loads the first 8 elements of s.
// It panics if len(s) < 8.
func LoadFloat32x8Slice(s []float32) Float32x8 {
	return Float32x8(s)
}

// StoreSlice stores the vector into the first 8 elements of s.
// It panics if len(s) < 8.
func (x Float32x8) StoreSlice(s []float32) {
	*(*Float32x8)(s) = x
}

// MulAdd returns x*y + z per lane without rounding the product.
//
// The float32 product is exact in float64; the sum is rounded to float64 and
// then to float32, which matches a fused multiply-add except for rare
// double-rounding ties.
func (x Float32x8) MulAdd(y, z Float32x8) Float32x8 {
	var r Float32x8
	for i := range r {
		r[i] = float32(float64(x[i])*float64(y[i]) + float64(z[i]))
	}
	return r
}
