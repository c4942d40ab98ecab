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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat32x8LoadStore(t *testing.T) {
	src := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	v := LoadFloat32x8Slice(src)
	assert.Equal(t, Float32x8{1, 2, 3, 4, 5, 6, 7, 8}, v)

	dst := make([]float32, 10)
	v.StoreSlice(dst[2:])
	assert.Equal(t, []float32{0, 0, 1, 2, 3, 4, 5, 6, 7, 8}, dst)

	require.Panics(t, func() { LoadFloat32x8Slice(src[:7]) })
	require.Panics(t, func() { v.StoreSlice(dst[:7]) })
}

func TestFloat32x8ShortSliceWithCapacity(t *testing.T) {
	// Capacity past len must not be reachable through Load or Store.
	buf := []float32{0, 0, 0, 0, 0, 0, 0, 0, 99, 99}
	short := buf[:7]
	require.Equal(t, 10, cap(short))

	require.Panics(t, func() { LoadFloat32x8Slice(short) })
	require.Panics(t, func() { BroadcastFloat32x8(1).StoreSlice(short) })
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0, 0, 0, 99, 99}, buf)
}

func TestFloat32x8MulAdd(t *testing.T) {
	x := BroadcastFloat32x8(2)
	y := Float32x8{1, 2, 3, 4, 5, 6, 7, 8}
	z := BroadcastFloat32x8(0.5)
	assert.Equal(t, Float32x8{2.5, 4.5, 6.5, 8.5, 10.5, 12.5, 14.5, 16.5}, x.MulAdd(y, z))
}

func TestFloat32x8MulAddSingleRounding(t *testing.T) {
	// (1+2^-12)^2 - (1+2^-11) = 2^-24 only survives if the product is not
	// rounded to float32 before the addition.
	a := float32(1 + 1.0/4096)
	c := -float32(1 + 1.0/2048)
	got := BroadcastFloat32x8(a).MulAdd(BroadcastFloat32x8(a), BroadcastFloat32x8(c))
	for _, v := range got {
		assert.Equal(t, float32(1.0/(1<<24)), v)
	}
}

func TestDispatchLevel(t *testing.T) {
	t.Logf("Dispatch level: %s, width %d bytes, fma=%v, features=%v",
		CurrentName(), CurrentWidth(), HasFMA(), CPUFeatures())
	assert.Equal(t, CurrentLevel().String(), CurrentName())
	assert.Greater(t, CurrentWidth(), 0)
	assert.Equal(t, "unknown", DispatchLevel(42).String())
	if CurrentLevel() == DispatchAVX2 || CurrentLevel() == DispatchAVX512 {
		assert.True(t, HasFMA())
	}
}

func TestNoSimdEnv(t *testing.T) {
	t.Setenv("HWY_NO_SIMD", "")
	assert.False(t, NoSimdEnv())
	t.Setenv("HWY_NO_SIMD", "1")
	assert.True(t, NoSimdEnv())
	t.Setenv("HWY_NO_SIMD", "false")
	assert.False(t, NoSimdEnv())
	t.Setenv("HWY_NO_SIMD", "yes")
	assert.True(t, NoSimdEnv())
}
