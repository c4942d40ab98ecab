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

package matrix

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsAlignedAndZeroed(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 8, 9, 63, 64, 65, 257} {
		m := New(n)
		require.Len(t, m.Data(), n*n)
		assert.Equal(t, n, m.N())
		assert.True(t, IsAligned(m.Data()), "n=%d not aligned", n)
		for _, v := range m.Data() {
			require.Zero(t, v)
		}
	}
	require.Panics(t, func() { New(0) })
	require.Panics(t, func() { New(-3) })
}

func TestIsAligned(t *testing.T) {
	m := New(4)
	assert.True(t, IsAligned(m.Data()))
	assert.False(t, IsAligned(m.Data()[1:]))
	assert.True(t, IsAligned(m.Data()[8:]))
	assert.True(t, IsAligned(nil))
}

func TestAccessors(t *testing.T) {
	m := New(3)
	m.FillSequential(1, 1)
	assert.Equal(t, []float32{4, 5, 6}, m.Row(1))
	assert.Equal(t, float32(8), m.At(2, 1))
	m.Set(2, 1, -1)
	assert.Equal(t, float32(-1), m.Data()[7])

	m.Zero()
	assert.Equal(t, make([]float32, 9), m.Data())
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, m.Data())
	assert.True(t, IsAligned(m.Data()))

	_, err = FromRows(nil)
	require.Error(t, err)
	_, err = FromRows([][]float32{{1, 2}, {3}})
	require.Error(t, err)
}

func TestFillRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	m := New(32)
	m.FillRandom(rng, -1e6, 1e6)
	var distinct = map[float32]bool{}
	for _, v := range m.Data() {
		require.GreaterOrEqual(t, v, float32(-1e6))
		require.Less(t, v, float32(1e6))
		distinct[v] = true
	}
	assert.Greater(t, len(distinct), 900)
}

func TestUniformExcludesHigh(t *testing.T) {
	// 1 + (1 - 2^-24) rounds to 2 in float32.
	largest := math.Nextafter32(1, 0)
	require.Equal(t, float32(2), 1+1*largest)

	v := uniform(largest, 1, 2)
	assert.Less(t, v, float32(2))
	assert.Equal(t, math.Nextafter32(2, 1), v)

	assert.Equal(t, float32(1), uniform(0, 1, 2))
	assert.Equal(t, float32(-0.5), uniform(0.25, -1, 1))
}

func TestFillGrid(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	m := New(16)
	m.FillGrid(rng, 8)
	for _, v := range m.Data() {
		require.GreaterOrEqual(t, v, float32(-1))
		require.LessOrEqual(t, v, float32(1))
		scaled := v * 8
		require.Equal(t, float32(int(scaled)), scaled, "%g is not a multiple of 1/8", v)
	}
}

func TestPoolReuse(t *testing.T) {
	var pool Pool
	m := pool.Get(16)
	require.True(t, IsAligned(m.Data()))
	m.FillSequential(1, 1)
	m.Release()
	assert.Nil(t, m.Data())
	m.Release() // Double release is a no-op.

	// Whether or not the buffer is recycled, Get always returns zeros.
	m2 := pool.Get(16)
	defer m2.Release()
	require.Len(t, m2.Data(), 256)
	assert.True(t, IsAligned(m2.Data()))
	for _, v := range m2.Data() {
		require.Zero(t, v)
	}

	m3 := pool.Get(3)
	defer m3.Release()
	assert.Len(t, m3.Data(), 9)
	require.Panics(t, func() { pool.Get(0) })
}
