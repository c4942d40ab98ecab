// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()
	assert.Equal(t, 4, pool.NumWorkers())

	def := New(0)
	defer def.Close()
	assert.Equal(t, runtime.GOMAXPROCS(0), def.NumWorkers())
}

// coverage records which indices were visited, and how often.
type coverage struct {
	mu     sync.Mutex
	counts []int
	ranges [][2]int
}

func (c *coverage) visit(start, end int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ranges = append(c.ranges, [2]int{start, end})
	for i := start; i < end; i++ {
		c.counts[i]++
	}
}

func requireExactlyOnce(t *testing.T, c *coverage) {
	t.Helper()
	for i, count := range c.counts {
		require.Equal(t, 1, count, "index %d visited %d times", i, count)
	}
}

func TestParallelStrips(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	for _, tc := range []struct{ n, strip int }{{10, 1}, {100, 16}, {65, 64}, {7, 0}, {300, 7}} {
		c := &coverage{counts: make([]int, tc.n)}
		pool.ParallelStrips(tc.n, tc.strip, c.visit)
		requireExactlyOnce(t, c)
		if tc.strip > 0 {
			for _, r := range c.ranges {
				assert.LessOrEqual(t, r[1]-r[0], tc.strip)
			}
		}
	}
	pool.ParallelStrips(0, 4, func(start, end int) { t.Fatal("called for n=0") })
}

func TestSingleWorkerRunsInline(t *testing.T) {
	pool := New(1)
	defer pool.Close()
	c := &coverage{counts: make([]int, 20)}
	pool.ParallelStrips(20, 3, c.visit)
	requireExactlyOnce(t, c)
	assert.Equal(t, [][2]int{{0, 20}}, c.ranges)
}

func TestClosedPoolRunsSequentially(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close()

	c := &coverage{counts: make([]int, 50)}
	pool.ParallelStrips(50, 8, c.visit)
	requireExactlyOnce(t, c)
	assert.Equal(t, [][2]int{{0, 50}}, c.ranges)
}

func BenchmarkParallelStrips(b *testing.B) {
	pool := New(0)
	defer pool.Close()
	data := make([]float32, 1<<16)
	for b.Loop() {
		pool.ParallelStrips(len(data), 4096, func(start, end int) {
			for i := start; i < end; i++ {
				data[i] += 1
			}
		})
	}
}
