// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for splitting
// a matrix multiplication into disjoint row ranges.
//
// A Pool is created once and reused across every kernel invocation of a
// benchmark sweep, so the measured time does not include goroutine spawns.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelStrips(n, 4, func(start, end int) {
//	    multiplyRows(start, end)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation and
// reused by every ParallelStrips call.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one unit of work handed to a worker.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool after pending work completes.
// Calling Close multiple times is safe; a closed pool runs work sequentially.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelStrips splits [0, n) into strips of stripSize indices that workers
// grab atomically, which balances load when strips finish at different
// speeds. fn(start, end) receives one strip at a time; strips never overlap.
// Blocks until all strips are done.
func (p *Pool) ParallelStrips(n, stripSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if stripSize <= 0 {
		stripSize = 1
	}
	numStrips := (n + stripSize - 1) / stripSize
	workers := min(p.numWorkers, numStrips)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	var nextStrip atomic.Int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					start := int(nextStrip.Add(1)-1) * stripSize
					if start >= n {
						return
					}
					fn(start, min(start+stripSize, n))
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}
