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
	"fmt"
	"sync"
)

// Pool recycles aligned buffers by dimension, so a benchmark sweep does not
// allocate fresh matrices for every iteration of the same size.
//
// The zero value is ready to use and safe for concurrent use.
type Pool struct {
	pools sync.Map // int -> *sync.Pool of *[]float32
}

// getPool returns the sync.Pool for matrices of dimension n.
func (p *Pool) getPool(n int) *sync.Pool {
	pool, ok := p.pools.Load(n)
	if !ok {
		pool, _ = p.pools.LoadOrStore(n, &sync.Pool{
			New: func() any {
				buf := alignedFloat32s(n * n)
				return &buf
			},
		})
	}
	return pool.(*sync.Pool)
}

// Get returns a zeroed n×n matrix owned by the pool.
// It panics if n <= 0.
func (p *Pool) Get(n int) *Matrix {
	if n <= 0 {
		panic(fmt.Sprintf("matrix: invalid dimension %d", n))
	}
	buf := p.getPool(n).Get().(*[]float32)
	data := *buf
	clear(data)
	return &Matrix{n: n, data: data, pool: p}
}

func (p *Pool) put(n int, data []float32) {
	p.getPool(n).Put(&data)
}
