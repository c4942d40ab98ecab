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

import "fmt"

// TileConfig is the cache tile of the tiled kernels: Width columns of result
// by Depth values of k. Tiles at the matrix edge are clamped.
type TileConfig struct {
	Width, Depth int
}

var (
	// DefaultTile is the tile of SaxpyAVXTiled.
	DefaultTile = TileConfig{Width: 256, Depth: 16}

	// DefaultUnrolledTile is the tile of SaxpyAVXTiledUnrolled.
	DefaultUnrolledTile = TileConfig{Width: 256, Depth: 64}
)

func (t TileConfig) String() string {
	return fmt.Sprintf("%dx%d", t.Width, t.Depth)
}

func (t TileConfig) mustBeValid() {
	if t.Width <= 0 || t.Depth <= 0 {
		panic(fmt.Sprintf("matmul: invalid tile %s", t))
	}
}

// SaxpyAVX computes result += left × right. For every left[i][k] it
// broadcasts the value and fuses it into row i of result 8 columns at a time,
// finishing the row with scalar code.
//
// Panics if the arguments fail Validate.
func SaxpyAVX(n int, left, right, result []float32) {
	mustValidate(n, left, right, result)
	saxpyVecRows(n, left, right, result, 0, n)
}

// SaxpyAVXUnrolled is SaxpyAVX with the column loop unrolled to 64 columns
// (8 vectors) per iteration. Leftover columns go through single vectors and
// then scalars.
//
// Panics if the arguments fail Validate.
func SaxpyAVXUnrolled(n int, left, right, result []float32) {
	mustValidate(n, left, right, result)
	saxpyVecUnrolledRows(n, left, right, result, 0, n)
}

// SaxpyAVXUnrolledTwice is SaxpyAVXUnrolled that additionally processes 8
// consecutive k values per outer iteration. Leftover k values are processed
// one at a time.
//
// Panics if the arguments fail Validate.
func SaxpyAVXUnrolledTwice(n int, left, right, result []float32) {
	mustValidate(n, left, right, result)
	saxpyVecUnrolledTwiceRows(n, left, right, result, 0, n)
}

// SaxpyAVXTiled computes result += left × right over DefaultTile tiles,
// keeping each 8-column strip of result in a register across the k range of
// the tile.
//
// Panics if the arguments fail Validate.
func SaxpyAVXTiled(n int, left, right, result []float32) {
	SaxpyAVXTiledWith(DefaultTile)(n, left, right, result)
}

// SaxpyAVXTiledUnrolled computes result += left × right over
// DefaultUnrolledTile tiles with eight live accumulators (64 columns) sharing
// one broadcast of left[i][k].
//
// Panics if the arguments fail Validate.
func SaxpyAVXTiledUnrolled(n int, left, right, result []float32) {
	SaxpyAVXTiledUnrolledWith(DefaultUnrolledTile)(n, left, right, result)
}

// SaxpyAVXTiledWith returns SaxpyAVXTiled over the given tile.
// Panics if a tile dimension is not positive.
func SaxpyAVXTiledWith(tile TileConfig) Func {
	tile.mustBeValid()
	return func(n int, left, right, result []float32) {
		mustValidate(n, left, right, result)
		tiledVecRows(n, left, right, result, 0, n, tile.Width, tile.Depth)
	}
}

// SaxpyAVXTiledUnrolledWith returns SaxpyAVXTiledUnrolled over the given tile.
// Panics if a tile dimension is not positive.
func SaxpyAVXTiledUnrolledWith(tile TileConfig) Func {
	tile.mustBeValid()
	return func(n int, left, right, result []float32) {
		mustValidate(n, left, right, result)
		tiledVecUnrolledRows(n, left, right, result, 0, n, tile.Width, tile.Depth)
	}
}

// tiledRows binds a tile to a tiled implementation. The implementation is
// looked up on every call so it follows the dispatch variables.
func tiledRows(impl *tiledRowsFunc, tile TileConfig) rowsFunc {
	return func(n int, left, right, result []float32, i0, i1 int) {
		(*impl)(n, left, right, result, i0, i1, tile.Width, tile.Depth)
	}
}

// vecRows defers to a dispatch variable at call time.
func vecRows(impl *rowsFunc) rowsFunc {
	return func(n int, left, right, result []float32, i0, i1 int) {
		(*impl)(n, left, right, result, i0, i1)
	}
}
