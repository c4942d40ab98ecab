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

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// DefaultTolerance is the largest absolute difference accepted between a
// kernel's output and the reference.
const DefaultTolerance = 1e-5

// MaxAbsDiff returns the largest absolute element difference between want and
// got, and the index where it occurs. NaN differences count as infinite. It
// returns (+Inf, -1) when the lengths differ.
func MaxAbsDiff[T constraints.Float](want, got []T) (diff float64, index int) {
	if len(want) != len(got) {
		return math.Inf(1), -1
	}
	index = -1
	for i := range want {
		d := math.Abs(float64(want[i]) - float64(got[i]))
		if math.IsNaN(d) {
			d = math.Inf(1)
		}
		if d > diff || index < 0 {
			diff, index = d, i
		}
	}
	return diff, index
}

// Compare returns an error when an element of got differs from want by more
// than tol. The error names the worst element of an n×n matrix.
func Compare(n int, want, got []float32, tol float64) error {
	diff, index := MaxAbsDiff(want, got)
	if index < 0 && len(want) != len(got) {
		return errors.Errorf("matmul: comparing %d elements against %d", len(got), len(want))
	}
	if diff <= tol {
		return nil
	}
	return errors.Errorf("matmul: result[%d][%d] = %g, want %g (diff %g > tolerance %g)",
		index/n, index%n, got[index], want[index], diff, tol)
}
