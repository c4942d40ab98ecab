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

package bench

import (
	"github.com/go-highway/mmulbench/hwy/contrib/matmul"
	"github.com/go-highway/mmulbench/hwy/contrib/matrix"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// verifyGridSteps makes the verification operands multiples of 1/8, whose
// products and sums are exact in float32: any difference is a kernel bug,
// not rounding.
const verifyGridSteps = 8

// Mismatch describes a kernel whose result differs from the reference.
type Mismatch struct {
	Kernel  string
	Size    int
	MaxDiff float64
	// Row and Col of the worst element.
	Row, Col int
	Err      error
}

// Verify runs every kernel once per size on the same random operands as
// matmul.Saxpy and returns the kernels whose results differ by more than tol.
// The returned error reports kernels that could not run at all.
func Verify(kernels []matmul.Kernel, sizes []int, tol float64, seed uint64) ([]Mismatch, error) {
	cfg := Config{Seed: seed}
	rng := cfg.newRNG()
	var mismatches []Mismatch
	for _, n := range sizes {
		if n <= 0 {
			return nil, errors.Wrapf(matmul.ErrInvalidDimension, "bench: verify size %d", n)
		}
		left, right, want := matrix.New(n), matrix.New(n), matrix.New(n)
		left.FillGrid(rng, verifyGridSteps)
		right.FillGrid(rng, verifyGridSteps)
		matmul.Saxpy(n, left.Data(), right.Data(), want.Data())

		for _, k := range kernels {
			got := matrix.New(n)
			if err := k.Multiply(n, left.Data(), right.Data(), got.Data()); err != nil {
				return mismatches, err
			}
			err := matmul.Compare(n, want.Data(), got.Data(), tol)
			if err == nil {
				klog.V(1).Infof("bench: %s n=%d verified", k.Name, n)
				continue
			}
			diff, index := matmul.MaxAbsDiff(want.Data(), got.Data())
			mismatches = append(mismatches, Mismatch{
				Kernel:  k.Name,
				Size:    n,
				MaxDiff: diff,
				Row:     index / n,
				Col:     index % n,
				Err:     errors.WithMessagef(err, "kernel %s", k.Name),
			})
			klog.Warningf("bench: %s n=%d: %v", k.Name, n, err)
		}
	}
	return mismatches, nil
}
