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
	"context"

	"github.com/go-highway/mmulbench/hwy/contrib/matmul"
	"github.com/go-highway/mmulbench/hwy/contrib/matrix"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Tracker follows the progress of a sweep, one step per measurement.
// *progressbar.ProgressBar satisfies it.
type Tracker interface {
	Add(num int) error
}

// Runner sweeps Config.Sizes (outer loop) over Kernels (inner loop, in the
// order given), reporting every result as soon as it is measured.
type Runner struct {
	Config   Config
	Kernels  []matmul.Kernel
	Reporter Reporter

	// Tracker is optional.
	Tracker Tracker

	pool matrix.Pool
}

// Steps returns the number of measurements Run performs.
func (r *Runner) Steps() int {
	return len(r.Config.Sizes()) * len(r.Kernels)
}

// Run performs the sweep. It stops at the first error, including the
// cancellation of ctx, after flushing the results reported so far.
func (r *Runner) Run(ctx context.Context) (err error) {
	if err := r.Config.Validate(); err != nil {
		return err
	}
	if len(r.Kernels) == 0 {
		return errors.New("bench: no kernels to run")
	}
	if r.Reporter == nil {
		return errors.New("bench: Runner.Reporter is not set")
	}
	defer func() {
		if flushErr := r.Reporter.Flush(); err == nil {
			err = flushErr
		}
	}()

	sizes := r.Config.Sizes()
	klog.V(1).Infof("bench: %d kernels, sizes %d..%d step %d, clock %.2f GHz",
		len(r.Kernels), r.Config.MinSize, r.Config.MaxSize, r.Config.Step, r.Config.ClockGHz)
	rng := r.Config.newRNG()
	for _, n := range sizes {
		for _, k := range r.Kernels {
			res, err := Measure(ctx, k, n, r.Config, rng, &r.pool)
			if err != nil {
				return err
			}
			klog.V(1).Infof("bench: %s n=%d: %d calls in %s, %.3f flops/cycle",
				res.Kernel, res.Size, res.Iterations, res.Elapsed, res.FlopsPerCycle)
			if err := r.Reporter.Report(res); err != nil {
				return err
			}
			if r.Tracker != nil {
				if err := r.Tracker.Add(1); err != nil {
					klog.Warningf("bench: progress tracker: %v", err)
				}
			}
		}
	}
	return nil
}
