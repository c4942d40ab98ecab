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
	"math/rand/v2"
	"time"

	"github.com/go-highway/mmulbench/hwy/contrib/matmul"
	"github.com/go-highway/mmulbench/hwy/contrib/matrix"
	"github.com/pkg/errors"
)

// Result of measuring one kernel at one size.
type Result struct {
	Kernel     string
	Size       int
	Iterations int

	// Elapsed is the total time spent inside the timed kernel calls.
	Elapsed time.Duration

	// Throughput is in kernel calls per second.
	Throughput float64

	// FlopsPerCycle is 2·n³ floating point operations per call divided by
	// the cycles elapsed at the configured clock.
	FlopsPerCycle float64
}

// GFLOPS returns the measured billions of floating point operations per second.
func (r Result) GFLOPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return flops(r.Size, r.Iterations) / float64(r.Elapsed.Nanoseconds())
}

// TimePerCall returns the mean duration of one kernel call.
func (r Result) TimePerCall() time.Duration {
	if r.Iterations == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Iterations)
}

func flops(n, iterations int) float64 {
	fn := float64(n)
	return 2 * fn * fn * fn * float64(iterations)
}

// FlopsPerCycle converts a measurement into floating point operations per
// clock cycle at clockGHz.
func FlopsPerCycle(n, iterations int, elapsed time.Duration, clockGHz float64) float64 {
	cycles := clockGHz * float64(elapsed.Nanoseconds())
	if cycles <= 0 {
		return 0
	}
	return flops(n, iterations) / cycles
}

// Measure times cfg.IterationsFor(k) calls of k on n×n matrices drawn from
// pool after cfg.Warmup untimed calls. The operands are refilled from rng and
// the result cleared after every call. ctx is checked between calls.
func Measure(ctx context.Context, k matmul.Kernel, n int, cfg Config, rng *rand.Rand, pool *matrix.Pool) (Result, error) {
	iterations := cfg.IterationsFor(k)
	if iterations <= 0 {
		return Result{}, errors.Errorf("bench: kernel %s has no iterations to measure", k.Name)
	}
	left, right, result := pool.Get(n), pool.Get(n), pool.Get(n)
	defer left.Release()
	defer right.Release()
	defer result.Release()

	refill := func() {
		left.FillRandom(rng, cfg.Low, cfg.High)
		right.FillRandom(rng, cfg.Low, cfg.High)
		result.Zero()
	}
	left.FillRandom(rng, cfg.Low, cfg.High)
	right.FillRandom(rng, cfg.Low, cfg.High)

	for range cfg.Warmup {
		if err := ctx.Err(); err != nil {
			return Result{}, errors.Wrapf(err, "bench: warming up %s at n=%d", k.Name, n)
		}
		if err := k.Multiply(n, left.Data(), right.Data(), result.Data()); err != nil {
			return Result{}, err
		}
		refill()
	}

	var elapsed time.Duration
	for range iterations {
		if err := ctx.Err(); err != nil {
			return Result{}, errors.Wrapf(err, "bench: measuring %s at n=%d", k.Name, n)
		}
		start := time.Now()
		err := k.Multiply(n, left.Data(), right.Data(), result.Data())
		elapsed += time.Since(start)
		if err != nil {
			return Result{}, err
		}
		refill()
	}
	// A clock too coarse to see a single call still took some time.
	elapsed = max(elapsed, time.Nanosecond)

	return Result{
		Kernel:        k.Name,
		Size:          n,
		Iterations:    iterations,
		Elapsed:       elapsed,
		Throughput:    float64(iterations) / elapsed.Seconds(),
		FlopsPerCycle: FlopsPerCycle(n, iterations, elapsed, cfg.ClockGHz),
	}, nil
}
