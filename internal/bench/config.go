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

// Package bench measures the throughput of matmul kernels over a sweep of
// matrix sizes and reports the results as CSV, a table or JSON lines.
//
// Every measurement allocates random left and right operands and a zeroed
// result, runs the kernel Warmup times, then times Iterations calls. Between
// calls the operands are refilled and the result cleared, so only the kernel
// call itself is timed.
package bench

import (
	"math/rand/v2"

	"github.com/go-highway/mmulbench/hwy/contrib/matmul"
	"github.com/pkg/errors"
)

// Config of a benchmark sweep.
type Config struct {
	// MinSize, MaxSize and Step define the swept matrix dimensions:
	// MinSize, MinSize+Step, ... up to and including MaxSize.
	MinSize, MaxSize, Step int

	// Warmup is the number of untimed calls before measuring.
	Warmup int

	// Iterations is the number of timed calls. If 0, each kernel uses its own
	// default (matmul.Kernel.Iterations).
	Iterations int

	// ClockGHz is the nominal CPU clock used to convert time into cycles.
	ClockGHz float64

	// Seed of the random operands.
	Seed uint64

	// Low and High bound the random operand values: [Low, High).
	Low, High float32
}

// DefaultConfig returns the classic sweep: sizes 64 to 1024 in steps of 64,
// 10 warmup calls, kernel default iterations and a 2.6 GHz clock.
func DefaultConfig() Config {
	return Config{
		MinSize:  64,
		MaxSize:  1024,
		Step:     64,
		Warmup:   10,
		ClockGHz: 2.6,
		Seed:     42,
		Low:      -1e6,
		High:     1e6,
	}
}

// Validate returns an error describing the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.MinSize <= 0:
		return errors.Errorf("bench: MinSize must be positive, got %d", c.MinSize)
	case c.MaxSize < c.MinSize:
		return errors.Errorf("bench: MaxSize (%d) is smaller than MinSize (%d)", c.MaxSize, c.MinSize)
	case c.Step <= 0:
		return errors.Errorf("bench: Step must be positive, got %d", c.Step)
	case c.Warmup < 0:
		return errors.Errorf("bench: Warmup must not be negative, got %d", c.Warmup)
	case c.Iterations < 0:
		return errors.Errorf("bench: Iterations must not be negative, got %d", c.Iterations)
	case c.ClockGHz <= 0:
		return errors.Errorf("bench: ClockGHz must be positive, got %g", c.ClockGHz)
	case !(c.Low < c.High):
		return errors.Errorf("bench: empty value range [%g, %g)", c.Low, c.High)
	}
	return nil
}

// Sizes returns the swept matrix dimensions in increasing order.
func (c Config) Sizes() []int {
	var sizes []int
	for n := c.MinSize; n <= c.MaxSize; n += c.Step {
		sizes = append(sizes, n)
	}
	return sizes
}

// IterationsFor returns the number of timed calls for k.
func (c Config) IterationsFor(k matmul.Kernel) int {
	if c.Iterations > 0 {
		return c.Iterations
	}
	return k.Iterations
}

func (c Config) newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
}
