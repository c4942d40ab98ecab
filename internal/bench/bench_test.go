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
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/go-highway/mmulbench/hwy/contrib/matmul"
	"github.com/go-highway/mmulbench/hwy/contrib/matrix"
	"github.com/google/uuid"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.MinSize, cfg.MaxSize, cfg.Step = 8, 24, 8
	cfg.Warmup = 1
	cfg.Iterations = 2
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	sizes := cfg.Sizes()
	require.Len(t, sizes, 16)
	assert.Equal(t, 64, sizes[0])
	assert.Equal(t, 1024, sizes[15])
	assert.Equal(t, 2.6, cfg.ClockGHz)
	assert.Equal(t, 10, cfg.Warmup)

	k := must.M1(matmul.Lookup("saxpy_avx"))[0]
	assert.Equal(t, matmul.VectorIterations, cfg.IterationsFor(k))
	cfg.Iterations = 3
	assert.Equal(t, 3, cfg.IterationsFor(k))
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"min size":   func(c *Config) { c.MinSize = 0 },
		"max size":   func(c *Config) { c.MaxSize = c.MinSize - 1 },
		"step":       func(c *Config) { c.Step = 0 },
		"warmup":     func(c *Config) { c.Warmup = -1 },
		"iterations": func(c *Config) { c.Iterations = -1 },
		"clock":      func(c *Config) { c.ClockGHz = 0 },
		"range":      func(c *Config) { c.Low, c.High = 1, 1 },
	} {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}

	cfg := DefaultConfig()
	cfg.MinSize, cfg.MaxSize, cfg.Step = 10, 30, 7
	assert.Equal(t, []int{10, 17, 24}, cfg.Sizes())
}

func TestFlopsPerCycle(t *testing.T) {
	// 2·64³ = 524288 flops per call; 10 calls in 1ms at 2.6 GHz is 2.6e6 cycles.
	got := FlopsPerCycle(64, 10, time.Millisecond, 2.6)
	assert.InDelta(t, 5242880.0/2.6e6, got, 1e-12)
	assert.Zero(t, FlopsPerCycle(64, 10, 0, 2.6))

	res := Result{Size: 64, Iterations: 10, Elapsed: time.Millisecond}
	assert.InDelta(t, 5.24288, res.GFLOPS(), 1e-9)
	assert.Equal(t, 100*time.Microsecond, res.TimePerCall())
}

func TestMeasure(t *testing.T) {
	cfg := smallConfig()
	var pool matrix.Pool
	rng := rand.New(rand.NewPCG(1, 2))
	for _, k := range matmul.All() {
		res, err := Measure(context.Background(), k, 16, cfg, rng, &pool)
		require.NoError(t, err, k.Name)
		assert.Equal(t, k.Name, res.Kernel)
		assert.Equal(t, 16, res.Size)
		assert.Equal(t, 2, res.Iterations)
		assert.True(t, res.Elapsed > 0)
		assert.Positive(t, res.Throughput)
		assert.InDelta(t, FlopsPerCycle(16, 2, res.Elapsed, cfg.ClockGHz), res.FlopsPerCycle, 1e-9)
		assert.InDelta(t, float64(res.Iterations)/res.Elapsed.Seconds(), res.Throughput, 1e-6*res.Throughput)
	}
}

func TestMeasureCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var pool matrix.Pool
	_, err := Measure(ctx, matmul.Reference(), 8, smallConfig(), rand.New(rand.NewPCG(1, 2)), &pool)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCSVReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewCSVReporter(&buf)
	require.NoError(t, r.Report(Result{Kernel: "saxpy", Size: 64, Throughput: 12345.678, FlopsPerCycle: 0.25}))
	// Rows are visible before Flush.
	assert.Equal(t, "name,size,throughput (ops/s),flops/cycle\nsaxpy,64,12345.7,0.25\n", buf.String())
	require.NoError(t, r.Report(Result{Kernel: "blocked", Size: 128, Throughput: 1.5e7, FlopsPerCycle: 3}))
	require.NoError(t, r.Flush())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"blocked", "128", "1.5e+07", "3"}, rows[2])

	var empty bytes.Buffer
	require.NoError(t, NewCSVReporter(&empty).Flush())
	assert.Equal(t, "name,size,throughput (ops/s),flops/cycle\n", empty.String())
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableReporter(&buf)
	require.NoError(t, r.Report(Result{
		Kernel: "saxpy_avx_tiled", Size: 1024, Iterations: 10000,
		Elapsed: 2 * time.Second, Throughput: 5000, FlopsPerCycle: 1.5,
	}))
	assert.Empty(t, buf.String())
	require.NoError(t, r.Flush())
	out := buf.String()
	for _, want := range []string{"Kernel", "Flops/cycle", "saxpy_avx_tiled", "1,024", "10,000", "200µs", "5 kop/s", "1.500"} {
		assert.Contains(t, out, want)
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf, "fallback")
	require.NoError(t, r.Report(Result{Kernel: "saxpy", Size: 8, Iterations: 3, Elapsed: 42}))
	require.NoError(t, r.Report(Result{Kernel: "blocked", Size: 8, Iterations: 3, Elapsed: 7}))
	require.NoError(t, r.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var rec JSONRecord
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, r.Session(), rec.Session)
	assert.NotEqual(t, uuid.Nil, rec.Session)
	assert.Equal(t, "blocked", rec.Kernel)
	assert.Equal(t, "fallback", rec.Target)
	assert.EqualValues(t, 7, rec.ElapsedNanos)
}

type countingTracker struct{ steps int }

func (c *countingTracker) Add(num int) error {
	c.steps += num
	return nil
}

func TestRunner(t *testing.T) {
	var buf bytes.Buffer
	tracker := &countingTracker{}
	r := &Runner{
		Config:   smallConfig(),
		Kernels:  must.M1(matmul.Lookup("blocked", "saxpy_avx")),
		Reporter: NewCSVReporter(&buf),
		Tracker:  tracker,
	}
	assert.Equal(t, 6, r.Steps())
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 6, tracker.steps)

	rows := must.M1(csv.NewReader(&buf).ReadAll())
	require.Len(t, rows, 7)
	var order []string
	for _, row := range rows[1:] {
		order = append(order, row[0]+"/"+row[1])
	}
	assert.Equal(t, []string{
		"blocked/8", "saxpy_avx/8",
		"blocked/16", "saxpy_avx/16",
		"blocked/24", "saxpy_avx/24",
	}, order)
}

func TestRunnerErrors(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{Config: smallConfig(), Reporter: NewCSVReporter(&buf)}
	assert.Error(t, r.Run(context.Background()))

	r.Kernels = matmul.All()
	r.Config.Step = 0
	assert.Error(t, r.Run(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.Config = smallConfig()
	require.ErrorIs(t, r.Run(ctx), context.Canceled)
	// The header is flushed even when the sweep stops early.
	assert.Equal(t, "name,size,throughput (ops/s),flops/cycle\n", buf.String())
}

func TestVerify(t *testing.T) {
	mismatches, err := Verify(matmul.All(), []int{1, 9, 33}, matmul.DefaultTolerance, 5)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	_, err = Verify(matmul.All(), []int{0}, matmul.DefaultTolerance, 5)
	require.ErrorIs(t, err, matmul.ErrInvalidDimension)
}
