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

package main

import (
	"io"

	"github.com/go-highway/mmulbench/hwy"
	"github.com/go-highway/mmulbench/hwy/contrib/matmul"
	"github.com/go-highway/mmulbench/hwy/contrib/workerpool"
	"github.com/go-highway/mmulbench/internal/bench"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

// Output formats of the run command.
const (
	formatCSV   = "csv"
	formatTable = "table"
	formatJSON  = "json"
)

type runOptions struct {
	cfg      bench.Config
	kernels  []string
	format   string
	workers  int
	progress bool
}

func defaultRunOptions() *runOptions {
	return &runOptions{cfg: bench.DefaultConfig(), format: formatCSV}
}

func newRunCmd() *cobra.Command {
	opts := defaultRunOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Measure kernel throughput over a sweep of matrix sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, opts)
		},
	}
	flags := cmd.Flags()
	addSweepFlags(flags, &opts.cfg)
	flags.StringSliceVar(&opts.kernels, "kernels", nil, "Kernels to measure, in order. Default: all.")
	flags.StringVar(&opts.format, "format", opts.format, "Output format: csv, table or json.")
	flags.IntVar(&opts.workers, "workers", 0, "If > 1, also measure every kernel split by rows over this many workers.")
	flags.BoolVar(&opts.progress, "progress", false, "Show a progress bar on stderr.")
	return cmd
}

// addSweepFlags binds the fields of cfg to flags, using the current values as
// defaults.
func addSweepFlags(flags *pflag.FlagSet, cfg *bench.Config) {
	flags.IntVar(&cfg.MinSize, "min", cfg.MinSize, "Smallest matrix dimension.")
	flags.IntVar(&cfg.MaxSize, "max", cfg.MaxSize, "Largest matrix dimension.")
	flags.IntVar(&cfg.Step, "step", cfg.Step, "Increment between matrix dimensions.")
	flags.IntVar(&cfg.Warmup, "warmup", cfg.Warmup, "Untimed calls before measuring.")
	flags.IntVar(&cfg.Iterations, "iterations", cfg.Iterations,
		"Timed calls per measurement. 0 uses each kernel's default.")
	flags.Float64Var(&cfg.ClockGHz, "ghz", cfg.ClockGHz, "Nominal CPU clock in GHz, for flops/cycle.")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed of the random operands.")
	flags.Float32Var(&cfg.Low, "low", cfg.Low, "Lower bound of the random operand values.")
	flags.Float32Var(&cfg.High, "high", cfg.High, "Upper bound (exclusive) of the random operand values.")
}

func newReporter(format string, out io.Writer) (bench.Reporter, error) {
	switch format {
	case formatCSV:
		return bench.NewCSVReporter(out), nil
	case formatTable:
		return bench.NewTableReporter(out), nil
	case formatJSON:
		return bench.NewJSONReporter(out, matmul.VectorTarget()), nil
	}
	return nil, errors.Errorf("unknown output format %q, valid formats are %s, %s and %s",
		format, formatCSV, formatTable, formatJSON)
}

// selectKernels resolves names and, with workers > 1, appends the parallel
// variant of every selected kernel. The returned pool is nil without workers.
func selectKernels(names []string, workers int) ([]matmul.Kernel, *workerpool.Pool, error) {
	kernels, err := matmul.Lookup(names...)
	if err != nil {
		return nil, nil, err
	}
	if workers <= 1 {
		return kernels, nil, nil
	}
	pool := workerpool.New(workers)
	parallel := lo.Map(kernels, func(k matmul.Kernel, _ int) matmul.Kernel {
		return matmul.Parallel(k, pool)
	})
	return append(kernels, parallel...), pool, nil
}

func runSweep(cmd *cobra.Command, opts *runOptions) error {
	if err := opts.cfg.Validate(); err != nil {
		return err
	}
	reporter, err := newReporter(opts.format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	kernels, pool, err := selectKernels(opts.kernels, opts.workers)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	runner := &bench.Runner{Config: opts.cfg, Kernels: kernels, Reporter: reporter}
	if opts.progress {
		bar := progressbar.NewOptions(runner.Steps(),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("mmulbench"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer func() { _ = bar.Finish() }()
		runner.Tracker = bar
	}
	klog.Infof("mmulbench: dispatch level %s, vector target %s, %d kernels, %d sizes",
		hwy.CurrentName(), matmul.VectorTarget(), len(kernels), len(opts.cfg.Sizes()))
	return runner.Run(cmd.Context())
}
