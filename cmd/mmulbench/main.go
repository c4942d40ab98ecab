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

// mmulbench benchmarks and verifies the matmul kernel family.
//
// Usage:
//
//	mmulbench run --min 64 --max 1024 --step 64 > results.csv
//	mmulbench run --format table --kernels saxpy_avx_tiled,saxpy --workers 8
//	mmulbench verify --sizes 1,7,8,9,64,65
//	mmulbench list
//
// Without a subcommand it runs the sweep over all kernels and writes CSV to
// stdout; the sweep flags of run are accepted there too.
// The klog flags (-v, -logtostderr, ...) are accepted by every subcommand.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func newRootCmd() *cobra.Command {
	opts := defaultRunOptions()
	root := &cobra.Command{
		Use:   "mmulbench",
		Short: "Benchmark single-precision square matrix multiplication kernels",
		Long: "mmulbench measures the throughput of every matmul kernel over a sweep of\n" +
			"matrix sizes and reports calls per second and flops per cycle.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, opts)
		},
	}
	addSweepFlags(root.Flags(), &opts.cfg)

	goFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(goFlags)
	root.PersistentFlags().AddGoFlagSet(goFlags)

	root.AddCommand(newRunCmd(), newVerifyCmd(), newListCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		klog.Errorf("mmulbench: %+v", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}
