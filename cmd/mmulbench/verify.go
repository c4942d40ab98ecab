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
	"fmt"

	"github.com/go-highway/mmulbench/hwy/contrib/matmul"
	"github.com/go-highway/mmulbench/internal/bench"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var defaultVerifySizes = []int{1, 7, 8, 9, 64, 65, 127, 128}

func newVerifyCmd() *cobra.Command {
	var (
		sizes     []int
		kernels   []string
		tolerance float64
		seed      uint64
		workers   int
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every kernel against the scalar reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selected, pool, err := selectKernels(kernels, workers)
			if err != nil {
				return err
			}
			if pool != nil {
				defer pool.Close()
			}
			mismatches, err := bench.Verify(selected, sizes, tolerance, seed)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range mismatches {
				fmt.Fprintf(out, "FAIL %s n=%d: max diff %g at [%d][%d]\n", m.Kernel, m.Size, m.MaxDiff, m.Row, m.Col)
			}
			if len(mismatches) > 0 {
				return errors.Errorf("%d kernel/size combinations differ from the reference", len(mismatches))
			}
			fmt.Fprintf(out, "ok: %d kernels agree with %s on %d sizes (tolerance %g)\n",
				len(selected), matmul.Reference().Name, len(sizes), tolerance)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntSliceVar(&sizes, "sizes", defaultVerifySizes, "Matrix dimensions to verify.")
	flags.StringSliceVar(&kernels, "kernels", nil, "Kernels to verify. Default: all.")
	flags.Float64Var(&tolerance, "tolerance", matmul.DefaultTolerance, "Largest accepted absolute difference.")
	flags.Uint64Var(&seed, "seed", 1, "Seed of the random operands.")
	flags.IntVar(&workers, "workers", 0, "If > 1, also verify the parallel variants with this many workers.")
	return cmd
}
