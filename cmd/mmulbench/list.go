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
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/go-highway/mmulbench/hwy"
	"github.com/go-highway/mmulbench/hwy/contrib/matmul"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the kernels and the detected CPU capabilities",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			table := lgtable.New().
				Border(lipgloss.NormalBorder()).
				Headers("Kernel", "Iterations", "Kind")
			for _, k := range matmul.All() {
				kind := "scalar"
				switch {
				case k.External:
					kind = "external"
				case k.Vectorized:
					kind = "vector"
				}
				table.Row(k.Name, humanize.Comma(int64(k.Iterations)), kind)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, table.Render())
			fmt.Fprintf(out, "dispatch level: %s (vector target %s)\n", hwy.CurrentName(), matmul.VectorTarget())
			fmt.Fprintf(out, "cpu features:   %s\n", strings.Join(hwy.CPUFeatures(), " "))
		},
	}
}
