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

// kernelTemplate renders every vectorized kernel body for one target. The
// avx2 target names archsimd registers, the fallback target names
// hwy.Float32x8; everything else is shared so both produce the same
// summation order.
const kernelTemplate = `// Code generated by kernelgen. DO NOT EDIT.
{{if .Target.BuildTag}}
//go:build {{.Target.BuildTag}}
{{end}}
package {{.Package}}

import (
{{- range .Target.Imports}}
	"{{.}}"
{{- end}}
)
{{$t := .Target.Name}}{{$p := .Target.Vec}}{{$v := printf "%s.Float32x8" $p}}
{{- if .Target.Dispatch}}
func init() {
	level := hwy.CurrentLevel()
	if !hwy.HasFMA() || (level != hwy.DispatchAVX2 && level != hwy.DispatchAVX512) {
		return
	}
	saxpyVecRows = saxpyVecRows_{{$t}}
	saxpyVecUnrolledRows = saxpyVecUnrolledRows_{{$t}}
	saxpyVecUnrolledTwiceRows = saxpyVecUnrolledTwiceRows_{{$t}}
	tiledVecRows = tiledVecRows_{{$t}}
	tiledVecUnrolledRows = tiledVecUnrolledRows_{{$t}}
	vecTarget = "{{$t}}"
}
{{end}}
// axpyStrips_{{$t}} accumulates vA*bRow into cRow one {{.Lanes}}-lane strip at a time,
// starting at column j. It returns the first column left unprocessed.
func axpyStrips_{{$t}}(vA {{$v}}, bRow, cRow []float32, j int) int {
	for ; j+{{.Lanes}} <= len(cRow); j += {{.Lanes}} {
		vA.MulAdd({{$p}}.LoadFloat32x8Slice(bRow[j:]), {{$p}}.LoadFloat32x8Slice(cRow[j:])).StoreSlice(cRow[j:])
	}
	return j
}

// axpyBlocks_{{$t}} is axpyStrips_{{$t}} unrolled {{len .Strips}} times: {{.BlockWidth}} columns per iteration.
func axpyBlocks_{{$t}}(vA {{$v}}, bRow, cRow []float32, j int) int {
	for ; j+{{.BlockWidth}} <= len(cRow); j += {{.BlockWidth}} {
{{- range .Strips}}
		vA.MulAdd({{$p}}.LoadFloat32x8Slice(bRow[{{at "j" .}}:]), {{$p}}.LoadFloat32x8Slice(cRow[{{at "j" .}}:])).StoreSlice(cRow[{{at "j" .}}:])
{{- end}}
	}
	return j
}

// axpyRowUnrolled_{{$t}} accumulates aik*bRow into cRow: unrolled blocks first,
// then single strips, then the scalar tail.
func axpyRowUnrolled_{{$t}}(aik float32, bRow, cRow []float32) {
	vA := {{$p}}.BroadcastFloat32x8(aik)
	j := axpyBlocks_{{$t}}(vA, bRow, cRow, 0)
	j = axpyStrips_{{$t}}(vA, bRow, cRow, j)
	axpyTail(aik, bRow, cRow, j)
}

func saxpyVecRows_{{$t}}(n int, left, right, result []float32, i0, i1 int) {
	for i := i0; i < i1; i++ {
		aRow := left[i*n : (i+1)*n]
		cRow := result[i*n : (i+1)*n]
		for k, aik := range aRow {
			bRow := right[k*n : (k+1)*n]
			j := axpyStrips_{{$t}}({{$p}}.BroadcastFloat32x8(aik), bRow, cRow, 0)
			axpyTail(aik, bRow, cRow, j)
		}
	}
}

func saxpyVecUnrolledRows_{{$t}}(n int, left, right, result []float32, i0, i1 int) {
	for i := i0; i < i1; i++ {
		aRow := left[i*n : (i+1)*n]
		cRow := result[i*n : (i+1)*n]
		for k, aik := range aRow {
			axpyRowUnrolled_{{$t}}(aik, right[k*n:(k+1)*n], cRow)
		}
	}
}

func saxpyVecUnrolledTwiceRows_{{$t}}(n int, left, right, result []float32, i0, i1 int) {
	for i := i0; i < i1; i++ {
		aRow := left[i*n : (i+1)*n]
		cRow := result[i*n : (i+1)*n]
		k := 0
		for ; k+{{len .KSteps}} <= n; k += {{len .KSteps}} {
			bRows := right[k*n : (k+{{len .KSteps}})*n]
{{- range .KSteps}}
			axpyRowUnrolled_{{$t}}(aRow[{{at "k" .}}], bRows[{{mul . "n"}}:{{mul (inc .) "n"}}], cRow)
{{- end}}
		}
		for ; k < n; k++ {
			axpyRowUnrolled_{{$t}}(aRow[k], right[k*n:(k+1)*n], cRow)
		}
	}
}

func tiledVecRows_{{$t}}(n int, left, right, result []float32, i0, i1, tileW, tileD int) {
	for jj := 0; jj < n; jj += tileW {
		jEnd := min(jj+tileW, n)
		for kk := 0; kk < n; kk += tileD {
			kEnd := min(kk+tileD, n)
			for i := i0; i < i1; i++ {
				aRow := left[i*n : (i+1)*n]
				cRow := result[i*n : (i+1)*n]
				j := jj
				for ; j+{{.Lanes}} <= jEnd; j += {{.Lanes}} {
					acc := {{$p}}.LoadFloat32x8Slice(cRow[j:])
					for k := kk; k < kEnd; k++ {
						acc = {{$p}}.BroadcastFloat32x8(aRow[k]).MulAdd({{$p}}.LoadFloat32x8Slice(right[k*n+j:]), acc)
					}
					acc.StoreSlice(cRow[j:])
				}
				tileTail(n, aRow, right, cRow, j, jEnd, kk, kEnd)
			}
		}
	}
}

func tiledVecUnrolledRows_{{$t}}(n int, left, right, result []float32, i0, i1, tileW, tileD int) {
	for jj := 0; jj < n; jj += tileW {
		jEnd := min(jj+tileW, n)
		for kk := 0; kk < n; kk += tileD {
			kEnd := min(kk+tileD, n)
			for i := i0; i < i1; i++ {
				aRow := left[i*n : (i+1)*n]
				cRow := result[i*n : (i+1)*n]
				j := jj
				for ; j+{{.BlockWidth}} <= jEnd; j += {{.BlockWidth}} {
{{- range $a, $o := .Strips}}
					acc{{$a}} := {{$p}}.LoadFloat32x8Slice(cRow[{{at "j" $o}}:])
{{- end}}
					for k := kk; k < kEnd; k++ {
						vA := {{$p}}.BroadcastFloat32x8(aRow[k])
						bRow := right[k*n+j:]
{{- range $a, $o := .Strips}}
						acc{{$a}} = vA.MulAdd({{$p}}.LoadFloat32x8Slice(bRow{{if $o}}[{{$o}}:]{{end}}), acc{{$a}})
{{- end}}
					}
{{- range $a, $o := .Strips}}
					acc{{$a}}.StoreSlice(cRow[{{at "j" $o}}:])
{{- end}}
				}
				for ; j+{{.Lanes}} <= jEnd; j += {{.Lanes}} {
					acc := {{$p}}.LoadFloat32x8Slice(cRow[j:])
					for k := kk; k < kEnd; k++ {
						acc = {{$p}}.BroadcastFloat32x8(aRow[k]).MulAdd({{$p}}.LoadFloat32x8Slice(right[k*n+j:]), acc)
					}
					acc.StoreSlice(cRow[j:])
				}
				tileTail(n, aRow, right, cRow, j, jEnd, kk, kEnd)
			}
		}
	}
}
`
