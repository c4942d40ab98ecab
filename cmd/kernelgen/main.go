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

// kernelgen renders the vectorized matrix multiplication kernels of
// hwy/contrib/matmul for each requested target.
//
// Usage:
//
//	kernelgen -output hwy/contrib/matmul -targets avx2,fallback
//
// Every target produces one zz_saxpy_<target>.gen.go file. The avx2 target is
// built only with GOEXPERIMENT=simd on amd64 and upgrades the package's
// dispatch variables at init time; the fallback target is always built.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/tools/imports"
	"k8s.io/klog/v2"
)

var (
	flagOutput  = flag.String("output", ".", "Output directory for the generated files.")
	flagTargets = flag.String("targets", "avx2,fallback", "Comma-separated list of targets to generate.")
	flagPackage = flag.String("pkg", "matmul", "Package name of the generated files.")
)

const (
	lanes      = 8
	blockWidth = 64
	kUnroll    = 8
)

// Target describes how one instruction set spells the 8-lane float32 vector.
type Target struct {
	// Name is the suffix of every generated function and of the file name.
	Name string
	// BuildTag constrains the generated file, empty for always-built targets.
	BuildTag string
	// Vec is the package qualifier of Float32x8 and its constructors.
	Vec string
	// Imports of the generated file.
	Imports []string
	// Dispatch emits an init() that switches the package to this target.
	Dispatch bool
}

var targets = map[string]Target{
	"avx2": {
		Name:     "avx2",
		BuildTag: "amd64 && goexperiment.simd",
		Vec:      "archsimd",
		Imports:  []string{"simd/archsimd", "github.com/go-highway/mmulbench/hwy"},
		Dispatch: true,
	},
	"fallback": {
		Name:    "fallback",
		Vec:     "hwy",
		Imports: []string{"github.com/go-highway/mmulbench/hwy"},
	},
}

type templateData struct {
	Package    string
	Target     Target
	Lanes      int
	BlockWidth int
	// Strips are the column offsets of the vectors in one unrolled block.
	Strips []int
	// KSteps are the k offsets unrolled by the twice-unrolled kernel.
	KSteps []int
}

var funcMap = template.FuncMap{
	// at renders base+off, or just base for a zero offset.
	"at": func(base string, off int) string {
		if off == 0 {
			return base
		}
		return base + "+" + strconv.Itoa(off)
	},
	// mul renders off*name with the trivial factors folded.
	"mul": func(off int, name string) string {
		switch off {
		case 0:
			return "0"
		case 1:
			return name
		}
		return strconv.Itoa(off) + "*" + name
	},
	"inc": func(i int) int { return i + 1 },
}

var kernelTmpl = template.Must(template.New("kernels").Funcs(funcMap).Parse(kernelTemplate))

// Generate renders and formats the kernels of one target.
func Generate(pkg string, target Target) ([]byte, error) {
	data := templateData{
		Package:    pkg,
		Target:     target,
		Lanes:      lanes,
		BlockWidth: blockWidth,
	}
	for off := 0; off < blockWidth; off += lanes {
		data.Strips = append(data.Strips, off)
	}
	for k := range kUnroll {
		data.KSteps = append(data.KSteps, k)
	}
	var buf bytes.Buffer
	if err := kernelTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "executing template for target %q", target.Name)
	}
	src, err := imports.Process(fileName(target), buf.Bytes(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "formatting generated code for target %q", target.Name)
	}
	return src, nil
}

func fileName(target Target) string {
	return fmt.Sprintf("zz_saxpy_%s.gen.go", target.Name)
}

// parseTargets resolves a comma-separated target list.
func parseTargets(list string) ([]Target, error) {
	var result []Target
	for name := range strings.SplitSeq(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		target, found := targets[name]
		if !found {
			return nil, errors.Errorf("unknown target %q", name)
		}
		result = append(result, target)
	}
	if len(result) == 0 {
		return nil, errors.New("no targets given")
	}
	return result, nil
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	selected, err := parseTargets(*flagTargets)
	if err != nil {
		klog.Exitf("kernelgen: %+v", err)
	}
	must.M(os.MkdirAll(*flagOutput, 0o755))
	for _, target := range selected {
		src := must.M1(Generate(*flagPackage, target))
		path := filepath.Join(*flagOutput, fileName(target))
		must.M(os.WriteFile(path, src, 0o644))
		klog.V(1).Infof("kernelgen: wrote %s", path)
	}
	klog.Flush()
}
