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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Reporter receives results as they are measured.
type Reporter interface {
	// Report one result.
	Report(Result) error

	// Flush writes anything buffered. Called once at the end of a sweep.
	Flush() error
}

// CSVHeader is the first line written by CSVReporter.
var CSVHeader = []string{"name", "size", "throughput (ops/s)", "flops/cycle"}

// CSVReporter writes one CSV row per result, flushing after every row so a
// partial sweep is never lost.
type CSVReporter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVReporter returns a CSVReporter writing to w.
func NewCSVReporter(w io.Writer) *CSVReporter {
	return &CSVReporter{w: csv.NewWriter(w)}
}

// formatNumber prints six significant digits, dropping the exponent when it
// is not needed.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func (r *CSVReporter) writeRow(row []string) error {
	if err := r.w.Write(row); err != nil {
		return errors.Wrap(err, "bench: writing CSV row")
	}
	r.w.Flush()
	return errors.Wrap(r.w.Error(), "bench: flushing CSV row")
}

// Report implements Reporter. The header precedes the first row.
func (r *CSVReporter) Report(res Result) error {
	if !r.wroteHeader {
		if err := r.writeRow(CSVHeader); err != nil {
			return err
		}
		r.wroteHeader = true
	}
	return r.writeRow([]string{
		res.Kernel,
		strconv.Itoa(res.Size),
		formatNumber(res.Throughput),
		formatNumber(res.FlopsPerCycle),
	})
}

// Flush implements Reporter. It writes the header if no result was reported.
func (r *CSVReporter) Flush() error {
	if !r.wroteHeader {
		r.wroteHeader = true
		return r.writeRow(CSVHeader)
	}
	return nil
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableNumberStyle = tableCellStyle.Align(lipgloss.Right)
)

// TableReporter collects results and renders them as one table on Flush.
type TableReporter struct {
	out     io.Writer
	results []Result
}

// NewTableReporter returns a TableReporter rendering to out.
func NewTableReporter(out io.Writer) *TableReporter {
	return &TableReporter{out: out}
}

// Report implements Reporter.
func (r *TableReporter) Report(res Result) error {
	r.results = append(r.results, res)
	return nil
}

// Flush implements Reporter.
func (r *TableReporter) Flush() error {
	table := lgtable.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return tableHeaderStyle
			case col == 0:
				return tableCellStyle
			}
			return tableNumberStyle
		}).
		Headers("Kernel", "Size", "Iterations", "Time/call", "Throughput", "GFLOPS", "Flops/cycle")
	for _, res := range r.results {
		table.Row(
			res.Kernel,
			humanize.Comma(int64(res.Size)),
			humanize.Comma(int64(res.Iterations)),
			res.TimePerCall().Round(time.Microsecond/10).String(),
			humanize.SIWithDigits(res.Throughput, 2, "op/s"),
			fmt.Sprintf("%.2f", res.GFLOPS()),
			fmt.Sprintf("%.3f", res.FlopsPerCycle),
		)
	}
	_, err := fmt.Fprintln(r.out, table.Render())
	r.results = r.results[:0]
	return errors.Wrap(err, "bench: writing table")
}

// JSONRecord is one line written by JSONReporter.
type JSONRecord struct {
	Session       uuid.UUID `json:"session"`
	Target        string    `json:"target"`
	Kernel        string    `json:"kernel"`
	Size          int       `json:"size"`
	Iterations    int       `json:"iterations"`
	ElapsedNanos  int64     `json:"elapsed_ns"`
	Throughput    float64   `json:"throughput"`
	FlopsPerCycle float64   `json:"flops_per_cycle"`
}

// JSONReporter writes one JSON object per result and line. Every record of a
// reporter carries the same random session id, so results of several runs
// appended to one file can be told apart.
type JSONReporter struct {
	enc     *json.Encoder
	session uuid.UUID
	target  string
}

// NewJSONReporter returns a JSONReporter writing to w. target names the
// vector implementation the kernels run on.
func NewJSONReporter(w io.Writer, target string) *JSONReporter {
	return &JSONReporter{enc: json.NewEncoder(w), session: uuid.New(), target: target}
}

// Session returns the id stamped on every record.
func (r *JSONReporter) Session() uuid.UUID {
	return r.session
}

// Report implements Reporter.
func (r *JSONReporter) Report(res Result) error {
	err := r.enc.Encode(JSONRecord{
		Session:       r.session,
		Target:        r.target,
		Kernel:        res.Kernel,
		Size:          res.Size,
		Iterations:    res.Iterations,
		ElapsedNanos:  res.Elapsed.Nanoseconds(),
		Throughput:    res.Throughput,
		FlopsPerCycle: res.FlopsPerCycle,
	})
	return errors.Wrap(err, "bench: encoding JSON record")
}

// Flush implements Reporter; records are written as they arrive.
func (r *JSONReporter) Flush() error {
	return nil
}
