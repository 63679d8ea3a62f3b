// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart turns skiplist benchmark datasets into chart
// artifacts.
//
// Chart builders slice a dataset, aggregate it, and describe the
// result as plain data: a Chart holds series of x/y points or
// per-category bar values and nothing renderer-specific. Renderers
// consume only these descriptions, so backends can be swapped without
// touching the builders.
package benchchart

import (
	"fmt"
	"math"

	"golang.org/x/skipbench/benchagg"
	"golang.org/x/skipbench/benchcmp"
	"golang.org/x/skipbench/benchcsv"
	"golang.org/x/skipbench/benchsum"
	"golang.org/x/skipbench/benchunit"
)

// comparisonThreads is the concurrency level at which implementations
// are compared across workloads and key ranges.
const comparisonThreads = 8

// Kind identifies how a Chart's series are drawn.
type Kind int

const (
	Line Kind = iota
	Bar
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Bar:
		return "bar"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Series is one plotted implementation.
//
// For Line charts X and Y are parallel point coordinates. For Bar
// charts X is unused and Y holds one value per Chart category; a NaN
// value marks a category the series has no measurement for.
type Series struct {
	Label string
	X     []float64
	Y     []float64
}

// A Chart is a renderer-agnostic description of one artifact.
type Chart struct {
	Name   string // artifact base name, e.g. "speedup"
	Title  string
	XLabel string
	YLabel string
	Kind   Kind
	LogX   bool // Line charts: log-scaled x axis

	Series []Series

	// Categories labels the x axis of a Bar chart.
	Categories []string

	// Ideal is an optional reference line drawn dashed, such as the
	// perfect-scaling diagonal of a speedup chart.
	Ideal *Series
}

// Scalability builds the throughput-versus-threads line chart over the
// mixed workload. It reports *benchcmp.EmptyGroupError when the
// dataset has no mixed rows.
func Scalability(records []benchcsv.Record) (*Chart, error) {
	mixed := benchagg.Where(records, func(r *benchcsv.Record) bool { return r.Workload == "mixed" })
	if len(mixed) == 0 {
		return nil, &benchcmp.EmptyGroupError{Slice: "workload=mixed"}
	}
	t := benchagg.Aggregate(mixed, benchagg.Implementation, benchagg.Threads)

	c := &Chart{
		Name:   "scalability",
		Title:  "Scalability: Throughput vs Thread Count",
		XLabel: "Number of Threads",
		YLabel: "Throughput (Million ops/sec)",
		Kind:   Line,
	}
	threads := t.ThreadCounts()
	for _, impl := range t.Implementations() {
		s := Series{Label: benchsum.DisplayName(impl)}
		for _, n := range threads {
			m, ok := t.Mean(benchagg.Key{Implementation: impl, Threads: n})
			if !ok {
				continue
			}
			s.X = append(s.X, float64(n))
			s.Y = append(s.Y, benchunit.Mops(m))
		}
		c.Series = append(c.Series, s)
	}
	return c, nil
}

// Speedup builds the speedup-versus-threads line chart over the mixed
// workload, including the ideal y=x reference line. Implementations
// without a single-thread baseline are skipped; their errors are
// returned alongside the chart. When the dataset has no mixed rows at
// all the chart is nil and the sole error is a
// *benchcmp.EmptyGroupError.
func Speedup(records []benchcsv.Record) (*Chart, []error) {
	mixed := benchagg.Where(records, func(r *benchcsv.Record) bool { return r.Workload == "mixed" })
	if len(mixed) == 0 {
		return nil, []error{&benchcmp.EmptyGroupError{Slice: "workload=mixed"}}
	}
	t := benchagg.Aggregate(mixed, benchagg.Implementation, benchagg.Threads)
	curves, errs := benchcmp.SpeedupAll(t)

	c := &Chart{
		Name:   "speedup",
		Title:  "Speedup Relative to Single Thread",
		XLabel: "Number of Threads",
		YLabel: "Speedup",
		Kind:   Line,
		Ideal:  idealLine(t.ThreadCounts()),
	}
	for _, cv := range curves {
		s := Series{Label: benchsum.DisplayName(cv.Implementation)}
		for i, n := range cv.Threads {
			s.X = append(s.X, float64(n))
			s.Y = append(s.Y, cv.Ratio[i])
		}
		c.Series = append(c.Series, s)
	}
	return c, errs
}

// idealLine is the y=x reference from a thread count of 1 up to the
// largest measured thread count, with a point at every measured level
// in between.
func idealLine(threads []int) *Series {
	if len(threads) == 0 {
		return nil
	}
	s := &Series{Label: "Ideal"}
	if threads[0] != 1 {
		s.X = append(s.X, 1)
		s.Y = append(s.Y, 1)
	}
	for _, n := range threads {
		s.X = append(s.X, float64(n))
		s.Y = append(s.Y, float64(n))
	}
	return s
}

// WorkloadComparison builds the grouped-bar chart comparing
// implementations across workload types at the comparison thread
// count. It reports *benchcmp.EmptyGroupError when the dataset has no
// rows at that thread count.
func WorkloadComparison(records []benchcsv.Record) (*Chart, error) {
	at := benchagg.Where(records, func(r *benchcsv.Record) bool { return r.Threads == comparisonThreads })
	if len(at) == 0 {
		return nil, &benchcmp.EmptyGroupError{Slice: fmt.Sprintf("threads=%d", comparisonThreads)}
	}
	t := benchagg.Aggregate(at, benchagg.Workload, benchagg.Implementation)
	grid, err := benchcmp.Pivot(t, benchagg.Workload, benchagg.Implementation)
	if err != nil {
		return nil, err
	}

	c := &Chart{
		Name:       "workload_comparison",
		Title:      fmt.Sprintf("Workload Comparison (%d Threads)", comparisonThreads),
		XLabel:     "Workload Type",
		YLabel:     "Throughput (Million ops/sec)",
		Kind:       Bar,
		Categories: grid.Rows,
	}
	for _, impl := range grid.Cols {
		s := Series{Label: benchsum.DisplayName(impl)}
		for _, w := range grid.Rows {
			v, ok := grid.Value(w, impl)
			if !ok {
				s.Y = append(s.Y, math.NaN())
				continue
			}
			s.Y = append(s.Y, benchunit.Mops(v))
		}
		c.Series = append(c.Series, s)
	}
	return c, nil
}

// Contention builds the throughput-versus-key-range line chart over
// the mixed workload at the comparison thread count. A smaller key
// range concentrates operations on fewer keys, so the sweep shows how
// each implementation degrades under contention. It reports
// *benchcmp.EmptyGroupError when that slice is empty or covers only a
// single key range.
func Contention(records []benchcsv.Record) (*Chart, error) {
	at := benchagg.Where(records, func(r *benchcsv.Record) bool {
		return r.Workload == "mixed" && r.Threads == comparisonThreads
	})
	if len(at) == 0 {
		return nil, &benchcmp.EmptyGroupError{Slice: fmt.Sprintf("workload=mixed threads=%d", comparisonThreads)}
	}
	t := benchagg.Aggregate(at, benchagg.Implementation, benchagg.KeyRange)
	ranges := t.KeyRanges()
	if len(ranges) < 2 {
		return nil, &benchcmp.EmptyGroupError{Slice: fmt.Sprintf("key_range sweep (workload=mixed threads=%d)", comparisonThreads)}
	}

	c := &Chart{
		Name:   "contention",
		Title:  fmt.Sprintf("Contention: Throughput vs Key Range (%d Threads)", comparisonThreads),
		XLabel: "Key Range",
		YLabel: "Throughput (Million ops/sec)",
		Kind:   Line,
		LogX:   true,
	}
	for _, impl := range t.Implementations() {
		s := Series{Label: benchsum.DisplayName(impl)}
		for _, kr := range ranges {
			m, ok := t.Mean(benchagg.Key{Implementation: impl, KeyRange: kr})
			if !ok {
				continue
			}
			s.X = append(s.X, float64(kr))
			s.Y = append(s.Y, benchunit.Mops(m))
		}
		c.Series = append(c.Series, s)
	}
	return c, nil
}
