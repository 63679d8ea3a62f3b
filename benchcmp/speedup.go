// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcmp derives comparative metrics from aggregated
// benchmark tables: speedup curves against a single-thread baseline,
// pivoted comparison grids, and peak cross-implementation ratios.
//
// Every operation in this package consumes tables produced by
// benchagg, never raw records. Aggregation guarantees one value per
// configuration, which is what makes cells unambiguous and baselines
// well defined.
package benchcmp

import (
	"fmt"

	"golang.org/x/skipbench/benchagg"
)

// baselineThreads is the thread count a speedup curve is relative to.
const baselineThreads = 1

// A Curve is one implementation's speedup as a function of thread
// count: throughput at N threads divided by throughput at one thread.
// Threads is ascending and Ratio is parallel to it.
type Curve struct {
	Implementation string
	Threads        []int
	Ratio          []float64
}

// At returns the speedup at the given thread count.
func (c *Curve) At(threads int) (ratio float64, ok bool) {
	for i, t := range c.Threads {
		if t == threads {
			return c.Ratio[i], true
		}
	}
	return 0, false
}

// Speedup computes the speedup curve for one implementation from a
// table aggregated by (implementation, threads). It returns a
// *BaselineMissingError if the implementation has no threads=1 row.
//
// The ratio at the baseline itself is always exactly 1, including the
// degenerate case of a zero-throughput baseline. Other points with a
// zero-throughput baseline have no defined ratio and are omitted from
// the curve.
func Speedup(t *benchagg.Table, impl string) (*Curve, error) {
	requireDims(t, benchagg.Implementation, benchagg.Threads)

	base, ok := t.Mean(benchagg.Key{Implementation: impl, Threads: baselineThreads})
	if !ok {
		return nil, &BaselineMissingError{Implementation: impl}
	}

	curve := &Curve{Implementation: impl}
	for _, threads := range t.ThreadCounts() {
		mean, ok := t.Mean(benchagg.Key{Implementation: impl, Threads: threads})
		if !ok {
			continue
		}
		var ratio float64
		switch {
		case mean == base:
			// Covers the baseline point itself, and 0/0.
			ratio = 1
		case base == 0:
			// Undefined; leave the point out.
			continue
		default:
			ratio = mean / base
		}
		curve.Threads = append(curve.Threads, threads)
		curve.Ratio = append(curve.Ratio, ratio)
	}
	return curve, nil
}

// SpeedupAll computes a speedup curve for every implementation in the
// table, in the table's implementation order. Implementations without
// a baseline are left out of the result; their errors are returned
// alongside the curves so the caller can report them and continue.
func SpeedupAll(t *benchagg.Table) ([]*Curve, []error) {
	var curves []*Curve
	var errs []error
	for _, impl := range t.Implementations() {
		c, err := Speedup(t, impl)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		curves = append(curves, c)
	}
	return curves, errs
}

// requireDims panics unless the table is aggregated by exactly the
// given dimensions, in any order. Passing a table with the wrong
// grouping is a programming error, not a data error.
func requireDims(t *benchagg.Table, dims ...benchagg.Dim) {
	ok := len(t.Dims) == len(dims)
	if ok {
		for _, want := range dims {
			found := false
			for _, have := range t.Dims {
				if have == want {
					found = true
					break
				}
			}
			if !found {
				ok = false
				break
			}
		}
	}
	if !ok {
		panic(fmt.Sprintf("table aggregated by %v, need exactly %v", t.Dims, dims))
	}
}
