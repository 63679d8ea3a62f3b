// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchagg collapses raw benchmark records into one row per
// configuration.
//
// Benchmark datasets routinely contain repeated trials of the same
// configuration. Every downstream computation (speedup curves, pivot
// grids, peak comparisons) assumes exactly one value per
// configuration, so they all consume the aggregated tables produced
// here rather than re-collapsing raw records themselves.
package benchagg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"golang.org/x/skipbench/benchcsv"
)

// A Dim is a grouping dimension of a benchmark record.
type Dim int

const (
	Implementation Dim = iota
	Workload
	Threads
	KeyRange
)

// String returns the dataset column name of the dimension.
func (d Dim) String() string {
	switch d {
	case Implementation:
		return benchcsv.ColImplementation
	case Workload:
		return benchcsv.ColWorkload
	case Threads:
		return benchcsv.ColThreads
	case KeyRange:
		return benchcsv.ColKeyRange
	}
	return fmt.Sprintf("Dim(%d)", int(d))
}

// A Metric selects which measurement of a record is aggregated.
type Metric int

const (
	Throughput Metric = iota
	Time
)

func (m Metric) String() string {
	switch m {
	case Throughput:
		return benchcsv.ColThroughput
	case Time:
		return benchcsv.ColTime
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// A Key identifies one group of records: the values of the grouping
// dimensions, with dimensions outside the grouping left at their zero
// value. Record validation guarantees real values are never zero, so
// a Key is unambiguous.
type Key struct {
	Implementation string
	Workload       string
	Threads        int
	KeyRange       int
}

// A Stat holds the collapsed measurement for one Key.
type Stat struct {
	// Mean is the arithmetic mean of the metric over the group's
	// trials. A single-trial group's mean is that trial's value,
	// unchanged.
	Mean float64

	// Values are the raw per-trial measurements, in input order.
	Values []float64
}

// A Table is the result of aggregating records by a tuple of grouping
// dimensions. It is immutable once built: downstream stages read it
// and produce new tables of their own.
type Table struct {
	// Metric is the measurement that was aggregated.
	Metric Metric

	// Dims are the grouping dimensions, in the caller's order.
	// The order affects presentation only, never group membership.
	Dims []Dim

	// Keys lists the observed groups in first-observation order.
	// Only keys observed in the input appear; there are no empty
	// groups.
	Keys []Key

	// Stats holds the collapsed measurement for each key in Keys.
	Stats map[Key]*Stat
}

// Aggregate groups records by dims and collapses each group to the
// arithmetic mean of its throughput. The result is deterministic and
// independent of the input row order.
func Aggregate(records []benchcsv.Record, dims ...Dim) *Table {
	return AggregateMetric(records, Throughput, dims...)
}

// AggregateMetric is Aggregate for an arbitrary metric.
func AggregateMetric(records []benchcsv.Record, metric Metric, dims ...Dim) *Table {
	t := &Table{
		Metric: metric,
		Dims:   dims,
		Stats:  make(map[Key]*Stat),
	}
	for i := range records {
		r := &records[i]
		key := t.keyOf(r)
		stat, ok := t.Stats[key]
		if !ok {
			stat = new(Stat)
			t.Stats[key] = stat
			t.Keys = append(t.Keys, key)
		}
		switch metric {
		case Time:
			stat.Values = append(stat.Values, r.Time)
		default:
			stat.Values = append(stat.Values, r.Throughput)
		}
	}
	for _, stat := range t.Stats {
		// Sum in a canonical order so a group's mean comes out
		// bit-identical no matter how the input rows were ordered.
		xs := append([]float64(nil), stat.Values...)
		sort.Float64s(xs)
		stat.Mean = stats.Mean(xs)
	}
	return t
}

// keyOf projects a record onto the table's grouping dimensions.
func (t *Table) keyOf(r *benchcsv.Record) Key {
	var key Key
	for _, d := range t.Dims {
		switch d {
		case Implementation:
			key.Implementation = r.Implementation
		case Workload:
			key.Workload = r.Workload
		case Threads:
			key.Threads = r.Threads
		case KeyRange:
			key.KeyRange = r.KeyRange
		}
	}
	return key
}

// Len returns the number of groups in the table.
func (t *Table) Len() int {
	return len(t.Keys)
}

// Mean returns the collapsed value for key, with ok reporting whether
// the key was observed in the input.
func (t *Table) Mean(key Key) (mean float64, ok bool) {
	stat, ok := t.Stats[key]
	if !ok {
		return 0, false
	}
	return stat.Mean, true
}

// Count returns the number of trials collapsed into key, or zero if
// the key was never observed.
func (t *Table) Count(key Key) int {
	stat, ok := t.Stats[key]
	if !ok {
		return 0
	}
	return len(stat.Values)
}

// KeyString formats key as dimension=value pairs in the table's
// dimension order, for diagnostics.
func (t *Table) KeyString(key Key) string {
	parts := make([]string, 0, len(t.Dims))
	for _, d := range t.Dims {
		var v interface{}
		switch d {
		case Implementation:
			v = key.Implementation
		case Workload:
			v = key.Workload
		case Threads:
			v = key.Threads
		case KeyRange:
			v = key.KeyRange
		}
		parts = append(parts, fmt.Sprintf("%s=%v", d, v))
	}
	return strings.Join(parts, " ")
}

// Implementations returns the distinct implementations in the table,
// in first-observation order. It returns nil if Implementation is not
// a grouping dimension.
func (t *Table) Implementations() []string {
	var out []string
	seen := make(map[string]bool)
	for _, k := range t.Keys {
		if k.Implementation == "" || seen[k.Implementation] {
			continue
		}
		seen[k.Implementation] = true
		out = append(out, k.Implementation)
	}
	return out
}

// Workloads returns the distinct workloads in the table, in
// first-observation order.
func (t *Table) Workloads() []string {
	var out []string
	seen := make(map[string]bool)
	for _, k := range t.Keys {
		if k.Workload == "" || seen[k.Workload] {
			continue
		}
		seen[k.Workload] = true
		out = append(out, k.Workload)
	}
	return out
}

// ThreadCounts returns the distinct thread counts in the table, in
// ascending order.
func (t *Table) ThreadCounts() []int {
	return t.intLevels(func(k Key) int { return k.Threads })
}

// KeyRanges returns the distinct key ranges in the table, in
// ascending order.
func (t *Table) KeyRanges() []int {
	return t.intLevels(func(k Key) int { return k.KeyRange })
}

func (t *Table) intLevels(get func(Key) int) []int {
	var out []int
	seen := make(map[int]bool)
	for _, k := range t.Keys {
		v := get(k)
		if v == 0 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Where returns the records for which keep returns true, preserving
// order. It is the slicing step that runs before aggregation when an
// analysis wants a restricted view, such as a single workload.
func Where(records []benchcsv.Record, keep func(*benchcsv.Record) bool) []benchcsv.Record {
	var out []benchcsv.Record
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}
