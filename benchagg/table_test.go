// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"reflect"
	"testing"

	"golang.org/x/skipbench/benchcsv"
)

func rec(impl, workload string, threads, keyRange int, throughput, time float64) benchcsv.Record {
	return benchcsv.Record{
		Implementation: impl,
		Workload:       workload,
		Threads:        threads,
		KeyRange:       keyRange,
		Throughput:     throughput,
		Time:           time,
	}
}

// sameStats reports whether two tables collapse to the same mapping
// from key to mean, regardless of key order.
func sameStats(a, b *Table) bool {
	if len(a.Keys) != len(b.Keys) {
		return false
	}
	for k, stat := range a.Stats {
		other, ok := b.Stats[k]
		if !ok || stat.Mean != other.Mean {
			return false
		}
	}
	return true
}

func TestAggregateMean(t *testing.T) {
	records := []benchcsv.Record{
		rec("coarse", "mixed", 4, 10000, 10, 0.1),
		rec("coarse", "mixed", 4, 10000, 20, 0.2),
		rec("coarse", "mixed", 4, 10000, 30, 0.3),
	}
	tab := Aggregate(records, Implementation, Threads)
	if tab.Len() != 1 {
		t.Fatalf("got %d groups, want 1", tab.Len())
	}
	key := Key{Implementation: "coarse", Threads: 4}
	mean, ok := tab.Mean(key)
	if !ok {
		t.Fatalf("key %v missing", key)
	}
	if mean != 20 {
		t.Errorf("mean of {10, 20, 30} = %v, want 20", mean)
	}
	if n := tab.Count(key); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestAggregateSingleTrialUnchanged(t *testing.T) {
	const throughput = 7707129.09
	records := []benchcsv.Record{rec("lockfree", "readonly", 8, 1000, throughput, 0.05)}
	tab := Aggregate(records, Implementation, Workload, Threads, KeyRange)
	mean, ok := tab.Mean(Key{Implementation: "lockfree", Workload: "readonly", Threads: 8, KeyRange: 1000})
	if !ok {
		t.Fatal("single-record group missing")
	}
	if mean != throughput {
		t.Errorf("single-record mean = %v, want the value unchanged (%v)", mean, throughput)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	records := []benchcsv.Record{
		rec("coarse", "mixed", 1, 10000, 5e6, 0.2),
		rec("coarse", "mixed", 2, 10000, 9e6, 0.11),
		rec("coarse", "mixed", 2, 10000, 9.5e6, 0.1),
		rec("fine", "mixed", 1, 10000, 4e6, 0.25),
	}
	once := Aggregate(records, Implementation, Threads)

	// Re-expand the aggregated table into a one-row-per-key dataset
	// and aggregate again; nothing may change.
	var collapsed []benchcsv.Record
	for _, k := range once.Keys {
		collapsed = append(collapsed, rec(k.Implementation, "mixed", k.Threads, 10000, once.Stats[k].Mean, 0.1))
	}
	twice := Aggregate(collapsed, Implementation, Threads)
	if !sameStats(once, twice) {
		t.Errorf("re-aggregating a collapsed dataset changed it:\nonce  %+v\ntwice %+v", once.Stats, twice.Stats)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	records := []benchcsv.Record{
		rec("coarse", "mixed", 1, 10000, 5.1e6, 0.2),
		rec("fine", "mixed", 2, 10000, 6e6, 0.25),
		rec("coarse", "mixed", 1, 10000, 4.9e6, 0.21),
		rec("coarse", "mixed", 1, 10000, 5.05e6, 0.19),
		rec("fine", "mixed", 2, 10000, 6.2e6, 0.24),
	}
	reversed := make([]benchcsv.Record, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	a := Aggregate(records, Implementation, Threads)
	b := Aggregate(reversed, Implementation, Threads)
	if !sameStats(a, b) {
		t.Errorf("row order changed the aggregation:\nforward  %+v\nreversed %+v", a.Stats, b.Stats)
	}
}

func TestAggregateGrouping(t *testing.T) {
	// Grouping by (implementation, threads) must pool across
	// workloads and key ranges.
	records := []benchcsv.Record{
		rec("coarse", "insert", 4, 100, 10, 0.1),
		rec("coarse", "readonly", 4, 10000, 30, 0.1),
		rec("fine", "insert", 4, 100, 50, 0.1),
	}
	tab := Aggregate(records, Implementation, Threads)
	if tab.Len() != 2 {
		t.Fatalf("got %d groups, want 2", tab.Len())
	}
	if mean, _ := tab.Mean(Key{Implementation: "coarse", Threads: 4}); mean != 20 {
		t.Errorf("pooled mean = %v, want 20", mean)
	}
	if mean, _ := tab.Mean(Key{Implementation: "fine", Threads: 4}); mean != 50 {
		t.Errorf("fine mean = %v, want 50", mean)
	}
}

func TestAggregateNoEmptyGroups(t *testing.T) {
	// An (implementation, threads) combination that never occurs in
	// the input must not appear in the output.
	records := []benchcsv.Record{
		rec("coarse", "mixed", 1, 10000, 5, 0.1),
		rec("fine", "mixed", 8, 10000, 6, 0.1),
	}
	tab := Aggregate(records, Implementation, Threads)
	if tab.Len() != 2 {
		t.Fatalf("got %d groups, want 2", tab.Len())
	}
	if _, ok := tab.Mean(Key{Implementation: "coarse", Threads: 8}); ok {
		t.Error("unobserved combination appeared in the table")
	}
	if _, ok := tab.Mean(Key{}); ok {
		t.Error("zero key appeared in the table")
	}
}

func TestLevels(t *testing.T) {
	records := []benchcsv.Record{
		rec("lockfree", "mixed", 8, 10000, 1, 0.1),
		rec("coarse", "mixed", 1, 100, 1, 0.1),
		rec("lockfree", "mixed", 2, 1000, 1, 0.1),
		rec("coarse", "mixed", 16, 100, 1, 0.1),
	}
	tab := Aggregate(records, Implementation, Threads, KeyRange)

	if got, want := tab.Implementations(), []string{"lockfree", "coarse"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Implementations() = %v, want %v (first-observation order)", got, want)
	}
	if got, want := tab.ThreadCounts(), []int{1, 2, 8, 16}; !reflect.DeepEqual(got, want) {
		t.Errorf("ThreadCounts() = %v, want %v", got, want)
	}
	if got, want := tab.KeyRanges(), []int{100, 1000, 10000}; !reflect.DeepEqual(got, want) {
		t.Errorf("KeyRanges() = %v, want %v", got, want)
	}
	if got := tab.Workloads(); got != nil {
		t.Errorf("Workloads() = %v for a table not grouped by workload, want nil", got)
	}
}

func TestAggregateMetricTime(t *testing.T) {
	records := []benchcsv.Record{
		rec("coarse", "mixed", 4, 10000, 100, 0.25),
		rec("coarse", "mixed", 4, 10000, 200, 0.75),
	}
	tab := AggregateMetric(records, Time, Implementation)
	mean, ok := tab.Mean(Key{Implementation: "coarse"})
	if !ok || mean != 0.5 {
		t.Errorf("mean time = %v (ok=%v), want 0.5", mean, ok)
	}
}

func TestWhere(t *testing.T) {
	records := []benchcsv.Record{
		rec("coarse", "mixed", 1, 10000, 1, 0.1),
		rec("coarse", "insert", 1, 10000, 2, 0.1),
		rec("fine", "mixed", 2, 10000, 3, 0.1),
	}
	mixed := Where(records, func(r *benchcsv.Record) bool { return r.Workload == "mixed" })
	if len(mixed) != 2 || mixed[0].Implementation != "coarse" || mixed[1].Implementation != "fine" {
		t.Errorf("unexpected filtered records %+v", mixed)
	}
	if got := Where(records, func(r *benchcsv.Record) bool { return r.Workload == "delete" }); got != nil {
		t.Errorf("Where with no matches = %+v, want nil", got)
	}
}

func TestKeyString(t *testing.T) {
	tab := Aggregate([]benchcsv.Record{rec("coarse", "mixed", 8, 100, 1, 0.1)}, Implementation, Threads)
	got := tab.KeyString(Key{Implementation: "coarse", Threads: 8})
	if want := "implementation=coarse threads=8"; got != want {
		t.Errorf("KeyString = %q, want %q", got, want)
	}
}
