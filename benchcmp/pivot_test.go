// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcmp

import (
	"reflect"
	"testing"

	"golang.org/x/skipbench/benchagg"
	"golang.org/x/skipbench/benchcsv"
)

func TestPivotRoundTrip(t *testing.T) {
	records := []benchcsv.Record{
		rec("coarse", "insert", 8, 100, 4.2e6, 0.1),
		rec("coarse", "insert", 8, 100, 4.4e6, 0.1),
		rec("coarse", "readonly", 8, 100, 9e6, 0.1),
		rec("fine", "insert", 8, 100, 5e6, 0.1),
		rec("fine", "mixed", 8, 100, 6e6, 0.1),
	}
	tab := benchagg.Aggregate(records, benchagg.Workload, benchagg.Implementation)
	g, err := Pivot(tab, benchagg.Workload, benchagg.Implementation)
	if err != nil {
		t.Fatal(err)
	}

	// Every aggregated key must come back out of the grid unchanged.
	for _, k := range tab.Keys {
		got, ok := g.Value(k.Workload, k.Implementation)
		if !ok {
			t.Errorf("cell (%s, %s) missing", k.Workload, k.Implementation)
			continue
		}
		if want := tab.Stats[k].Mean; got != want {
			t.Errorf("cell (%s, %s) = %v, want %v", k.Workload, k.Implementation, got, want)
		}
	}

	if want := []string{"insert", "readonly", "mixed"}; !reflect.DeepEqual(g.Rows, want) {
		t.Errorf("rows = %v, want %v", g.Rows, want)
	}
	if want := []string{"coarse", "fine"}; !reflect.DeepEqual(g.Cols, want) {
		t.Errorf("cols = %v, want %v", g.Cols, want)
	}
}

func TestPivotMissingCellAbsent(t *testing.T) {
	tab := benchagg.Aggregate([]benchcsv.Record{
		rec("coarse", "insert", 8, 100, 1, 0.1),
		rec("fine", "readonly", 8, 100, 2, 0.1),
	}, benchagg.Workload, benchagg.Implementation)
	g, err := Pivot(tab, benchagg.Workload, benchagg.Implementation)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Value("insert", "fine"); ok {
		t.Error("unobserved cell reported a value")
	}
	if v, ok := g.Value("readonly", "fine"); !ok || v != 2 {
		t.Errorf("cell (readonly, fine) = %v, %v; want 2, true", v, ok)
	}
}

func TestPivotNumericLabels(t *testing.T) {
	tab := benchagg.Aggregate([]benchcsv.Record{
		rec("coarse", "mixed", 8, 10000, 1, 0.1),
		rec("coarse", "mixed", 8, 100, 2, 0.1),
		rec("lockfree", "mixed", 8, 1000, 3, 0.1),
	}, benchagg.KeyRange, benchagg.Implementation)
	g, err := Pivot(tab, benchagg.KeyRange, benchagg.Implementation)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"100", "1000", "10000"}; !reflect.DeepEqual(g.Rows, want) {
		t.Errorf("numeric rows = %v, want ascending %v", g.Rows, want)
	}
	if v, ok := g.Value("100", "coarse"); !ok || v != 2 {
		t.Errorf("cell (100, coarse) = %v, %v; want 2, true", v, ok)
	}
}

func TestPivotAmbiguousCell(t *testing.T) {
	// Hand-build a malformed table with the same key twice, as if the
	// aggregation step had been bypassed.
	k := benchagg.Key{Workload: "mixed", Implementation: "coarse"}
	tab := &benchagg.Table{
		Dims: []benchagg.Dim{benchagg.Workload, benchagg.Implementation},
		Keys: []benchagg.Key{k, k},
		Stats: map[benchagg.Key]*benchagg.Stat{
			k: {Mean: 1, Values: []float64{1}},
		},
	}
	_, err := Pivot(tab, benchagg.Workload, benchagg.Implementation)
	ace, ok := err.(*AmbiguousCellError)
	if !ok {
		t.Fatalf("got error %v, want *AmbiguousCellError", err)
	}
	if got, want := ace.Error(), "ambiguous cell (mixed, coarse): input is not aggregated by (row, column)"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}
