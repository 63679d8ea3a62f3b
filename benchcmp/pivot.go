// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcmp

import (
	"strconv"

	"golang.org/x/skipbench/benchagg"
)

// A Grid is a pivoted comparison table: one value per (row, column)
// label pair. Cells with no observation are absent, not zero. Labels
// are strings regardless of the underlying dimension type so the grid
// can go straight to a renderer.
type Grid struct {
	RowDim, ColDim benchagg.Dim

	// Rows and Cols are the observed labels in display order:
	// first-observation order for categorical dimensions,
	// ascending for numeric ones.
	Rows, Cols []string

	cells map[gridKey]float64
}

type gridKey struct {
	row, col string
}

// Value returns the cell for the given labels, with ok reporting
// whether the cell was observed.
func (g *Grid) Value(row, col string) (v float64, ok bool) {
	v, ok = g.cells[gridKey{row, col}]
	return
}

// Pivot spreads a table aggregated by exactly (row, col) into a Grid,
// so that grid cell (r, c) is the aggregated mean for the key (r, c).
// A duplicate (row, col) pair in the input is reported as a
// *AmbiguousCellError; tables built by benchagg.Aggregate cannot
// contain one.
func Pivot(t *benchagg.Table, row, col benchagg.Dim) (*Grid, error) {
	requireDims(t, row, col)

	g := &Grid{
		RowDim: row,
		ColDim: col,
		Rows:   dimLabels(t, row),
		Cols:   dimLabels(t, col),
		cells:  make(map[gridKey]float64),
	}
	for _, k := range t.Keys {
		ck := gridKey{dimValue(k, row), dimValue(k, col)}
		if _, dup := g.cells[ck]; dup {
			return nil, &AmbiguousCellError{Row: ck.row, Col: ck.col}
		}
		g.cells[ck] = t.Stats[k].Mean
	}
	return g, nil
}

// dimValue formats the value key holds for dimension d.
func dimValue(k benchagg.Key, d benchagg.Dim) string {
	switch d {
	case benchagg.Implementation:
		return k.Implementation
	case benchagg.Workload:
		return k.Workload
	case benchagg.Threads:
		return strconv.Itoa(k.Threads)
	case benchagg.KeyRange:
		return strconv.Itoa(k.KeyRange)
	}
	return ""
}

// dimLabels returns the display-ordered labels of dimension d in t.
func dimLabels(t *benchagg.Table, d benchagg.Dim) []string {
	switch d {
	case benchagg.Implementation:
		return t.Implementations()
	case benchagg.Workload:
		return t.Workloads()
	case benchagg.Threads:
		return itoaAll(t.ThreadCounts())
	case benchagg.KeyRange:
		return itoaAll(t.KeyRanges())
	}
	return nil
}

func itoaAll(vs []int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = strconv.Itoa(v)
	}
	return out
}
