// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv provides a reader and writer for the CSV results
// format emitted by the skiplist benchmark harness.
//
// A results file is a comma-separated table with a header row. The
// column order is irrelevant and unknown columns are ignored, so the
// harness is free to record extra detail (operation counts, success
// rates) without breaking consumers. Only the six columns that drive
// the analysis pipeline are required.
package benchcsv

// Required columns of a results file. The harness historically wrote
// the implementation column as "impl"; readers accept both spellings.
const (
	ColImplementation = "implementation"
	ColImplAlias      = "impl"
	ColWorkload       = "workload"
	ColThreads        = "threads"
	ColKeyRange       = "key_range"
	ColThroughput     = "throughput"
	ColTime           = "time"
)

// requiredCols lists the required columns in canonical output order.
var requiredCols = []string{
	ColImplementation,
	ColWorkload,
	ColThreads,
	ColKeyRange,
	ColThroughput,
	ColTime,
}

// A Record is a single benchmark measurement: the throughput achieved
// by one implementation under one configuration of threads, workload
// mix, and key range. The same logical configuration may appear any
// number of times in a file; repeated trials are expected and are
// collapsed later by aggregation.
//
// A Record is immutable once read.
type Record struct {
	// Implementation is the skiplist variant under test, for
	// example "coarse", "fine", or "lockfree".
	Implementation string

	// Workload is the access-pattern mix of the run, for example
	// "insert", "readonly", "mixed", or "delete".
	Workload string

	// Threads is the concurrency level of the run. Always positive.
	Threads int

	// KeyRange is the size of the key space. Smaller ranges mean
	// more contention. Always positive.
	KeyRange int

	// Throughput is operations per second over the whole run.
	// Non-negative; zero means the run made no progress.
	Throughput float64

	// Time is the wall-clock duration of the run in seconds.
	Time float64

	fileName string
	line     int
}

// Pos returns the file name and 1-based line number this record was
// read from. If the record was not read from a file, it returns "", 0.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}
