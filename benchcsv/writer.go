// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"io"
	"strconv"
)

// A Writer writes benchmark measurement records in the canonical
// results format: the six required columns, in canonical order, with
// full-precision floating-point values so a written file reads back
// exactly.
type Writer struct {
	cw          *csv.Writer
	wroteHeader bool
}

// NewWriter returns a writer that writes records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w)}
}

// Write writes a single record, emitting the header row first if it
// has not been written yet.
func (w *Writer) Write(r *Record) error {
	if !w.wroteHeader {
		w.wroteHeader = true
		if err := w.cw.Write(requiredCols); err != nil {
			return err
		}
	}
	return w.cw.Write([]string{
		r.Implementation,
		r.Workload,
		strconv.Itoa(r.Threads),
		strconv.Itoa(r.KeyRange),
		strconv.FormatFloat(r.Throughput, 'g', -1, 64),
		strconv.FormatFloat(r.Time, 'g', -1, 64),
	})
}

// Flush flushes buffered records to the underlying writer and reports
// any write error.
func (w *Writer) Flush() error {
	w.cw.Flush()
	return w.cw.Error()
}

// WriteAll writes records to w, header included.
func WriteAll(w io.Writer, records []Record) error {
	cw := NewWriter(w)
	for i := range records {
		if err := cw.Write(&records[i]); err != nil {
			return err
		}
	}
	return cw.Flush()
}
