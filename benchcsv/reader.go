// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// A Reader reads benchmark measurement records from a results file.
//
// Its API is modeled on bufio.Scanner: call Scan to advance to the
// next record, Result to retrieve it, and Err once Scan returns false.
// The header row is validated on the first call to Scan. Unlike I/O
// errors at the end of a well-formed file, a schema violation stops
// the read immediately; a malformed dataset is never partially loaded.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	cr       *csv.Reader
	fileName string
	err      error

	// Field index of each required column, or -1 before the
	// header has been read.
	impl, workload, threads, keyRange, throughput, time int

	started bool
	result  Record
}

// NewReader constructs a reader that parses benchmark records from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.cr = csv.NewReader(ior)
	r.cr.TrimLeadingSpace = true
	r.cr.ReuseRecord = true
	r.fileName = fileName
	r.err = nil
	r.started = false
	r.impl, r.workload, r.threads = -1, -1, -1
	r.keyRange, r.throughput, r.time = -1, -1, -1
	r.result = Record{}
}

// Scan advances the reader to the next record and reports whether one
// was read. The caller should use the Result method to get the record.
// If Scan reaches EOF or any error occurs, it returns false, in which
// case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.started {
		r.started = true
		if !r.readHeader() {
			return false
		}
	}

	fields, err := r.cr.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		r.err = r.convertReadError(err)
		return false
	}
	line, _ := r.cr.FieldPos(0)
	return r.parseRecord(fields, line)
}

// Result returns the record that was just read by Scan. The Reader
// retains ownership of the record; a caller that wants to keep it
// across calls to Scan must copy it.
func (r *Reader) Result() *Record {
	return &r.result
}

// Err returns the error that stopped Scan, if any. A *SchemaError
// indicates a malformed dataset; any other error is an underlying
// I/O failure.
func (r *Reader) Err() error {
	return r.err
}

// readHeader reads and validates the header row, recording the field
// index of every required column.
func (r *Reader) readHeader() bool {
	header, err := r.cr.Read()
	if err == io.EOF {
		r.err = missingColumnsError(r.fileName, requiredCols)
		return false
	}
	if err != nil {
		r.err = r.convertReadError(err)
		return false
	}

	index := func(names ...string) int {
		for _, name := range names {
			for i, col := range header {
				if col == name {
					return i
				}
			}
		}
		return -1
	}
	r.impl = index(ColImplementation, ColImplAlias)
	r.workload = index(ColWorkload)
	r.threads = index(ColThreads)
	r.keyRange = index(ColKeyRange)
	r.throughput = index(ColThroughput)
	r.time = index(ColTime)

	var missing []string
	for _, col := range requiredCols {
		switch col {
		case ColImplementation:
			if r.impl < 0 {
				missing = append(missing, col)
			}
		case ColWorkload:
			if r.workload < 0 {
				missing = append(missing, col)
			}
		case ColThreads:
			if r.threads < 0 {
				missing = append(missing, col)
			}
		case ColKeyRange:
			if r.keyRange < 0 {
				missing = append(missing, col)
			}
		case ColThroughput:
			if r.throughput < 0 {
				missing = append(missing, col)
			}
		case ColTime:
			if r.time < 0 {
				missing = append(missing, col)
			}
		}
	}
	if len(missing) > 0 {
		r.err = missingColumnsError(r.fileName, missing)
		return false
	}

	// Rows must be at least wide enough to hold every required
	// column; encoding/csv enforces a consistent width from here on.
	return true
}

// parseRecord parses one data row into r.result.
func (r *Reader) parseRecord(fields []string, line int) bool {
	newSchemaError := func(msg string) bool {
		r.err = &SchemaError{r.fileName, line, msg}
		return false
	}

	impl := fields[r.impl]
	if impl == "" {
		return newSchemaError("empty implementation")
	}
	workload := fields[r.workload]
	if workload == "" {
		return newSchemaError("empty workload")
	}

	threads, err := strconv.Atoi(fields[r.threads])
	if err != nil {
		return newSchemaError("parsing threads: " + numErrMsg(err))
	}
	if threads <= 0 {
		return newSchemaError("threads must be positive")
	}
	keyRange, err := strconv.Atoi(fields[r.keyRange])
	if err != nil {
		return newSchemaError("parsing key_range: " + numErrMsg(err))
	}
	if keyRange <= 0 {
		return newSchemaError("key_range must be positive")
	}
	throughput, err := strconv.ParseFloat(fields[r.throughput], 64)
	if err != nil {
		return newSchemaError("parsing throughput: " + numErrMsg(err))
	}
	if math.IsNaN(throughput) || math.IsInf(throughput, 0) {
		return newSchemaError("throughput must be finite")
	}
	if throughput < 0 {
		return newSchemaError("throughput must be non-negative")
	}
	elapsed, err := strconv.ParseFloat(fields[r.time], 64)
	if err != nil {
		return newSchemaError("parsing time: " + numErrMsg(err))
	}
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return newSchemaError("time must be finite")
	}
	if elapsed < 0 {
		return newSchemaError("time must be non-negative")
	}

	r.result = Record{
		Implementation: impl,
		Workload:       workload,
		Threads:        threads,
		KeyRange:       keyRange,
		Throughput:     throughput,
		Time:           elapsed,
		fileName:       r.fileName,
		line:           line,
	}
	return true
}

// convertReadError maps errors from the underlying CSV reader into
// this package's taxonomy. Structural CSV errors (ragged rows, bad
// quoting) are schema errors; anything else is an I/O failure.
func (r *Reader) convertReadError(err error) error {
	if pe, ok := err.(*csv.ParseError); ok {
		return &SchemaError{r.fileName, pe.Line, pe.Err.Error()}
	}
	return errors.Wrapf(err, "reading %s", r.fileName)
}

// numErrMsg extracts the bare reason from a strconv error, dropping
// the function name and quoted input that NumError includes.
func numErrMsg(err error) string {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err.Error()
	}
	return err.Error()
}

// ReadAll loads an entire dataset from path. It returns a
// *NotFoundError if path does not exist and a *SchemaError if the
// file does not conform to the results schema. The read is atomic in
// effect: on any error no records are returned.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, errors.Wrapf(err, "opening dataset %s", path)
	}
	defer f.Close()

	var records []Record
	r := NewReader(f, path)
	for r.Scan() {
		records = append(records, *r.Result())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
