// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestWriterRoundTrip(t *testing.T) {
	records := []Record{
		{Implementation: "coarse", Workload: "mixed", Threads: 1, KeyRange: 10000, Throughput: 5e6, Time: 0.16},
		{Implementation: "fine", Workload: "insert", Threads: 8, KeyRange: 1000, Throughput: 12345678.5, Time: 0.0648},
		{Implementation: "lockfree", Workload: "readonly", Threads: 16, KeyRange: 100, Throughput: 0, Time: 1.0 / 3.0},
	}

	var buf bytes.Buffer
	if err := WriteAll(&buf, records); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "implementation,workload,threads,key_range,throughput,time\n") {
		t.Errorf("missing canonical header in output:\n%s", buf.String())
	}

	got, err := parseAll(t, buf.String())
	if err != nil {
		t.Fatalf("reading written records failed: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip changed records:\ngot  %+v\nwant %+v", got, records)
	}
}

func TestWriterHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	rec := Record{Implementation: "coarse", Workload: "mixed", Threads: 1, KeyRange: 1, Throughput: 1, Time: 1}
	for i := 0; i < 3; i++ {
		if err := w.Write(&rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "implementation"); n != 1 {
		t.Errorf("header written %d times, want 1", n)
	}
	if n := len(strings.Split(strings.TrimSpace(buf.String()), "\n")); n != 4 {
		t.Errorf("got %d lines, want 4", n)
	}
}
