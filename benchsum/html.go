// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchsum

import (
	"io"
	"strconv"

	"github.com/google/safehtml/template"
)

// summaryTemplate lays out the summary statistics as a standalone
// HTML fragment, suitable for embedding above the chart page.
var summaryTemplate = template.Must(template.New("summary").ParseFromTrustedTemplate(
	template.MakeTrustedTemplate(`<table class="benchsum">
<caption>Summary Statistics</caption>
<thead>
<tr><th>implementation<th>trials<th>throughput_mean<th>throughput_std<th>throughput_max<th>time_mean<th>time_min
</thead>
<tbody>
{{range . -}}
<tr><td>{{.Name}}<td>{{.Trials}}<td>{{.ThroughputMean}}<td>{{.ThroughputStd}}<td>{{.ThroughputMax}}<td>{{.TimeMean}}<td>{{.TimeMin}}
{{end -}}
</tbody>
</table>
`)))

// htmlRow carries preformatted cells so the template stays dumb.
type htmlRow struct {
	Name           string
	Trials         string
	ThroughputMean string
	ThroughputStd  string
	ThroughputMax  string
	TimeMean       string
	TimeMin        string
}

// WriteHTML renders rows as an HTML table using the same units and
// precision as the console table: throughput in millions of ops/sec
// with two decimals, times in seconds with four, and NaN for an
// undefined standard deviation.
func WriteHTML(w io.Writer, rows []ImplSummary) error {
	view := make([]htmlRow, len(rows))
	for i := range rows {
		s := &rows[i]
		view[i] = htmlRow{
			Name:           s.Name,
			Trials:         strconv.Itoa(s.Trials),
			ThroughputMean: mopsCell(s.ThroughputMean),
			ThroughputStd:  mopsCell(s.ThroughputStd),
			ThroughputMax:  mopsCell(s.ThroughputMax),
			TimeMean:       secondsCell(s.TimeMean),
			TimeMin:        secondsCell(s.TimeMin),
		}
	}
	return summaryTemplate.Execute(w, view)
}
