// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package records turns text records, as read from delimited text or a
// spreadsheet, into a typed datatable.Table.
//
// Recognized options:
//
//	skiprows   int       records dropped before anything else (default 0)
//	header     int|none  index of the header record after skiprows (default 0)
//	names      []string  column names, replacing the header record
//	nrows      int       maximum number of data records (default all)
//	na_values  []string  extra cell texts read as null
//	keep_default_na bool also treat the default markers as null (default true)
package records

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/magpierre/simpledt/datatable"
)

// defaultNA are the cell texts read as null unless keep_default_na is false.
var defaultNA = []string{"", "NA", "N/A", "n/a", "NaN", "nan", "NULL", "null", "None", "<NA>", "#N/A"}

// Shape builds a Table from raw records according to opts.
func Shape(recs [][]string, opts datatable.Options) (*datatable.Table, error) {
	skip, err := opts.Int("skiprows", 0)
	if err != nil {
		return nil, err
	}
	if skip < 0 {
		return nil, invalidOption("skiprows", fmt.Errorf("must not be negative, got %d", skip))
	}
	header, err := HeaderRow(opts)
	if err != nil {
		return nil, err
	}
	names, err := opts.Strings("names")
	if err != nil {
		return nil, err
	}
	nrows, err := opts.Int("nrows", -1)
	if err != nil {
		return nil, err
	}
	isNull, err := nullMatcher(opts)
	if err != nil {
		return nil, err
	}

	if skip > len(recs) {
		skip = len(recs)
	}
	recs = recs[skip:]

	var headerRec []string
	if header >= 0 {
		if header >= len(recs) {
			if len(names) == 0 {
				return nil, fmt.Errorf("no header record at index %d", header)
			}
			recs = nil
		} else {
			headerRec = recs[header]
			recs = recs[header+1:]
		}
	}
	if len(names) > 0 {
		headerRec = names
	}
	if nrows >= 0 && nrows < len(recs) {
		recs = recs[:nrows]
	}

	width := len(headerRec)
	for _, r := range recs {
		if len(r) > width {
			width = len(r)
		}
	}

	columns := ColumnNames(headerRec, width)
	rows := make([][]datatable.Value, len(recs))
	for i := range rows {
		rows[i] = make([]datatable.Value, width)
	}

	cells := make([]string, len(recs))
	cols := make([]datatable.Column, width)
	for c := 0; c < width; c++ {
		present := make(map[int]bool, len(recs))
		for r, rec := range recs {
			if c < len(rec) {
				cells[r] = rec[c]
				present[r] = true
			} else {
				cells[r] = ""
			}
		}
		dataType, values := datatable.ParseColumn(cells, isNull)
		for r := range recs {
			if !present[r] {
				values[r] = datatable.NewNullValue(dataType)
			}
			rows[r][c] = values[r]
		}
		cols[c] = datatable.Column{Name: columns[c], Type: dataType}
	}

	return datatable.NewTable(cols, rows)
}

// HeaderRow reads the header option. It returns -1 when there is no
// header record.
func HeaderRow(opts datatable.Options) (int, error) {
	v, ok := opts["header"]
	if !ok {
		return 0, nil
	}
	switch h := v.(type) {
	case nil:
		return -1, nil
	case bool:
		if h {
			return 0, nil
		}
		return -1, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "", "none", "false":
			return -1, nil
		case "infer", "true":
			return 0, nil
		}
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, invalidOption("header", err)
	}
	if i < -1 {
		return 0, invalidOption("header", fmt.Errorf("must be -1 or a row index, got %d", i))
	}
	return i, nil
}

// ColumnNames fills in and de-duplicates column names. Names are kept as
// written. Without a header columns are named by index; missing or blank
// names become "Unnamed: <index>"; repeats get a ".<n>" suffix.
func ColumnNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		switch {
		case strings.TrimSpace(name) != "":
		case header == nil:
			name = fmt.Sprintf("%d", i)
		default:
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for seen[name] > 0 {
			name = fmt.Sprintf("%s.%d", base, seen[base])
			seen[base]++
		}
		seen[name]++
		names[i] = name
	}
	return names
}

func nullMatcher(opts datatable.Options) (func(string) bool, error) {
	keepDefault, err := opts.Bool("keep_default_na", true)
	if err != nil {
		return nil, err
	}
	extra, err := opts.Strings("na_values")
	if err != nil {
		return nil, err
	}

	markers := make(map[string]bool)
	if keepDefault {
		for _, s := range defaultNA {
			markers[s] = true
		}
	}
	for _, s := range extra {
		markers[s] = true
	}
	return func(s string) bool { return markers[s] }, nil
}

func invalidOption(key string, err error) error {
	return fmt.Errorf("%w %q: %v", datatable.ErrInvalidOption, key, err)
}
