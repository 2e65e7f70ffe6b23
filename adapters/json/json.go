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

// Package json loads JSON documents into a datatable.
package json

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Velocidex/ordereddict"

	"github.com/magpierre/simpledt/datatable"
	"github.com/magpierre/simpledt/internal/source"
)

// Orientations of a JSON document.
const (
	OrientRecords = "records" // [{"col": v, ...}, ...]
	OrientValues  = "values"  // [[v, ...], ...]
	OrientSplit   = "split"   // {"columns": [...], "data": [[...]]}
	OrientColumns = "columns" // {"col": {"row": v}}
	OrientIndex   = "index"   // {"row": {"col": v}}
)

// Loader reads a JSON file or URL.
type Loader struct {
	Location string
	Options  datatable.Options
}

// NewLoader creates a Loader for a path or URL.
func NewLoader(location string, opts datatable.Options) *Loader {
	return &Loader{Location: location, Options: opts}
}

// New loads a JSON document and renders it.
func New(ctx context.Context, location string, opts datatable.Options) (*datatable.Adapter, error) {
	return datatable.New(ctx, NewLoader(location, opts))
}

// FetchTable implements datatable.Loader.
func (l *Loader) FetchTable(ctx context.Context) (*datatable.Table, error) {
	rc, err := source.Open(ctx, l.Location)
	if err != nil {
		return nil, &datatable.SourceError{Op: "open JSON file", Source: l.Location, Err: err}
	}
	defer rc.Close()

	t, err := Parse(rc, l.Options)
	if err != nil {
		return nil, &datatable.SourceError{Op: "load JSON file", Source: l.Location, Err: err}
	}
	t.SetMetadata("source", l.Location)
	return t, nil
}

// Parse reads a JSON document.
//
// Recognized options:
//
//	orient  one of records, values, split, columns, index; inferred when unset
//	lines   read one record object per line
func Parse(r io.Reader, opts datatable.Options) (*datatable.Table, error) {
	orient, err := opts.String("orient", "")
	if err != nil {
		return nil, err
	}
	lines, err := opts.Bool("lines", false)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if lines {
		doc, err = decodeLines(bufio.NewReader(r))
		if orient == "" {
			orient = OrientRecords
		}
	} else {
		doc, err = decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if orient == "" {
		orient = inferOrient(doc)
	}

	switch strings.ToLower(orient) {
	case OrientRecords:
		return fromRecords(doc)
	case OrientValues:
		return fromValues(doc)
	case OrientSplit:
		return fromSplit(doc)
	case OrientColumns:
		return fromColumns(doc)
	case OrientIndex:
		return fromIndex(doc)
	default:
		return nil, fmt.Errorf("%w %q: unknown orient %q", datatable.ErrInvalidOption, "orient", orient)
	}
}

// inferOrient picks an orientation from the shape of the document.
// A lone object that is neither split nor columns shaped is read as a
// single record.
func inferOrient(doc interface{}) string {
	switch v := doc.(type) {
	case []interface{}:
		if len(v) > 0 {
			if _, ok := v[0].([]interface{}); ok {
				return OrientValues
			}
		}
		return OrientRecords
	case *ordereddict.Dict:
		_, hasColumns := v.Get("columns")
		_, hasData := v.Get("data")
		if hasColumns && hasData {
			return OrientSplit
		}
		for _, k := range v.Keys() {
			item, _ := v.Get(k)
			if _, ok := item.(*ordereddict.Dict); !ok {
				return OrientRecords
			}
		}
		return OrientColumns
	}
	return OrientRecords
}

func fromRecords(doc interface{}) (*datatable.Table, error) {
	var items []interface{}
	switch v := doc.(type) {
	case []interface{}:
		items = v
	case *ordereddict.Dict:
		items = []interface{}{v}
	default:
		return nil, errors.New("records document must be an array of objects")
	}

	recs := make([]*ordereddict.Dict, len(items))
	for i, item := range items {
		d, ok := item.(*ordereddict.Dict)
		if !ok {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		recs[i] = d
	}

	names := unionKeys(recs)
	rows := make([][]interface{}, len(recs))
	for i, d := range recs {
		rows[i] = pick(d, names)
	}
	return datatable.NewTableFromValues(names, rows)
}

func fromValues(doc interface{}) (*datatable.Table, error) {
	items, ok := doc.([]interface{})
	if !ok {
		return nil, errors.New("values document must be an array of arrays")
	}
	rows, width, err := toRows(items)
	if err != nil {
		return nil, err
	}
	names := make([]string, width)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return datatable.NewTableFromValues(names, pad(rows, width))
}

func fromSplit(doc interface{}) (*datatable.Table, error) {
	d, ok := doc.(*ordereddict.Dict)
	if !ok {
		return nil, errors.New("split document must be an object")
	}
	rawColumns, _ := d.Get("columns")
	cols, ok := rawColumns.([]interface{})
	if !ok {
		return nil, errors.New(`split document needs a "columns" array`)
	}
	rawData, _ := d.Get("data")
	data, ok := rawData.([]interface{})
	if !ok {
		return nil, errors.New(`split document needs a "data" array`)
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = fmt.Sprint(datatable.Normalize(c))
	}
	rows, _, err := toRows(data)
	if err != nil {
		return nil, err
	}
	return datatable.NewTableFromValues(names, rows)
}

func fromColumns(doc interface{}) (*datatable.Table, error) {
	d, ok := doc.(*ordereddict.Dict)
	if !ok {
		return nil, errors.New("columns document must be an object")
	}
	names := d.Keys()
	columns := make([]*ordereddict.Dict, len(names))
	for i, name := range names {
		v, _ := d.Get(name)
		col, ok := v.(*ordereddict.Dict)
		if !ok {
			return nil, fmt.Errorf("column %q is not an object", name)
		}
		columns[i] = col
	}

	index := unionKeys(columns)
	rows := make([][]interface{}, len(index))
	for r, key := range index {
		row := make([]interface{}, len(names))
		for c, col := range columns {
			row[c], _ = col.Get(key)
		}
		rows[r] = row
	}
	return datatable.NewTableFromValues(names, rows)
}

func fromIndex(doc interface{}) (*datatable.Table, error) {
	d, ok := doc.(*ordereddict.Dict)
	if !ok {
		return nil, errors.New("index document must be an object")
	}
	recs := make([]*ordereddict.Dict, 0, d.Len())
	for _, key := range d.Keys() {
		v, _ := d.Get(key)
		rec, ok := v.(*ordereddict.Dict)
		if !ok {
			return nil, fmt.Errorf("row %q is not an object", key)
		}
		recs = append(recs, rec)
	}

	names := unionKeys(recs)
	rows := make([][]interface{}, len(recs))
	for i, rec := range recs {
		rows[i] = pick(rec, names)
	}
	return datatable.NewTableFromValues(names, rows)
}

// unionKeys returns every key of the dicts in order of first appearance.
func unionKeys(dicts []*ordereddict.Dict) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, d := range dicts {
		for _, k := range d.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func pick(d *ordereddict.Dict, names []string) []interface{} {
	row := make([]interface{}, len(names))
	for i, name := range names {
		row[i], _ = d.Get(name)
	}
	return row
}

func toRows(items []interface{}) ([][]interface{}, int, error) {
	rows := make([][]interface{}, len(items))
	width := 0
	for i, item := range items {
		row, ok := item.([]interface{})
		if !ok {
			return nil, 0, fmt.Errorf("row %d is not an array", i)
		}
		rows[i] = row
		if len(row) > width {
			width = len(row)
		}
	}
	return rows, width, nil
}

func pad(rows [][]interface{}, width int) [][]interface{} {
	for i, row := range rows {
		if len(row) < width {
			padded := make([]interface{}, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows
}
