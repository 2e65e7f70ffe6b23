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

// Package excel loads one sheet of a spreadsheet workbook into a datatable.
package excel

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/magpierre/simpledt/datatable"
	"github.com/magpierre/simpledt/internal/records"
)

// Loader reads a spreadsheet file.
type Loader struct {
	Path    string
	Options datatable.Options
}

// NewLoader creates a Loader for the workbook at path.
func NewLoader(path string, opts datatable.Options) *Loader {
	return &Loader{Path: path, Options: opts}
}

// New loads a workbook sheet and renders it.
func New(ctx context.Context, path string, opts datatable.Options) (*datatable.Adapter, error) {
	return datatable.New(ctx, NewLoader(path, opts))
}

// FetchTable implements datatable.Loader.
func (l *Loader) FetchTable(ctx context.Context) (*datatable.Table, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, &datatable.SourceError{Op: "open spreadsheet", Source: l.Path, Err: err}
	}
	defer f.Close()

	t, err := Parse(f, l.Options)
	if err != nil {
		return nil, &datatable.SourceError{Op: "load spreadsheet", Source: l.Path, Err: err}
	}
	t.SetMetadata("source", l.Path)
	return t, nil
}

// Parse reads one sheet of a workbook.
//
// Recognized options, besides those of the records shaping step:
//
//	sheet_name  sheet name or zero-based index (default 0)
//	raw         read unformatted cell values (default false)
//	password    workbook password
func Parse(r io.Reader, opts datatable.Options) (*datatable.Table, error) {
	password, err := opts.String("password", "")
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r, excelize.Options{Password: password})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err := sheetName(f, opts)
	if err != nil {
		return nil, err
	}
	raw, err := opts.Bool("raw", false)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: raw})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	t, err := records.Shape(rows, opts)
	if err != nil {
		return nil, err
	}
	t.SetMetadata("sheet", sheet)
	return t, nil
}

// sheetName resolves the sheet_name option against the workbook.
func sheetName(f *excelize.File, opts datatable.Options) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if !opts.Has("sheet_name") {
		return sheets[0], nil
	}

	switch v := opts["sheet_name"].(type) {
	case string:
		if idx, err := f.GetSheetIndex(v); err == nil && idx >= 0 {
			return v, nil
		}
		// a numeric string from the command line selects by index
		if idx, err := cast.ToIntE(v); err == nil {
			return sheetAt(sheets, idx)
		}
		return "", fmt.Errorf("sheet %q not found", v)
	default:
		idx, err := cast.ToIntE(v)
		if err != nil {
			return "", fmt.Errorf("%w %q: %v", datatable.ErrInvalidOption, "sheet_name", err)
		}
		return sheetAt(sheets, idx)
	}
}

func sheetAt(sheets []string, idx int) (string, error) {
	if idx < 0 || idx >= len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (%d sheets)", idx, len(sheets))
	}
	return sheets[idx], nil
}
