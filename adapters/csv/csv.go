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

// Package csv loads delimited text into a datatable.
package csv

import (
	"bufio"
	"context"
	stdcsv "encoding/csv"
	"io"
	"strings"

	"github.com/magpierre/simpledt/datatable"
	"github.com/magpierre/simpledt/internal/records"
	"github.com/magpierre/simpledt/internal/source"
)

// ParseFunc parses delimited text into a Table using opts.
type ParseFunc func(r io.Reader, opts datatable.Options) (*datatable.Table, error)

// Loader reads a delimited text file or URL.
type Loader struct {
	// Location is a file path or an http(s) URL.
	Location string
	// Options are handed to Parse unchanged.
	Options datatable.Options
	// Parse defaults to the package Parse function.
	Parse ParseFunc
}

// NewLoader creates a Loader using the default parser.
func NewLoader(location string, opts datatable.Options) *Loader {
	return &Loader{Location: location, Options: opts, Parse: Parse}
}

// New loads a delimited text source and renders it.
func New(ctx context.Context, location string, opts datatable.Options) (*datatable.Adapter, error) {
	return datatable.New(ctx, NewLoader(location, opts))
}

// FetchTable implements datatable.Loader.
func (l *Loader) FetchTable(ctx context.Context) (*datatable.Table, error) {
	rc, err := source.Open(ctx, l.Location)
	if err != nil {
		return nil, &datatable.SourceError{Op: "open CSV file", Source: l.Location, Err: err}
	}
	defer rc.Close()

	parse := l.Parse
	if parse == nil {
		parse = Parse
	}
	t, err := parse(rc, l.Options)
	if err != nil {
		return nil, &datatable.SourceError{Op: "load CSV file", Source: l.Location, Err: err}
	}
	t.SetMetadata("source", l.Location)
	return t, nil
}

// Parse reads delimited text.
//
// Recognized options, besides those of the records shaping step:
//
//	sep, delimiter    field separator (default ',')
//	comment           lines starting with this character are skipped
//	lazy_quotes       allow quotes inside unquoted fields
//	skipinitialspace  trim leading space of each field
func Parse(r io.Reader, opts datatable.Options) (*datatable.Table, error) {
	sep, err := opts.Rune("sep", 0)
	if err != nil {
		return nil, err
	}
	if sep == 0 {
		if sep, err = opts.Rune("delimiter", ','); err != nil {
			return nil, err
		}
	}
	comment, err := opts.Rune("comment", 0)
	if err != nil {
		return nil, err
	}
	lazy, err := opts.Bool("lazy_quotes", false)
	if err != nil {
		return nil, err
	}
	trim, err := opts.Bool("skipinitialspace", false)
	if err != nil {
		return nil, err
	}

	reader := stdcsv.NewReader(bufio.NewReader(r))
	reader.Comma = sep
	reader.Comment = comment
	reader.LazyQuotes = lazy
	reader.TrimLeadingSpace = trim
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	recs, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return records.Shape(recs, opts)
}

// DetectSeparator guesses the field separator from the first line of a
// file, choosing the most frequent of comma, semicolon, tab and pipe.
// It returns ',' when none is present.
func DetectSeparator(firstLine string) rune {
	if firstLine == "" {
		return ','
	}

	maxCount := 0
	detected := ','
	for _, sep := range []rune{',', ';', '\t', '|'} {
		if count := strings.Count(firstLine, string(sep)); count > maxCount {
			maxCount = count
			detected = sep
		}
	}
	return detected
}

// SeparatorName returns a human-readable name for a separator.
func SeparatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}
