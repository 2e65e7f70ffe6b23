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

// Package generic renders an already materialized table, or a tabular
// file whose format is inferred.
package generic

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/sirupsen/logrus"

	arrowadapter "github.com/magpierre/simpledt/adapters/arrow"
	csvadapter "github.com/magpierre/simpledt/adapters/csv"
	exceladapter "github.com/magpierre/simpledt/adapters/excel"
	jsonadapter "github.com/magpierre/simpledt/adapters/json"
	"github.com/magpierre/simpledt/datatable"
	"github.com/magpierre/simpledt/internal/logging"
	"github.com/magpierre/simpledt/internal/source"
)

// Loader accepts one of:
//
//   - *datatable.Table, used as is
//   - datatable.DataSource, copied
//   - arrow.Table, converted
//   - string, a file path or http(s) URL
//   - io.Reader, an open file handle; a Name() method, as on *os.File,
//     supplies the file name used for format detection
type Loader struct {
	Source  interface{}
	Options datatable.Options
}

// NewLoader creates a Loader for src.
func NewLoader(src interface{}, opts datatable.Options) *Loader {
	return &Loader{Source: src, Options: opts}
}

// New loads src and renders it.
func New(ctx context.Context, src interface{}, opts datatable.Options) (*datatable.Adapter, error) {
	return datatable.New(ctx, NewLoader(src, opts))
}

// FetchTable implements datatable.Loader.
func (l *Loader) FetchTable(ctx context.Context) (*datatable.Table, error) {
	switch src := l.Source.(type) {
	case nil:
		return nil, datatable.ErrNoDataSource
	case *datatable.Table:
		return src, nil
	case datatable.DataSource:
		return datatable.FromDataSource(src)
	case arrow.Table:
		return arrowadapter.FromArrowTable(src)
	case string:
		return l.fetchLocation(ctx, src)
	case io.Reader:
		name := readerName(src)
		data, err := io.ReadAll(src)
		if err != nil {
			return nil, &datatable.SourceError{Op: "read file", Source: name, Err: err}
		}
		return l.parse(ctx, name, data)
	default:
		return nil, fmt.Errorf("%w: cannot load %T", datatable.ErrUnsupportedFormat, src)
	}
}

func (l *Loader) fetchLocation(ctx context.Context, location string) (*datatable.Table, error) {
	rc, err := source.Open(ctx, location)
	if err != nil {
		return nil, &datatable.SourceError{Op: "open file", Source: location, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &datatable.SourceError{Op: "read file", Source: location, Err: err}
	}
	return l.parse(ctx, location, data)
}

func (l *Loader) parse(ctx context.Context, name string, data []byte) (*datatable.Table, error) {
	fileType, err := l.fileType(name, data)
	if err != nil {
		return nil, &datatable.SourceError{Op: "load file", Source: name, Err: err}
	}

	log := logging.WithComponent("generic").WithFields(logrus.Fields{
		"source": name,
		"format": fileType.String(),
	})

	opts := l.Options
	var t *datatable.Table
	switch fileType {
	case FileTypeCSV:
		if !opts.Has("sep") && !opts.Has("delimiter") {
			sep := csvadapter.DetectSeparator(firstLine(data))
			opts = opts.WithDefault("sep", string(sep))
			log = log.WithField("separator", csvadapter.SeparatorName(sep))
		}
		t, err = csvadapter.Parse(bytes.NewReader(data), opts)
	case FileTypeJSON:
		t, err = jsonadapter.Parse(bytes.NewReader(data), opts)
	case FileTypeJSONLines:
		t, err = jsonadapter.Parse(bytes.NewReader(data), opts.WithDefault("lines", true))
	case FileTypeExcel:
		t, err = exceladapter.Parse(bytes.NewReader(data), opts)
	case FileTypeParquet:
		t, err = arrowadapter.ReadParquet(ctx, bytes.NewReader(data), opts)
	default:
		err = datatable.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, &datatable.SourceError{Op: "load " + fileType.String() + " file", Source: name, Err: err}
	}

	log.WithFields(logrus.Fields{
		"rows":    t.RowCount(),
		"columns": t.ColumnCount(),
	}).Debug("loaded file")

	t.SetMetadata("source", name)
	t.SetMetadata("format", fileType.String())
	return t, nil
}

func (l *Loader) fileType(name string, data []byte) (FileType, error) {
	format, err := l.Options.String("format", "")
	if err != nil {
		return FileTypeUnknown, err
	}
	if format != "" {
		ft := ParseFileType(format)
		if ft == FileTypeUnknown {
			return ft, fmt.Errorf("%w: %q", datatable.ErrUnsupportedFormat, format)
		}
		return ft, nil
	}

	ft := DetectFileType(name, data)
	if ft == FileTypeDeltaSharingProfile {
		return ft, fmt.Errorf("%w: file is a Delta Sharing profile, not a table", datatable.ErrUnsupportedFormat)
	}
	return ft, nil
}

// readerName returns the file name of an open handle when it has one.
func readerName(r io.Reader) string {
	if f, ok := r.(interface{ Name() string }); ok {
		return f.Name()
	}
	return ""
}
