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

package arrow

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/magpierre/simpledt/datatable"
)

// ParquetLoader reads a Parquet file.
type ParquetLoader struct {
	Path    string
	Options datatable.Options
}

// NewParquetLoader creates a loader for the Parquet file at path.
func NewParquetLoader(path string, opts datatable.Options) *ParquetLoader {
	return &ParquetLoader{Path: path, Options: opts}
}

// NewParquet loads a Parquet file and renders it.
func NewParquet(ctx context.Context, path string, opts datatable.Options) (*datatable.Adapter, error) {
	return datatable.New(ctx, NewParquetLoader(path, opts))
}

// FetchTable implements datatable.Loader.
func (l *ParquetLoader) FetchTable(ctx context.Context) (*datatable.Table, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, &datatable.SourceError{Op: "open parquet file", Source: l.Path, Err: err}
	}
	defer f.Close()

	t, err := ReadParquet(ctx, f, l.Options)
	if err != nil {
		return nil, &datatable.SourceError{Op: "load parquet file", Source: l.Path, Err: err}
	}
	t.SetMetadata("source", l.Path)
	return t, nil
}

// ReadParquet reads a whole Parquet file through Arrow.
//
// Recognized options:
//
//	parallel    decode columns in parallel (default false)
//	batch_size  rows per Arrow record batch (default reader choice)
func ReadParquet(ctx context.Context, r parquet.ReaderAtSeeker, opts datatable.Options) (*datatable.Table, error) {
	parallel, err := opts.Bool("parallel", false)
	if err != nil {
		return nil, err
	}
	batchSize, err := opts.Int("batch_size", 0)
	if err != nil {
		return nil, err
	}

	pf, err := file.NewParquetReader(r, file.WithReadProps(parquet.NewReaderProperties(memory.DefaultAllocator)))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	props := pqarrow.ArrowReadProperties{Parallel: parallel, BatchSize: int64(batchSize)}
	reader, err := pqarrow.NewFileReader(pf, props, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	tbl, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer tbl.Release()

	return FromArrowTable(tbl)
}
